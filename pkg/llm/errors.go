package llm

import "errors"

// Provider failures are collapsed into a small taxonomy so callers can pick
// behavior (fallback model, canned response, availability flag) without
// knowing the concrete provider.
var (
	// ErrConfiguration: missing or rejected credentials. Not recoverable
	// until the operator fixes the key.
	ErrConfiguration = errors.New("llm: invalid provider configuration")
	// ErrQuota: rate limit or spend quota hit.
	ErrQuota = errors.New("llm: provider quota exceeded")
	// ErrModelUnavailable: the requested model name is not recognized by the
	// provider. Callers may retry once against a secondary model name.
	ErrModelUnavailable = errors.New("llm: model unavailable")
	// ErrTransient: anything else (network, 5xx, malformed response).
	ErrTransient = errors.New("llm: transient provider error")
)

func IsConfiguration(err error) bool    { return errors.Is(err, ErrConfiguration) }
func IsQuota(err error) bool            { return errors.Is(err, ErrQuota) }
func IsModelUnavailable(err error) bool { return errors.Is(err, ErrModelUnavailable) }
