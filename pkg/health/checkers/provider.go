package checkers

import "portfolio-server/pkg/chat"

// ProviderStatus reports the chat provider availability flag in the health
// overview. It is a reporter, not a checker: provider downtime never makes
// the service unready.
type ProviderStatus struct {
	status *chat.StatusTracker
}

func NewProviderStatus(status *chat.StatusTracker) *ProviderStatus {
	return &ProviderStatus{status: status}
}

func (p *ProviderStatus) Name() string { return "chatProvider" }

func (p *ProviderStatus) Report() string { return string(p.status.Status()) }
