package health

import (
	"context"
	"fmt"
)

// Checker is a hard dependency gate: a failing check makes the service not
// ready.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Reporter contributes a status line to the health overview without ever
// gating readiness. The chat provider is the canonical case: the site works
// fine while the assistant is down, but operators still want to see the flag.
type Reporter interface {
	Name() string
	Report() string
}

// UseCase describes readiness verification and the health overview.
type UseCase interface {
	Ready(ctx context.Context) error
	Overview() map[string]string
}

type service struct {
	checkers  []Checker
	reporters []Reporter
}

// NewService composes hard-dependency checkers and informational reporters.
func NewService(checkers []Checker, reporters []Reporter) UseCase {
	return &service{checkers: checkers, reporters: reporters}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}

// Overview gathers the reporters only. Liveness must stay cheap, so no
// dependency round-trips happen here.
func (s *service) Overview() map[string]string {
	out := make(map[string]string, len(s.reporters))
	for _, r := range s.reporters {
		out[r.Name()] = r.Report()
	}
	return out
}
