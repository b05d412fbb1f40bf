package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (c stubChecker) Name() string                    { return c.name }
func (c stubChecker) Check(ctx context.Context) error { return c.err }

type stubReporter struct {
	name  string
	value string
}

func (r stubReporter) Name() string   { return r.name }
func (r stubReporter) Report() string { return r.value }

func TestReady(t *testing.T) {
	t.Run("all checkers pass", func(t *testing.T) {
		svc := NewService([]Checker{stubChecker{name: "db"}}, nil)
		assert.NoError(t, svc.Ready(context.Background()))
	})

	t.Run("failing checker names itself", func(t *testing.T) {
		boom := errors.New("connection refused")
		svc := NewService([]Checker{
			stubChecker{name: "db"},
			stubChecker{name: "queue", err: boom},
		}, nil)

		err := svc.Ready(context.Background())

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "queue")
	})
}

func TestOverview_ReportersNeverGateReadiness(t *testing.T) {
	svc := NewService(
		[]Checker{stubChecker{name: "db"}},
		[]Reporter{stubReporter{name: "chatProvider", value: "unavailable"}},
	)

	assert.NoError(t, svc.Ready(context.Background()), "a down reporter must not block readiness")
	assert.Equal(t, map[string]string{"chatProvider": "unavailable"}, svc.Overview())
}
