package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-server/pkg/content"
	"portfolio-server/pkg/llm"
)

// Manager tracks live widgets by id and drops the ones whose visitors have
// gone away. Widgets share the aggregator and the availability tracker but
// each owns its own conversation session.
type Manager struct {
	agg       *content.Aggregator
	model     llm.ChatModel
	primary   string
	secondary string
	status    *StatusTracker
	idleTTL   time.Duration

	mu      sync.Mutex
	widgets map[uuid.UUID]*Widget
}

func NewManager(agg *content.Aggregator, model llm.ChatModel, primaryModel, secondaryModel string, status *StatusTracker, idleTTL time.Duration) *Manager {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Manager{
		agg:       agg,
		model:     model,
		primary:   primaryModel,
		secondary: secondaryModel,
		status:    status,
		idleTTL:   idleTTL,
		widgets:   make(map[uuid.UUID]*Widget),
	}
}

// Open creates and starts a new widget.
func (m *Manager) Open() *Widget {
	w := NewWidget(m.agg, m.model, m.primary, m.secondary, m.status)
	m.mu.Lock()
	m.widgets[w.ID] = w
	m.mu.Unlock()
	w.Start()
	return w
}

func (m *Manager) Get(id uuid.UUID) (*Widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.widgets[id]
	if !ok {
		return nil, ErrWidgetUnknown
	}
	return w, nil
}

// Close disposes a widget and forgets it.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	w, ok := m.widgets[id]
	delete(m.widgets, id)
	m.mu.Unlock()
	if !ok {
		return ErrWidgetUnknown
	}
	w.Close()
	return nil
}

// RunSweeper closes idle widgets until the context ends. Meant to be started
// once from main.
func (m *Manager) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.idleTTL)
	m.mu.Lock()
	var stale []*Widget
	for id, w := range m.widgets {
		if w.idleSince().Before(cutoff) {
			stale = append(stale, w)
			delete(m.widgets, id)
		}
	}
	m.mu.Unlock()
	for _, w := range stale {
		w.Close()
	}
}
