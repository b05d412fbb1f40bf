package chat

import "sync"

// StatusTracker holds the provider availability flag shared by all widgets.
// It is constructed once in main and injected, never a package singleton.
type StatusTracker struct {
	mu     sync.RWMutex
	status APIStatus
	pinned bool
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{status: StatusChecking}
}

// PinUnavailable marks the provider permanently unavailable, used when the
// API credential is absent at startup. Later MarkAvailable calls are ignored.
func (t *StatusTracker) PinUnavailable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusUnavailable
	t.pinned = true
}

func (t *StatusTracker) MarkAvailable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pinned {
		return
	}
	t.status = StatusAvailable
}

func (t *StatusTracker) MarkUnavailable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusUnavailable
}

func (t *StatusTracker) Status() APIStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Pinned reports whether the flag was fixed at startup. A transient
// unavailable flag is not pinned; later probes may clear it.
func (t *StatusTracker) Pinned() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pinned
}
