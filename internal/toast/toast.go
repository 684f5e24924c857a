// Package toast holds transient notifications shown by the TUI.
//
// A Surface is a presentation sink, not a queue: it keeps at most a fixed
// number of recent toasts, newest first, and drops them once they expire.
package toast

import (
	"sync"
	"time"
)

// Kind classifies a toast for styling.
type Kind int

const (
	Info Kind = iota
	Success
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

const (
	DefaultTTL      = 4 * time.Second
	DefaultCapacity = 3
)

// Toast is a single notification.
type Toast struct {
	ID        int64
	Message   string
	Kind      Kind
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Notifier accepts fire-and-forget notifications.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Surface is a bounded, most-recent-first toast list. Safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   int64
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

var _ Notifier = (*Surface)(nil)

// NewSurface returns a surface with the default TTL and capacity.
func NewSurface() *Surface {
	return &Surface{ttl: DefaultTTL, capacity: DefaultCapacity, now: time.Now}
}

// WithOptions returns a surface with a custom TTL and capacity.
func WithOptions(ttl time.Duration, capacity int, now func() time.Time) *Surface {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Surface{ttl: ttl, capacity: capacity, now: now}
}

// Notify pushes a toast. Empty messages are dropped.
func (s *Surface) Notify(message string, kind Kind) {
	if s == nil || message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.nextID++
	t := Toast{
		ID:        s.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.toasts = append([]Toast{t}, s.toasts...)
	if len(s.toasts) > s.capacity {
		s.toasts = s.toasts[:s.capacity]
	}
}

// Active returns the unexpired toasts, newest first.
func (s *Surface) Active() []Toast {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		if now.Before(t.ExpiresAt) {
			out = append(out, t)
		}
	}
	return out
}

// Prune drops expired toasts and reports whether any remain.
func (s *Surface) Prune() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return len(s.toasts) > 0
}

// Dismiss removes a toast by ID.
func (s *Surface) Dismiss(id int64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}
