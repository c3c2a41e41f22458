package ui

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultToastDuration is used when AddToast is called with duration 0.
const DefaultToastDuration = 5 * time.Second

// ToastKind is the closed set of toast severities.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// Toast is a transient notification. Duration 0 means the default was
// applied; a negative Duration marks a sticky toast that only goes away via
// RemoveToast or ClearToasts.
type Toast struct {
	ID       string        `json:"id"`
	Kind     ToastKind     `json:"kind"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"`
	Created  time.Time     `json:"created"`
}

// AddToast appends a toast and schedules its dismissal. A zero duration
// gets DefaultToastDuration; a negative duration disables auto-dismiss.
// The returned id can be passed to RemoveToast.
func (s *Store) AddToast(kind ToastKind, message string, duration time.Duration) string {
	if duration == 0 {
		duration = DefaultToastDuration
	}

	now := s.now()
	id := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
	toast := Toast{
		ID:       id,
		Kind:     kind,
		Message:  message,
		Duration: duration,
		Created:  now,
	}

	s.mutate("addToast", false, func(st *State) {
		st.Toasts = append(st.Toasts, toast)
	})

	if duration > 0 {
		cancel := s.schedule(duration, func() { s.RemoveToast(id) })
		s.mu.Lock()
		// RemoveToast may already have run if the scheduler fired inline.
		if s.hasToastLocked(id) {
			s.timers[id] = cancel
		} else {
			s.mu.Unlock()
			cancel()
			return id
		}
		s.mu.Unlock()
	}

	return id
}

// RemoveToast dismisses the toast with the given id and cancels its pending
// auto-dismiss. Unknown ids are a no-op, so a manual dismissal racing the
// timer is safe.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	cancel, ok := s.timers[id]
	if ok {
		delete(s.timers, id)
	}
	s.mu.Unlock()
	if ok {
		cancel()
	}

	s.mutate("removeToast", false, func(st *State) {
		for i, toast := range st.Toasts {
			if toast.ID == id {
				st.Toasts = append(st.Toasts[:i], st.Toasts[i+1:]...)
				break
			}
		}
	})
}

// ClearToasts dismisses every toast and cancels all pending auto-dismissals.
func (s *Store) ClearToasts() {
	s.mu.Lock()
	cancels := make([]func(), 0, len(s.timers))
	for id, cancel := range s.timers {
		cancels = append(cancels, cancel)
		delete(s.timers, id)
	}
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}

	s.mutate("clearToasts", false, func(st *State) {
		st.Toasts = nil
	})
}

func (s *Store) hasToastLocked(id string) bool {
	for _, toast := range s.state.Toasts {
		if toast.ID == id {
			return true
		}
	}
	return false
}
