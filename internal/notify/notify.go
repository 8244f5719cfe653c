// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package notify keeps the stack of transient toast notifications shown by
// the console front ends. Each toast expires on its own after a fixed TTL.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 5 * time.Second

// Kind is the severity of a toast.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Toast is one notification.
type Toast struct {
	ID        int
	Kind      Kind
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the toast is no longer visible at now.
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Notifier is safe for concurrent use.
type Notifier struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	seq       int
	toasts    []Toast
	listeners []func(Toast)
}

// New returns a Notifier whose toasts live for ttl. A non-positive ttl
// selects DefaultTTL.
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source.
func (n *Notifier) SetClock(now func() time.Time) {
	n.mu.Lock()
	n.now = now
	n.mu.Unlock()
}

// TTL returns the lifetime of a toast.
func (n *Notifier) TTL() time.Duration {
	return n.ttl
}

// OnPush registers fn to be called, outside the lock, for every new toast.
func (n *Notifier) OnPush(fn func(Toast)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// Push appends a toast and notifies listeners.
func (n *Notifier) Push(kind Kind, message string) Toast {
	n.mu.Lock()
	now := n.now()
	n.seq++
	t := Toast{ID: n.seq, Kind: kind, Message: message, CreatedAt: now, ExpiresAt: now.Add(n.ttl)}
	n.toasts = append(n.toasts, t)
	listeners := append([]func(Toast){}, n.listeners...)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(t)
	}
	return t
}

func (n *Notifier) Info(message string) Toast    { return n.Push(KindInfo, message) }
func (n *Notifier) Success(message string) Toast { return n.Push(KindSuccess, message) }
func (n *Notifier) Warning(message string) Toast { return n.Push(KindWarning, message) }
func (n *Notifier) Error(message string) Toast   { return n.Push(KindError, message) }

// Active drops expired toasts and returns the remaining ones, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.toasts[:0]
	for _, t := range n.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	n.toasts = kept
	out := make([]Toast, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes the toast with id before it expires.
func (n *Notifier) Dismiss(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}

// All returns every toast pushed and not yet pruned, including expired ones.
func (n *Notifier) All() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Last returns the most recent toast, if any.
func (n *Notifier) Last() (Toast, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return Toast{}, false
	}
	return n.toasts[len(n.toasts)-1], true
}
