// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package console

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/keydesk/keydesk/client"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/keydesk/keydesk/internal/notify"
	"github.com/keydesk/keydesk/internal/view"
)

// Tab is one of the console's panels.
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabKeys      Tab = "keys"
	TabLogs      Tab = "logs"
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabDashboard, TabKeys, TabLogs}
}

// ListState is the pagination state of one list.
type ListState struct {
	Page  int
	Pages int
}

// Modal is the single reusable dialog. Closing it keeps Content until the
// next render replaces it.
type Modal struct {
	Open    bool
	Content *view.Node
	// KeyValue is set while the modal shows a key's details.
	KeyValue string
}

// CreateForm holds the values of the key creation form.
type CreateForm struct {
	Quantity       string
	ExpirationDays string
}

// DefaultCreateForm is the form after a reset.
func DefaultCreateForm() CreateForm {
	return CreateForm{Quantity: "1", ExpirationDays: "30"}
}

// Screen is everything a front end draws.
type Screen struct {
	Tab           Tab
	Stats         model.Stats
	Keys          ListState
	KeyRecords    []model.KeyRecord
	KeyRows       []*view.Node
	KeyPagination *view.Node
	Filter        string
	Logs          ListState
	LogRows       []*view.Node
	LogPagination *view.Node
	Modal         Modal
	Form          CreateForm
}

// VisibleKeyRows returns the key rows the filter leaves visible.
func (s Screen) VisibleKeyRows() []*view.Node {
	out := make([]*view.Node, 0, len(s.KeyRows))
	for _, r := range s.KeyRows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

// Options configures a Console.
type Options struct {
	PerPage   int
	Confirmer Confirmer
	Notifier  *notify.Notifier
}

// Console is the controller layer of the admin console.
type Console struct {
	client    client.Client
	notifier  *notify.Notifier
	confirmer Confirmer
	perPage   int
	validate  *validator.Validate

	mu        sync.Mutex
	screen    Screen
	listeners []func()
}

// New returns a Console on the dashboard tab. A missing Confirmer declines
// every question; a missing Notifier gets the default TTL.
func New(c client.Client, opts Options) *Console {
	if opts.PerPage < 1 {
		opts.PerPage = client.DefaultPerPage
	}
	if opts.Confirmer == nil {
		opts.Confirmer = NeverConfirm
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(notify.DefaultTTL)
	}
	return &Console{
		client:    c,
		notifier:  opts.Notifier,
		confirmer: opts.Confirmer,
		perPage:   opts.PerPage,
		validate:  newValidator(),
		screen: Screen{
			Tab:  TabDashboard,
			Keys: ListState{Page: 1, Pages: 1},
			Logs: ListState{Page: 1, Pages: 1},
			Form: DefaultCreateForm(),
		},
	}
}

// Notifier returns the toast stack the console reports to.
func (c *Console) Notifier() *notify.Notifier {
	return c.notifier
}

// Client returns the backend client.
func (c *Console) Client() client.Client {
	return c.client
}

// OnChange registers fn to be called after every state change.
func (c *Console) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Snapshot returns a copy of the screen state.
func (c *Console) Snapshot() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.screen
	s.KeyRecords = append([]model.KeyRecord(nil), c.screen.KeyRecords...)
	s.KeyRows = append([]*view.Node(nil), c.screen.KeyRows...)
	s.LogRows = append([]*view.Node(nil), c.screen.LogRows...)
	return s
}

// update mutates the screen under the lock, then notifies listeners.
func (c *Console) update(fn func(s *Screen)) {
	c.mu.Lock()
	fn(&c.screen)
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, l := range listeners {
		l()
	}
}

// Init loads the stats and the first key page.
func (c *Console) Init(ctx context.Context) error {
	_ = c.LoadStats(ctx)
	_, err := c.LoadKeys(ctx, 1)
	return err
}
