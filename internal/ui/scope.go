package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Scope is a set of key handlers that are live only while attached. The owner
// attaches a scope when its view becomes active and detaches it when the view
// goes away, so a handler can never fire for a view that is not shown.
type Scope struct {
	name     string
	handlers []scopedHandler
	attached bool
}

type scopedHandler struct {
	binding key.Binding
	run     func() tea.Cmd
}

// NewScope creates a detached scope.
func NewScope(name string) *Scope {
	return &Scope{name: name}
}

// Bind registers run for keys matching b.
func (s *Scope) Bind(b key.Binding, run func() tea.Cmd) {
	s.handlers = append(s.handlers, scopedHandler{binding: b, run: run})
}

// Attach makes the handlers live. Idempotent.
func (s *Scope) Attach() { s.attached = true }

// Detach disables the handlers. Idempotent.
func (s *Scope) Detach() { s.attached = false }

// Attached reports whether the handlers are live.
func (s *Scope) Attached() bool { return s.attached }

// Name returns the scope's name.
func (s *Scope) Name() string { return s.name }

// Handle runs the first handler matching msg. It reports false when the scope
// is detached or no binding matches, leaving the key for someone else.
func (s *Scope) Handle(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !s.attached {
		return nil, false
	}
	for _, h := range s.handlers {
		if key.Matches(msg, h.binding) {
			return h.run(), true
		}
	}
	return nil, false
}
