// Package modal manages overlay dialogs: synthesis from a static content
// table, reveal, form submission wiring, focus containment and a single
// teardown path shared by every dismissal trigger.
package modal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/safariskills/passport/internal/logging"
)

// ErrValidation marks a local, pre-network form failure. It blocks the
// submit handler and never reaches the gateway.
var ErrValidation = errors.New("validation failed")

// ErrUnknownModal is returned by Submit for ids the manager is not showing.
var ErrUnknownModal = errors.New("unknown modal")

// State of one overlay instance.
type State int

const (
	StateAbsent State = iota
	StateVisible
	StateClosing
)

// Well-known modal ids. The content table is keyed by these; unknown ids
// fall back to a placeholder.
const (
	IDLogin             = "login"
	IDRegister          = "register"
	IDRequestCredential = "request-credential"
	IDIssueCredential   = "issue-credential"
	IDSearchCandidates  = "search-candidates"
	IDCredentialDetail  = "credential-detail"
	IDCandidateProfile  = "candidate-profile"
	IDIssueReceipt      = "issue-receipt"
	IDScanner           = "scanner"
)

// Field kinds understood by the validation pass.
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldSelect   = "select"
	FieldTextarea = "textarea"
	FieldDate     = "date"
)

// Field describes one form input of a modal.
type Field struct {
	ID       string
	Label    string
	Kind     string
	Required bool
	Options  []string // for selects
}

// Content is a static modal description, keyed by modal id in the content
// table.
type Content struct {
	Title       string
	Body        string // informational modals
	Fields      []Field
	SubmitLabel string
}

// SubmitFunc handles a validated form submission.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Host is the rendering layer for overlays. Conceal must leave the overlay
// non-interactive immediately; Unmount removes its node.
type Host interface {
	Mount(id string, c Content)
	Reveal(id string)
	Conceal(id string)
	Unmount(id string)
	SetScrollLocked(locked bool)
	MarkFieldError(id, field, message string)
	ClearFieldErrors(id string)
}

// overlay is one registered overlay instance.
type overlay struct {
	id      string
	content Content
	state   State
	submit  SubmitFunc
	focus   *FocusRing
}

// Manager drives the overlay lifecycle Absent -> Visible -> Closing ->
// Absent. At most one set of overlays should be visible at a time, but the
// manager tolerates several by closing all of them together.
type Manager struct {
	mu       sync.Mutex
	host     Host
	delay    time.Duration
	contents map[string]Content
	handlers map[string]SubmitFunc
	overlays []*overlay
	log      logging.Logger

	// after is a seam for tests; defaults to time.AfterFunc.
	after func(d time.Duration, f func())
}

// NewManager builds a manager removing overlay nodes closeDelay after they
// are concealed, so the close animation finishes before removal.
func NewManager(host Host, closeDelay time.Duration, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Manager{
		host:     host,
		delay:    closeDelay,
		contents: make(map[string]Content),
		handlers: make(map[string]SubmitFunc),
		log:      log,
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Register adds a modal to the static content table, with an optional
// submit handler.
func (m *Manager) Register(id string, c Content, submit SubmitFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contents[id] = c
	if submit != nil {
		m.handlers[id] = submit
	}
}

// placeholder is shown for ids missing from the content table. Unknown
// modals must render something rather than fail.
func placeholder() Content {
	return Content{
		Title: "Feature Coming Soon",
		Body:  "This feature is currently under development.",
	}
}

// ContentFor returns the content table entry for id, so interactive
// frontends can walk its fields.
func (m *Manager) ContentFor(id string) (Content, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contents[id]
	return c, ok
}

// Show reveals the modal with the given id, synthesizing it from the
// content table if no instance exists yet. Focus containment is installed
// on reveal: tab cycles only among the modal's focusable items, wrapping
// first<->last.
func (m *Manager) Show(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o := m.find(id); o != nil && o.state == StateVisible {
		m.host.Reveal(id)
		return
	}

	content, ok := m.contents[id]
	if !ok {
		m.log.Warn(ctx, "no content for modal, showing placeholder", "id", id)
		content = placeholder()
	}

	o := &overlay{
		id:      id,
		content: content,
		state:   StateVisible,
		submit:  m.handlers[id],
		focus:   NewFocusRing(focusables(content)),
	}
	m.overlays = append(m.overlays, o)

	m.host.Mount(id, content)
	m.host.Reveal(id)
	m.host.SetScrollLocked(true)
}

// Close closes every currently visible overlay, not just the most recent.
// Overlays become non-interactive immediately; their nodes are removed only
// after the close delay. Validation markers are cleared and page scroll is
// restored. Calling Close with nothing visible is a no-op.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for _, o := range m.overlays {
		if o.state != StateVisible {
			continue
		}
		o.state = StateClosing
		o.focus = nil // focus containment ends with visibility
		m.host.Conceal(o.id)
		m.host.ClearFieldErrors(o.id)

		id := o.id
		m.after(m.delay, func() { m.remove(id) })
		closed++
	}

	if closed > 0 {
		m.host.SetScrollLocked(false)
	}
}

// Dismissal triggers. Each routes through Close so there is exactly one
// teardown code path.

// CloseButton handles the explicit close control.
func (m *Manager) CloseButton(ctx context.Context) { m.Close(ctx) }

// BackdropClick handles a click on the overlay backdrop (not its content).
func (m *Manager) BackdropClick(ctx context.Context) { m.Close(ctx) }

// CancelKey handles the cancel/escape key.
func (m *Manager) CancelKey(ctx context.Context) { m.Close(ctx) }

// Submit validates the form values of a visible modal and, if they pass,
// runs its submit handler. Validation failures mark the offending fields
// and return ErrValidation without touching the handler.
func (m *Manager) Submit(ctx context.Context, id string, values map[string]string) error {
	m.mu.Lock()
	o := m.find(id)
	if o == nil || o.state != StateVisible {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownModal, id)
	}
	content := o.content
	submit := o.submit
	m.mu.Unlock()

	if msgs := validate(content, values); len(msgs) > 0 {
		for field, msg := range msgs {
			m.host.MarkFieldError(id, field, msg)
		}
		return ErrValidation
	}

	if submit == nil {
		return nil
	}
	return submit(ctx, values)
}

// FocusNext moves containment focus forward in the top visible modal,
// wrapping last->first. With no visible modal it is a no-op returning "".
func (m *Manager) FocusNext() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o := m.top(); o != nil && o.focus != nil {
		return o.focus.Next()
	}
	return ""
}

// FocusPrev moves containment focus backward, wrapping first->last.
func (m *Manager) FocusPrev() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o := m.top(); o != nil && o.focus != nil {
		return o.focus.Prev()
	}
	return ""
}

// Visible lists the ids of currently visible overlays.
func (m *Manager) Visible() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, o := range m.overlays {
		if o.state == StateVisible {
			ids = append(ids, o.id)
		}
	}
	return ids
}

func (m *Manager) find(id string) *overlay {
	for _, o := range m.overlays {
		if o.id == id && o.state != StateAbsent {
			return o
		}
	}
	return nil
}

func (m *Manager) top() *overlay {
	for i := len(m.overlays) - 1; i >= 0; i-- {
		if m.overlays[i].state == StateVisible {
			return m.overlays[i]
		}
	}
	return nil
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.overlays {
		if o.id == id && o.state == StateClosing {
			m.overlays = append(m.overlays[:i], m.overlays[i+1:]...)
			m.host.Unmount(id)
			return
		}
	}
}

// focusables lists the focusable items of a modal: its fields, then the
// submit button (when present), then the close button.
func focusables(c Content) []string {
	items := make([]string, 0, len(c.Fields)+2)
	for _, f := range c.Fields {
		items = append(items, f.ID)
	}
	if c.SubmitLabel != "" {
		items = append(items, "submit")
	}
	items = append(items, "close")
	return items
}

// validate runs the local pre-network checks: required fields must be
// non-blank, email fields must look like addresses.
func validate(c Content, values map[string]string) map[string]string {
	msgs := make(map[string]string)
	for _, f := range c.Fields {
		v := strings.TrimSpace(values[f.ID])
		if f.Required && v == "" {
			msgs[f.ID] = f.Label + " is required"
			continue
		}
		if v != "" && f.Kind == FieldEmail && !strings.Contains(v[1:], "@") {
			msgs[f.ID] = "Please enter a valid email address"
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}
