package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity of a toast notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Toast is a transient, non-blocking notification.
type Toast struct {
	ID       string
	Severity Severity
	Message  string
}

// Notifier is the transient feedback channel: toast notifications that
// auto-dismiss, and the blocking loading overlay.
//
// The loading overlay is shared. Every Loading call must be paired with
// exactly one call of the release it returns, including on error paths;
// the overlay hides only when all outstanding scopes have released.
type Notifier struct {
	r        Renderer
	duration time.Duration

	mu      sync.Mutex
	loading int

	// after is a seam for tests; defaults to time.AfterFunc.
	after func(d time.Duration, f func())
}

func NewNotifier(r Renderer, toastDuration time.Duration) *Notifier {
	return &Notifier{
		r:        r,
		duration: toastDuration,
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Notify shows a toast and schedules its dismissal.
func (n *Notifier) Notify(severity Severity, message string) {
	t := Toast{ID: uuid.NewString(), Severity: severity, Message: message}
	n.r.ShowToast(t)
	n.after(n.duration, func() { n.r.DismissToast(t.ID) })
}

func (n *Notifier) Info(message string)    { n.Notify(SeverityInfo, message) }
func (n *Notifier) Success(message string) { n.Notify(SeveritySuccess, message) }
func (n *Notifier) Warn(message string)    { n.Notify(SeverityWarning, message) }
func (n *Notifier) Error(message string)   { n.Notify(SeverityError, message) }

// Loading raises the blocking overlay with the given message and returns
// the release for this scope. The release is idempotent.
//
// Intended use:
//
//	done := notifier.Loading("Loading credentials...")
//	defer done()
func (n *Notifier) Loading(message string) func() {
	n.mu.Lock()
	n.loading++
	n.mu.Unlock()
	n.r.SetLoading(true, message)

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			n.loading--
			remaining := n.loading
			n.mu.Unlock()
			if remaining == 0 {
				n.r.SetLoading(false, "")
			}
		})
	}
}
