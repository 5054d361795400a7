package scan

import (
	"context"
	"strings"
	"sync"

	"github.com/safariskills/passport/internal/client/gateway"
	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/view"
	"github.com/safariskills/passport/internal/logging"
)

// Verifier resolves a credential id into a verification summary. The
// gateway client satisfies it.
type Verifier interface {
	Verify(ctx context.Context, id string) (*models.VerifiedCredential, error)
}

// Phase of the verification workflow. At most one scanner session exists
// at a time; a decoded payload moves the workflow to resolving before the
// scanner is stopped, so later frames from the same session are ignored.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseResolving
)

// Workflow drives credential verification from either input path (manual
// entry or camera scan) to a rendered outcome. Both paths converge on the
// same resolution step.
type Workflow struct {
	api      Verifier
	scanner  Scanner
	screen   *view.Screen
	notifier *view.Notifier
	opts     Options
	log      logging.Logger

	mu    sync.Mutex
	phase Phase
}

func NewWorkflow(api Verifier, scanner Scanner, screen *view.Screen, notifier *view.Notifier, opts Options, log logging.Logger) *Workflow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Workflow{
		api:      api,
		scanner:  scanner,
		screen:   screen,
		notifier: notifier,
		opts:     opts,
		log:      log,
	}
}

// Phase returns the current workflow phase.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// VerifyManual verifies a hand-entered credential id. A blank id raises
// exactly one warning and never reaches the gateway.
func (w *Workflow) VerifyManual(ctx context.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		w.notifier.Warn("Please enter a credential ID")
		return
	}

	w.mu.Lock()
	if w.phase != PhaseIdle {
		w.mu.Unlock()
		return
	}
	w.phase = PhaseResolving
	w.mu.Unlock()

	w.resolve(ctx, id)
}

// StartScan opens a camera scanning session. While one is active, further
// StartScan calls are no-ops. A session that cannot begin raises a single
// error toast and returns the workflow to idle.
func (w *Workflow) StartScan(ctx context.Context) {
	w.mu.Lock()
	if w.phase != PhaseIdle {
		w.mu.Unlock()
		return
	}
	w.phase = PhaseScanning
	w.mu.Unlock()

	err := w.scanner.Start(ctx, w.opts, func(text string) { w.decoded(ctx, text) })
	if err != nil {
		w.mu.Lock()
		w.phase = PhaseIdle
		w.mu.Unlock()
		w.log.Warn(ctx, "scanner session failed to start", "error", err)
		w.notifier.Error("Unable to start the camera")
	}
}

// StopScan ends the scanning session without resolving anything, e.g. when
// the user closes the scanner. Outside of scanning it is a no-op.
func (w *Workflow) StopScan(ctx context.Context) {
	w.mu.Lock()
	if w.phase != PhaseScanning {
		w.mu.Unlock()
		return
	}
	w.phase = PhaseIdle
	w.mu.Unlock()

	if err := w.scanner.Stop(ctx); err != nil {
		w.log.Warn(ctx, "scanner stop failed", "error", err)
	}
}

// decoded handles the first successfully decoded payload of a session:
// stop the scanner, then resolve. Frames decoded after the first are
// dropped.
func (w *Workflow) decoded(ctx context.Context, text string) {
	w.mu.Lock()
	if w.phase != PhaseScanning {
		w.mu.Unlock()
		return
	}
	w.phase = PhaseResolving
	w.mu.Unlock()

	if err := w.scanner.Stop(ctx); err != nil {
		w.log.Warn(ctx, "scanner stop failed", "error", err)
	}
	w.resolve(ctx, strings.TrimSpace(text))
}

// resolve asks the gateway to verify the credential and renders the
// outcome. Every resolution, verified or not, returns the workflow to
// idle.
func (w *Workflow) resolve(ctx context.Context, id string) {
	done := w.notifier.Loading("Verifying credential...")
	summary, err := w.api.Verify(ctx, id)
	done()

	var result models.VerificationResult
	if err != nil {
		w.log.Info(ctx, "verification failed", "id", id, "error", err)
		result = models.FailedResult(gateway.Reason(err))
	} else {
		result = models.VerifiedResult(*summary)
	}

	w.screen.Update(ctx, view.RegionVerification, result)

	w.mu.Lock()
	w.phase = PhaseIdle
	w.mu.Unlock()
}
