package scan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/safariskills/passport/internal/client/gateway"
	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/view"
)

type fakeVerifier struct {
	verify func(id string) (*models.VerifiedCredential, error)
	calls  []string
}

func (f *fakeVerifier) Verify(_ context.Context, id string) (*models.VerifiedCredential, error) {
	f.calls = append(f.calls, id)
	return f.verify(id)
}

type fakeScanner struct {
	startErr   error
	stopErr    error
	startCalls int
	stopCalls  int
	onDecode   func(string)
}

func (f *fakeScanner) Start(_ context.Context, _ Options, onDecode func(string)) error {
	f.startCalls++
	if f.startErr != nil {
		return f.startErr
	}
	f.onDecode = onDecode
	return nil
}

func (f *fakeScanner) Stop(context.Context) error {
	f.stopCalls++
	return f.stopErr
}

type fakeRenderer struct {
	mu      sync.Mutex
	regions map[string]any
	toasts  []view.Toast
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{regions: map[string]any{}}
}

func (r *fakeRenderer) Render(region string, vm any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions[region] = vm
	return true
}

func (r *fakeRenderer) ShowToast(t view.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *fakeRenderer) DismissToast(string)     {}
func (r *fakeRenderer) SetLoading(bool, string) {}

func newTestWorkflow(v *fakeVerifier, s *fakeScanner) (*Workflow, *fakeRenderer) {
	r := newFakeRenderer()
	w := NewWorkflow(v, s, view.NewScreen(r, nil), view.NewNotifier(r, time.Minute),
		Options{FacingMode: "environment", FPS: 10, Box: 250}, nil)
	return w, r
}

func TestWorkflow_VerifyManualRendersVerifiedOutcome(t *testing.T) {
	v := &fakeVerifier{verify: func(id string) (*models.VerifiedCredential, error) {
		return &models.VerifiedCredential{CredentialID: id, CredentialType: models.TypeDegree}, nil
	}}
	w, r := newTestWorkflow(v, &fakeScanner{})

	w.VerifyManual(context.Background(), "  cred-1  ")

	require.Equal(t, []string{"cred-1"}, v.calls, "id must be trimmed before the gateway call")
	result := r.regions[view.RegionVerification].(models.VerificationResult)
	require.True(t, result.Verified)
	require.Equal(t, "cred-1", result.Summary.CredentialID)
	require.Equal(t, PhaseIdle, w.Phase())
}

func TestWorkflow_VerifyManualBlankIDWarnsOnceWithoutGatewayCall(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (*models.VerifiedCredential, error) {
		t.Fatal("blank id must not reach the gateway")
		return nil, nil
	}}
	w, r := newTestWorkflow(v, &fakeScanner{})

	w.VerifyManual(context.Background(), "   ")

	require.Len(t, r.toasts, 1)
	require.Equal(t, view.SeverityWarning, r.toasts[0].Severity)
	require.NotContains(t, r.regions, view.RegionVerification)
}

func TestWorkflow_GatewayErrorRendersFailedOutcome(t *testing.T) {
	v := &fakeVerifier{verify: func(string) (*models.VerifiedCredential, error) {
		return nil, &gateway.Error{Status: 404, Message: "Credential not found"}
	}}
	w, r := newTestWorkflow(v, &fakeScanner{})

	w.VerifyManual(context.Background(), "nope")

	result := r.regions[view.RegionVerification].(models.VerificationResult)
	require.False(t, result.Verified)
	require.Equal(t, "Credential not found", result.Reason)
	require.Equal(t, PhaseIdle, w.Phase())
}

func TestWorkflow_StartScanIsSingleSession(t *testing.T) {
	s := &fakeScanner{}
	w, _ := newTestWorkflow(&fakeVerifier{}, s)
	ctx := context.Background()

	w.StartScan(ctx)
	w.StartScan(ctx) // second start while scanning: no-op

	require.Equal(t, 1, s.startCalls)
	require.Equal(t, PhaseScanning, w.Phase())
}

func TestWorkflow_StartScanFailureRaisesSingleErrorToast(t *testing.T) {
	s := &fakeScanner{startErr: errors.New("camera permission denied")}
	w, r := newTestWorkflow(&fakeVerifier{}, s)

	w.StartScan(context.Background())

	require.Len(t, r.toasts, 1)
	require.Equal(t, view.SeverityError, r.toasts[0].Severity)
	require.Equal(t, PhaseIdle, w.Phase(), "failed start must return to idle")
}

func TestWorkflow_DecodeStopsScannerThenResolves(t *testing.T) {
	v := &fakeVerifier{verify: func(id string) (*models.VerifiedCredential, error) {
		return &models.VerifiedCredential{CredentialID: id}, nil
	}}
	s := &fakeScanner{}
	w, r := newTestWorkflow(v, s)
	ctx := context.Background()

	w.StartScan(ctx)
	s.onDecode("cred-7")

	require.Equal(t, 1, s.stopCalls)
	require.Equal(t, []string{"cred-7"}, v.calls)
	result := r.regions[view.RegionVerification].(models.VerificationResult)
	require.True(t, result.Verified)
	require.Equal(t, PhaseIdle, w.Phase())
}

func TestWorkflow_LateFramesAfterFirstDecodeAreDropped(t *testing.T) {
	v := &fakeVerifier{verify: func(id string) (*models.VerifiedCredential, error) {
		return &models.VerifiedCredential{CredentialID: id}, nil
	}}
	s := &fakeScanner{}
	w, _ := newTestWorkflow(v, s)
	ctx := context.Background()

	w.StartScan(ctx)
	s.onDecode("first")
	s.onDecode("second") // session already resolving/idle

	require.Equal(t, []string{"first"}, v.calls)
}

func TestWorkflow_StopScanOutsideScanningIsNoOp(t *testing.T) {
	s := &fakeScanner{}
	w, _ := newTestWorkflow(&fakeVerifier{}, s)
	ctx := context.Background()

	w.StopScan(ctx) // idle: nothing to stop
	require.Zero(t, s.stopCalls)

	w.StartScan(ctx)
	w.StopScan(ctx)
	w.StopScan(ctx) // already stopped
	require.Equal(t, 1, s.stopCalls)
	require.Equal(t, PhaseIdle, w.Phase())
}
