package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder implements Renderer and records every call.
type recorder struct {
	mu        sync.Mutex
	regions   map[string]bool // region -> exists
	updates   []string
	toasts    []Toast
	dismissed []string
	loading   []bool
}

func newRecorder(existing ...string) *recorder {
	r := &recorder{regions: map[string]bool{}}
	for _, e := range existing {
		r.regions[e] = true
	}
	return r
}

func (r *recorder) Render(region string, vm any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.regions[region] {
		return false
	}
	r.updates = append(r.updates, region)
	return true
}

func (r *recorder) ShowToast(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *recorder) DismissToast(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dismissed = append(r.dismissed, id)
}

func (r *recorder) SetLoading(active bool, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = append(r.loading, active)
}

func TestScreen_UpdateSkipsAbsentRegions(t *testing.T) {
	r := newRecorder(RegionStats)
	s := NewScreen(r, nil)
	ctx := context.Background()

	s.Update(ctx, RegionStats, StatsPanel{})
	s.Update(ctx, RegionCredentials, CredentialList{}) // absent: must not panic

	require.Equal(t, []string{RegionStats}, r.updates)
}

func TestNotifier_ToastAutoDismisses(t *testing.T) {
	r := newRecorder()
	n := NewNotifier(r, 5*time.Second)

	var scheduled []func()
	var delays []time.Duration
	n.after = func(d time.Duration, f func()) {
		delays = append(delays, d)
		scheduled = append(scheduled, f)
	}

	n.Warn("Please enter a credential ID")

	require.Len(t, r.toasts, 1)
	require.Equal(t, SeverityWarning, r.toasts[0].Severity)
	require.Equal(t, []time.Duration{5 * time.Second}, delays)
	require.Empty(t, r.dismissed)

	scheduled[0]()
	require.Equal(t, []string{r.toasts[0].ID}, r.dismissed)
}

func TestNotifier_SeverityHelpers(t *testing.T) {
	r := newRecorder()
	n := NewNotifier(r, time.Second)
	n.after = func(time.Duration, func()) {}

	n.Info("i")
	n.Success("s")
	n.Warn("w")
	n.Error("e")

	require.Len(t, r.toasts, 4)
	require.Equal(t, SeverityInfo, r.toasts[0].Severity)
	require.Equal(t, SeveritySuccess, r.toasts[1].Severity)
	require.Equal(t, SeverityWarning, r.toasts[2].Severity)
	require.Equal(t, SeverityError, r.toasts[3].Severity)
}

func TestNotifier_LoadingPairsBeginAndEnd(t *testing.T) {
	r := newRecorder()
	n := NewNotifier(r, time.Second)

	done := n.Loading("Loading...")
	require.Equal(t, []bool{true}, r.loading)

	done()
	require.Equal(t, []bool{true, false}, r.loading)

	// Releasing twice must not hide an overlay someone else raised.
	done()
	require.Equal(t, []bool{true, false}, r.loading)
}

func TestNotifier_OverlappingLoadsHideOnlyAtZero(t *testing.T) {
	r := newRecorder()
	n := NewNotifier(r, time.Second)

	done1 := n.Loading("first")
	done2 := n.Loading("second")

	done1()
	// One scope still outstanding: overlay stays up.
	require.Equal(t, []bool{true, true}, r.loading)

	done2()
	require.Equal(t, []bool{true, true, false}, r.loading)
}
