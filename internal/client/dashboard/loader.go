// Package dashboard loads role-specific dashboard data and drives the
// credential and candidate actions reachable from it. Lists degrade to
// sample fixtures when the server returns nothing or cannot be reached;
// substitution on error additionally raises a notice, substitution on
// empty stays silent.
package dashboard

import (
	"context"
	"time"

	"github.com/safariskills/passport/internal/client/gateway"
	"github.com/safariskills/passport/internal/client/modal"
	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/view"
	"github.com/safariskills/passport/internal/logging"
)

// Display bounds. The professional wallet renders in full.
const (
	historyLimit = 5
	issuedLimit  = 10
)

const sampleNotice = "Showing sample data - live data is unavailable"

// Loader fetches dashboard data through the gateway and renders it. Load
// failures never propagate past it: every path ends in rendered content,
// a toast, or both.
type Loader struct {
	api      gateway.API
	screen   *view.Screen
	notifier *view.Notifier
	modals   *modal.Manager
	log      logging.Logger

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

func NewLoader(api gateway.API, screen *view.Screen, notifier *view.Notifier, modals *modal.Manager, log logging.Logger) *Loader {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Loader{
		api:      api,
		screen:   screen,
		notifier: notifier,
		modals:   modals,
		log:      log,
		now:      time.Now,
	}
}

// LoadForRole populates the dashboard for the given role. Unknown roles
// load nothing.
func (l *Loader) LoadForRole(ctx context.Context, role models.Role) {
	switch role {
	case models.RoleProfessional:
		l.loadProfessional(ctx)
	case models.RoleEmployer:
		l.loadEmployer(ctx)
	case models.RoleInstitution:
		l.loadInstitution(ctx)
	default:
		l.log.Warn(ctx, "no dashboard for role", "role", role)
	}
}

func (l *Loader) loadProfessional(ctx context.Context) {
	done := l.notifier.Loading("Loading your credentials...")
	defer done()

	creds, err := l.api.MyCredentials(ctx)
	sample := false
	if err != nil {
		l.log.Warn(ctx, "credential load failed, substituting sample data", "error", err)
		l.notifier.Info(sampleNotice)
		creds, sample = SampleCredentials(), true
	} else if len(creds) == 0 {
		creds, sample = SampleCredentials(), true
	}

	l.screen.Update(ctx, view.RegionStats, view.StatsPanel{
		Role:  models.RoleProfessional,
		Stats: ProfessionalStats(creds),
	})
	l.screen.Update(ctx, view.RegionCredentials, view.CredentialList{Items: creds, Sample: sample})
}

func (l *Loader) loadEmployer(ctx context.Context) {
	done := l.notifier.Loading("Loading verification history...")
	defer done()

	history, err := l.api.VerificationHistory(ctx)
	sample := false
	if err != nil {
		l.log.Warn(ctx, "history load failed, substituting sample data", "error", err)
		l.notifier.Info(sampleNotice)
		history, sample = SampleVerifications(l.now()), true
	} else if len(history) == 0 {
		history, sample = SampleVerifications(l.now()), true
	}

	shown, truncated := bound(history, historyLimit)
	l.screen.Update(ctx, view.RegionStats, view.StatsPanel{
		Role:  models.RoleEmployer,
		Stats: EmployerStats(history, l.now()),
	})
	l.screen.Update(ctx, view.RegionHistory, view.VerificationList{
		Items:     shown,
		Truncated: truncated,
		Sample:    sample,
	})
}

func (l *Loader) loadInstitution(ctx context.Context) {
	done := l.notifier.Loading("Loading issued credentials...")
	defer done()

	issued, err := l.api.IssuedCredentials(ctx)
	sample := false
	if err != nil {
		l.log.Warn(ctx, "issued load failed, substituting sample data", "error", err)
		l.notifier.Info(sampleNotice)
		issued, sample = SampleIssued(), true
	} else if len(issued) == 0 {
		issued, sample = SampleIssued(), true
	}

	shown, truncated := bound(issued, issuedLimit)
	l.screen.Update(ctx, view.RegionStats, view.StatsPanel{
		Role:  models.RoleInstitution,
		Stats: InstitutionStats(issued),
	})
	l.screen.Update(ctx, view.RegionIssued, view.CredentialList{
		Items:     shown,
		Truncated: truncated,
		Sample:    sample,
	})
}

// ViewCredential opens the credential detail modal. Sample rows resolve
// locally; a failed fetch of a live row degrades to a sample detail with a
// notice rather than an empty modal.
func (l *Loader) ViewCredential(ctx context.Context, id string) {
	var detail view.CredentialDetail

	if models.IsSampleID(id) {
		c, ok := sampleCredentialByID(id)
		if !ok {
			l.notifier.Error("Credential not found")
			return
		}
		detail = view.CredentialDetail{Credential: c, Sample: true}
	} else {
		done := l.notifier.Loading("Loading credential...")
		c, err := l.api.GetCredential(ctx, id)
		done()
		if err != nil {
			l.log.Warn(ctx, "credential fetch failed, substituting sample detail", "id", id, "error", err)
			l.notifier.Info(sampleNotice)
			detail = view.CredentialDetail{Credential: SampleCredentials()[0], Sample: true}
		} else {
			detail = view.CredentialDetail{Credential: *c}
		}
	}

	l.modals.Show(ctx, modal.IDCredentialDetail)
	l.screen.Update(ctx, view.RegionCredentialDetail, detail)
}

// DownloadQR fetches a credential's QR code as PNG bytes. Sample rows have
// no remote identity, so the request is refused with a handled message and
// nil bytes.
func (l *Loader) DownloadQR(ctx context.Context, id string) []byte {
	if models.IsSampleID(id) {
		l.notifier.Info("QR codes are not available for sample credentials")
		return nil
	}

	done := l.notifier.Loading("Preparing QR code...")
	defer done()

	png, err := l.api.CredentialQR(ctx, id)
	if err != nil {
		l.notifier.Error(gateway.Reason(err))
		return nil
	}
	return png
}

// RevokeCredential revokes an issued credential and reloads the register.
// Revocation is destructive, so failures surface as errors with no sample
// fallback.
func (l *Loader) RevokeCredential(ctx context.Context, id string) error {
	if models.IsSampleID(id) {
		l.notifier.Info("Sample credentials cannot be revoked")
		return nil
	}

	done := l.notifier.Loading("Revoking credential...")
	err := l.api.RevokeCredential(ctx, id)
	done()
	if err != nil {
		l.notifier.Error(gateway.Reason(err))
		return err
	}

	l.notifier.Success("Credential revoked")
	l.loadInstitution(ctx)
	return nil
}

// SearchCandidates runs an employer directory search. An empty result set
// renders as empty; only a failed request substitutes sample candidates.
func (l *Loader) SearchCandidates(ctx context.Context, req gateway.CandidateSearch) {
	done := l.notifier.Loading("Searching candidates...")
	defer done()

	cands, err := l.api.SearchCandidates(ctx, req)
	sample := false
	if err != nil {
		l.log.Warn(ctx, "candidate search failed, substituting sample data", "error", err)
		l.notifier.Info(sampleNotice)
		cands, sample = SampleCandidates(), true
	}

	l.screen.Update(ctx, view.RegionCandidates, view.CandidateList{Items: cands, Sample: sample})
}

// ViewCandidate opens a candidate profile, degrading to a sample profile
// with a notice when the fetch fails.
func (l *Loader) ViewCandidate(ctx context.Context, id string) {
	var profile view.CandidateProfile

	if models.IsSampleID(id) {
		found := false
		for _, c := range SampleCandidates() {
			if c.ID == id {
				profile = view.CandidateProfile{Candidate: c, Sample: true}
				found = true
				break
			}
		}
		if !found {
			l.notifier.Error("Candidate not found")
			return
		}
	} else {
		done := l.notifier.Loading("Loading candidate...")
		c, err := l.api.GetCandidate(ctx, id)
		done()
		if err != nil {
			l.log.Warn(ctx, "candidate fetch failed, substituting sample profile", "id", id, "error", err)
			l.notifier.Info(sampleNotice)
			profile = view.CandidateProfile{Candidate: SampleCandidates()[0], Sample: true}
		} else {
			profile = view.CandidateProfile{Candidate: *c}
		}
	}

	l.modals.Show(ctx, modal.IDCandidateProfile)
	l.screen.Update(ctx, view.RegionCandidateProfile, profile)
}

// bound truncates items to limit, reporting whether anything was cut.
// A non-positive limit means unbounded.
func bound[T any](items []T, limit int) ([]T, bool) {
	if limit <= 0 || len(items) <= limit {
		return items, false
	}
	return items[:limit], true
}
