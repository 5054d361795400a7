// Package view decouples data shaping from presentation. Components build
// declarative view-models and hand them to a Renderer; the renderer owns all
// markup/terminal concerns, including which regions currently exist.
package view

import (
	"context"

	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/logging"
)

// Regions of the client surface a renderer may or may not currently show.
const (
	RegionNav              = "nav"
	RegionWelcome          = "welcome"
	RegionStats            = "stats"
	RegionCredentials      = "credentials"
	RegionHistory          = "history"
	RegionIssued           = "issued"
	RegionCandidates       = "candidates"
	RegionCandidateProfile = "candidate-profile"
	RegionCredentialDetail = "credential-detail"
	RegionReceipt          = "receipt"
	RegionVerification     = "verification"
)

// Renderer is the rendering layer. Render reports whether the region was
// present; a false return means the update had nowhere to go.
type Renderer interface {
	Render(region string, vm any) bool
	ShowToast(t Toast)
	DismissToast(id string)
	SetLoading(active bool, message string)
}

// Screen wraps a Renderer so that updates to regions the renderer no longer
// shows are silently skipped, never fatal. An outstanding load settling
// after the user navigated away lands here and simply disappears.
type Screen struct {
	r   Renderer
	log logging.Logger
}

func NewScreen(r Renderer, log logging.Logger) *Screen {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Screen{r: r, log: log}
}

// Update renders vm into region if the region still exists.
func (s *Screen) Update(ctx context.Context, region string, vm any) {
	if !s.r.Render(region, vm) {
		s.log.Debug(ctx, "skipped update to absent region", "region", region)
	}
}

// Stat is one aggregate counter on a dashboard.
type Stat struct {
	Label string
	Value string
}

// StatsPanel is the set of role-specific aggregate counters.
type StatsPanel struct {
	Role  models.Role
	Stats []Stat
}

// CredentialList shows credentials, possibly truncated to a bound.
type CredentialList struct {
	Items     []models.Credential
	Truncated bool
	Sample    bool // items are fabricated stand-ins
}

// VerificationList shows an employer's recent verification history.
type VerificationList struct {
	Items     []models.Verification
	Truncated bool
	Sample    bool
}

// CandidateList shows employer search results.
type CandidateList struct {
	Items  []models.Candidate
	Sample bool
}

// CandidateProfile shows a single candidate in detail.
type CandidateProfile struct {
	Candidate models.Candidate
	Sample    bool
}

// CredentialDetail shows a single credential in detail.
type CredentialDetail struct {
	Credential models.Credential
	Sample     bool
}

// IssueReceipt confirms a freshly issued credential.
type IssueReceipt struct {
	CredentialID string
	IPFSHash     string
	ChainHash    string
	QRCodeBase64 string
}

// Nav is the navigation bar state.
type Nav struct {
	SignedIn bool
	Name     string
	Role     models.Role
}

// Welcome greets the signed-in user.
type Welcome struct {
	Name string
	Role models.Role
}
