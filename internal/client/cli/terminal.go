package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/safariskills/passport/internal/client/modal"
	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/view"
)

// Terminal renders the client surface as plain text. It implements both
// view.Renderer and modal.Host.
//
// Which regions exist depends on the current page: rendering the nav bar
// switches pages, and updates to regions the new page does not show are
// reported absent so the screen drops them.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	present map[string]bool
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, present: landingRegions()}
}

func landingRegions() map[string]bool {
	return map[string]bool{
		view.RegionNav:          true,
		view.RegionWelcome:      true,
		view.RegionVerification: true, // public verification is always reachable
	}
}

func dashboardRegions(role models.Role) map[string]bool {
	p := landingRegions()
	p[view.RegionStats] = true
	p[view.RegionCredentialDetail] = true
	switch role {
	case models.RoleProfessional:
		p[view.RegionCredentials] = true
	case models.RoleEmployer:
		p[view.RegionHistory] = true
		p[view.RegionCandidates] = true
		p[view.RegionCandidateProfile] = true
	case models.RoleInstitution:
		p[view.RegionIssued] = true
		p[view.RegionReceipt] = true
	}
	return p
}

func (t *Terminal) Render(region string, vm any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if nav, ok := vm.(view.Nav); ok && region == view.RegionNav {
		if nav.SignedIn {
			t.present = dashboardRegions(nav.Role)
		} else {
			t.present = landingRegions()
		}
	}
	if !t.present[region] {
		return false
	}

	t.print(region, vm)
	return true
}

func (t *Terminal) print(region string, vm any) {
	switch v := vm.(type) {
	case view.Nav:
		if v.SignedIn {
			fmt.Fprintf(t.w, "== Skills Passport | %s (%s) ==\n", v.Name, v.Role)
		} else {
			fmt.Fprintln(t.w, "== Skills Passport | signed out ==")
		}
	case view.Welcome:
		if v.Name != "" {
			fmt.Fprintf(t.w, "Welcome back, %s!\n", v.Name)
		}
	case view.StatsPanel:
		for _, s := range v.Stats {
			fmt.Fprintf(t.w, "%-20s %s\n", s.Label, s.Value)
		}
	case view.CredentialList:
		t.printCredentials(region, v)
	case view.VerificationList:
		fmt.Fprintln(t.w, sampleTag("Recent verifications:", v.Sample))
		for _, item := range v.Items {
			fmt.Fprintf(t.w, "  [%s] %s  %s (%s)\n", item.Status, item.ID, item.CandidateName, item.CredentialType)
		}
		if v.Truncated {
			fmt.Fprintln(t.w, "  ... more not shown")
		}
	case view.CandidateList:
		fmt.Fprintln(t.w, sampleTag("Candidates:", v.Sample))
		for _, c := range v.Items {
			fmt.Fprintf(t.w, "  %s  %s  %s\n", c.ID, c.Name, strings.Join(c.Skills, ", "))
		}
		if len(v.Items) == 0 {
			fmt.Fprintln(t.w, "  no matches")
		}
	case view.CandidateProfile:
		fmt.Fprintf(t.w, "%s (%s)\nSkills: %s\n", v.Candidate.Name, v.Candidate.Location,
			strings.Join(v.Candidate.Skills, ", "))
	case view.CredentialDetail:
		c := v.Credential
		fmt.Fprintf(t.w, "%s\n  Type: %s\n  Issuer: %s\n  Status: %s\n", c.Title, c.CredentialType, c.IssuerName, c.Status)
	case view.IssueReceipt:
		fmt.Fprintf(t.w, "Credential issued: %s\n  IPFS: %s\n  Chain: %s\n", v.CredentialID, v.IPFSHash, v.ChainHash)
	case models.VerificationResult:
		if v.Verified {
			s := v.Summary
			fmt.Fprintf(t.w, "VERIFIED: %s (%s) issued by %s\n", s.CredentialID, s.CredentialType, s.IssuerName)
		} else {
			fmt.Fprintf(t.w, "NOT VERIFIED: %s\n", v.Reason)
		}
	default:
		fmt.Fprintf(t.w, "[%s] %+v\n", region, vm)
	}
}

func (t *Terminal) printCredentials(region string, v view.CredentialList) {
	header := "Your credentials:"
	if region == view.RegionIssued {
		header = "Issued credentials:"
	}
	fmt.Fprintln(t.w, sampleTag(header, v.Sample))
	for _, c := range v.Items {
		holder := ""
		if c.HolderName != "" {
			holder = "  -> " + c.HolderName
		}
		fmt.Fprintf(t.w, "  [%s] %s  %s%s\n", c.Status, c.ID, c.Title, holder)
	}
	if v.Truncated {
		fmt.Fprintln(t.w, "  ... more not shown")
	}
}

func sampleTag(header string, sample bool) string {
	if sample {
		return header + " (sample)"
	}
	return header
}

func (t *Terminal) ShowToast(toast view.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[%s] %s\n", toast.Severity, toast.Message)
}

// DismissToast is a no-op: printed toasts scroll away on their own.
func (t *Terminal) DismissToast(string) {}

func (t *Terminal) SetLoading(active bool, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if active {
		fmt.Fprintln(t.w, message)
	}
}

// modal.Host implementation. A terminal has no overlay stack; mounting and
// concealing need no output, revealing prints the dialog title.

func (t *Terminal) Mount(string, modal.Content) {}

func (t *Terminal) Reveal(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "--- %s ---\n", id)
}

func (t *Terminal) Conceal(string)          {}
func (t *Terminal) Unmount(string)          {}
func (t *Terminal) SetScrollLocked(bool)    {}
func (t *Terminal) ClearFieldErrors(string) {}

func (t *Terminal) MarkFieldError(id, field, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "  %s: %s\n", field, message)
}
