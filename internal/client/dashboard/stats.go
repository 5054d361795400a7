package dashboard

import (
	"math"
	"strconv"
	"time"

	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/view"
)

// ProfessionalStats aggregates a credential wallet: totals, verified count
// and the sum of profile views.
func ProfessionalStats(creds []models.Credential) []view.Stat {
	verified, views := 0, 0
	for _, c := range creds {
		if c.Status == models.StatusVerified {
			verified++
		}
		views += c.Views
	}
	return []view.Stat{
		{Label: "Total Credentials", Value: strconv.Itoa(len(creds))},
		{Label: "Verified", Value: strconv.Itoa(verified)},
		{Label: "Profile Views", Value: strconv.Itoa(views)},
	}
}

// EmployerStats aggregates verification history: checks run today, pending
// checks and distinct candidates seen.
func EmployerStats(history []models.Verification, now time.Time) []view.Stat {
	today, pending := 0, 0
	candidates := make(map[string]struct{})
	y, m, d := now.Date()
	for _, v := range history {
		vy, vm, vd := v.CreatedAt.In(now.Location()).Date()
		if vy == y && vm == m && vd == d {
			today++
		}
		if v.Status == models.StatusPending {
			pending++
		}
		if v.CandidateID != "" {
			candidates[v.CandidateID] = struct{}{}
		}
	}
	return []view.Stat{
		{Label: "Verifications Today", Value: strconv.Itoa(today)},
		{Label: "Pending", Value: strconv.Itoa(pending)},
		{Label: "Candidates", Value: strconv.Itoa(len(candidates))},
	}
}

// InstitutionStats aggregates the issued register: volume, distinct
// recipients and the share of issued credentials already verified.
func InstitutionStats(issued []models.Credential) []view.Stat {
	verified := 0
	holders := make(map[string]struct{})
	for _, c := range issued {
		if c.Status == models.StatusVerified {
			verified++
		}
		if c.HolderID != "" {
			holders[c.HolderID] = struct{}{}
		}
	}
	rate := 0
	if len(issued) > 0 {
		rate = int(math.Round(float64(verified) / float64(len(issued)) * 100))
	}
	return []view.Stat{
		{Label: "Credentials Issued", Value: strconv.Itoa(len(issued))},
		{Label: "Recipients", Value: strconv.Itoa(len(holders))},
		{Label: "Verification Rate", Value: strconv.Itoa(rate) + "%"},
	}
}
