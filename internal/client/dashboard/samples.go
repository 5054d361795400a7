package dashboard

import (
	"time"

	"github.com/safariskills/passport/internal/client/models"
)

// Sample fixtures stand in for live data when the server has nothing to
// show or cannot be reached. Their ids carry models.SamplePrefix so
// downstream actions can tell them from real records. Each function
// returns fresh copies; callers may mutate the result.

// SampleCredentials fabricates a professional's credential wallet.
func SampleCredentials() []models.Credential {
	return []models.Credential{
		{
			ID:             models.SamplePrefix + "cred-1",
			Title:          "Bachelor of Science in Computer Science",
			CredentialType: models.TypeDegree,
			IssuerName:     "University of Nairobi",
			Description:    "Four-year undergraduate degree",
			IssuedAt:       time.Date(2020, time.July, 15, 0, 0, 0, 0, time.UTC),
			Status:         models.StatusVerified,
			Views:          12,
		},
		{
			ID:             models.SamplePrefix + "cred-2",
			Title:          "AWS Certified Solutions Architect",
			CredentialType: models.TypeCertificate,
			IssuerName:     "Amazon Web Services",
			Description:    "Associate-level cloud architecture certification",
			IssuedAt:       time.Date(2023, time.March, 2, 0, 0, 0, 0, time.UTC),
			Status:         models.StatusVerified,
			Views:          8,
		},
	}
}

// SampleVerifications fabricates an employer's recent verification
// history, timestamped relative to now.
func SampleVerifications(now time.Time) []models.Verification {
	return []models.Verification{
		{
			ID:             models.SamplePrefix + "ver-1",
			CandidateID:    models.SamplePrefix + "cand-1",
			CandidateName:  "John Doe",
			CredentialType: models.TypeDegree,
			Status:         models.StatusVerified,
			CreatedAt:      now.Add(-2 * time.Hour),
		},
		{
			ID:             models.SamplePrefix + "ver-2",
			CandidateID:    models.SamplePrefix + "cand-2",
			CandidateName:  "Jane Smith",
			CredentialType: models.TypeCertificate,
			Status:         models.StatusVerified,
			CreatedAt:      now.Add(-4 * time.Hour),
		},
		{
			ID:             models.SamplePrefix + "ver-3",
			CandidateID:    models.SamplePrefix + "cand-3",
			CandidateName:  "Bob Johnson",
			CredentialType: models.TypeLicense,
			Status:         models.StatusPending,
			CreatedAt:      now.Add(-26 * time.Hour),
		},
	}
}

// SampleIssued fabricates an institution's issued-credential register.
func SampleIssued() []models.Credential {
	issued := []models.Credential{
		{
			ID:             models.SamplePrefix + "issued-1",
			Title:          "Master of Business Administration",
			CredentialType: models.TypeDegree,
			HolderID:       models.SamplePrefix + "holder-1",
			HolderName:     "Alice Cooper",
			Status:         models.StatusVerified,
		},
		{
			ID:             models.SamplePrefix + "issued-2",
			Title:          "Diploma in Software Engineering",
			CredentialType: models.TypeDegree,
			HolderID:       models.SamplePrefix + "holder-2",
			HolderName:     "Charlie Brown",
			Status:         models.StatusVerified,
		},
		{
			ID:             models.SamplePrefix + "issued-3",
			Title:          "Certificate in Data Analytics",
			CredentialType: models.TypeCertificate,
			HolderID:       models.SamplePrefix + "holder-3",
			HolderName:     "Diana Prince",
			Status:         models.StatusPending,
		},
		{
			ID:             models.SamplePrefix + "issued-4",
			Title:          "Bachelor of Commerce",
			CredentialType: models.TypeDegree,
			HolderID:       models.SamplePrefix + "holder-4",
			HolderName:     "Edward Norton",
			Status:         models.StatusVerified,
		},
	}
	for i := range issued {
		issued[i].IssuedAt = time.Date(2024, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC)
	}
	return issued
}

// SampleCandidates fabricates employer search results.
func SampleCandidates() []models.Candidate {
	return []models.Candidate{
		{
			ID:       models.SamplePrefix + "cand-1",
			Name:     "John Doe",
			Location: "Nairobi",
			Skills:   []string{"Go", "PostgreSQL", "Kubernetes"},
		},
		{
			ID:       models.SamplePrefix + "cand-2",
			Name:     "Jane Smith",
			Location: "Mombasa",
			Skills:   []string{"Data Analysis", "Python"},
		},
	}
}

// sampleCredentialByID finds a fabricated credential across the sample
// sets, so detail views of sample rows resolve locally.
func sampleCredentialByID(id string) (models.Credential, bool) {
	for _, c := range SampleCredentials() {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range SampleIssued() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Credential{}, false
}
