// Package models defines the view-model types the client works with.
// Credentials, verifications and candidates mirror remote entities and are
// authoritative on the server; the client holds read-only copies.
package models

import (
	"strings"
	"time"
)

// Role determines which dashboard a signed-in user sees.
type Role string

const (
	RoleProfessional Role = "professional"
	RoleEmployer     Role = "employer"
	RoleInstitution  Role = "institution"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleProfessional, RoleEmployer, RoleInstitution:
		return true
	}
	return false
}

// UserProfile is the identity attached to a session. It is immutable once
// assigned; a re-login replaces it wholesale.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// DisplayName returns the user's name, falling back to the local part of
// the email address.
func (u UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Credential statuses as reported by the remote API.
const (
	StatusVerified = "verified"
	StatusPending  = "pending"
	StatusRevoked  = "revoked"
)

// Credential types accepted by the remote API.
const (
	TypeDegree      = "degree"
	TypeCertificate = "certificate"
	TypeLicense     = "license"
	TypeTranscript  = "transcript"
	TypeAward       = "award"
)

// SamplePrefix marks locally fabricated stand-in records that have no
// backing remote entity. Operations that require remote identity (QR
// generation, revocation) must reject such records with a handled message
// instead of attempting the call.
const SamplePrefix = "sample-"

// Credential mirrors a remote credential record.
type Credential struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CredentialType string    `json:"credential_type"`
	IssuerName     string    `json:"issuer_name,omitempty"`
	HolderID       string    `json:"holder_id,omitempty"`
	HolderName     string    `json:"holder_name,omitempty"`
	Description    string    `json:"description,omitempty"`
	IssuedAt       time.Time `json:"issued_at"`
	Status         string    `json:"status"`
	Views          int       `json:"views,omitempty"`
}

// IsSample reports whether c is a locally fabricated stand-in record.
func (c Credential) IsSample() bool {
	return strings.HasPrefix(c.ID, SamplePrefix)
}

// IsSampleID reports whether a bare credential identifier denotes a
// fabricated record.
func IsSampleID(id string) bool {
	return strings.HasPrefix(id, SamplePrefix)
}

// Verification is one entry of an employer's verification history.
type Verification struct {
	ID             string    `json:"id"`
	CandidateID    string    `json:"candidate_id,omitempty"`
	CandidateName  string    `json:"candidate_name,omitempty"`
	CredentialType string    `json:"credential_type,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Candidate is a professional as seen through employer search.
type Candidate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Location    string       `json:"location,omitempty"`
	Skills      []string     `json:"skills,omitempty"`
	Credentials []Credential `json:"credentials,omitempty"`
}

// VerifiedCredential is the summary returned for a successfully verified
// credential.
type VerifiedCredential struct {
	CredentialID   string    `json:"credential_id"`
	CredentialType string    `json:"credential_type,omitempty"`
	IssuerName     string    `json:"issuer_name,omitempty"`
	IssuedAt       time.Time `json:"issued_at,omitempty"`
}

// VerificationResult is the terminal outcome of the verification workflow:
// either Verified with a credential summary, or failed with a display
// reason. Exactly one of the two branches is populated.
type VerificationResult struct {
	Verified bool
	Summary  *VerifiedCredential
	Reason   string
}

// VerifiedResult builds the affirmative outcome.
func VerifiedResult(summary VerifiedCredential) VerificationResult {
	return VerificationResult{Verified: true, Summary: &summary}
}

// FailedResult builds the negative outcome carrying a display reason.
func FailedResult(reason string) VerificationResult {
	if reason == "" {
		reason = "Credential not found or invalid"
	}
	return VerificationResult{Verified: false, Reason: reason}
}
