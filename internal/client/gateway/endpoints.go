package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/safariskills/passport/internal/client/models"
)

// API is the typed surface of the credential-verification service. The
// concrete Client implements it; tests substitute fakes.
type API interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	MyCredentials(ctx context.Context) ([]models.Credential, error)
	IssuedCredentials(ctx context.Context) ([]models.Credential, error)
	VerificationHistory(ctx context.Context) ([]models.Verification, error)
	GetCredential(ctx context.Context, id string) (*models.Credential, error)
	IssueCredential(ctx context.Context, req IssueRequest) (*IssueReceipt, error)
	RequestCredential(ctx context.Context, req CredentialRequest) error
	RevokeCredential(ctx context.Context, id string) error
	CredentialQR(ctx context.Context, id string) ([]byte, error)

	Verify(ctx context.Context, id string) (*models.VerifiedCredential, error)

	SearchCandidates(ctx context.Context, req CandidateSearch) ([]models.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
}

var _ API = (*Client)(nil)

// AuthResponse is returned by both login and registration.
type AuthResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name,omitempty"`
}

// IssueRequest issues a credential to a holder (institutions only).
type IssueRequest struct {
	HolderEmail    string         `json:"holder_email"`
	CredentialType string         `json:"credential_type"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	IssueDate      string         `json:"issue_date"`
	ExpiryDate     *string        `json:"expiry_date"`
	Metadata       map[string]any `json:"metadata"`
	DocumentData   string         `json:"document_data"`
}

// IssueReceipt is the server's acknowledgment of an issued credential.
type IssueReceipt struct {
	CredentialID string `json:"credential_id"`
	IPFSHash     string `json:"ipfs_hash"`
	ChainHash    string `json:"chain_hash"`
	QRCode       string `json:"qr_code"` // base64 PNG
}

// CredentialRequest asks an institution to issue a credential
// (professionals only).
type CredentialRequest struct {
	CredentialType   string `json:"credential_type"`
	InstitutionEmail string `json:"institution_email"`
	Title            string `json:"title"`
	Message          string `json:"message,omitempty"`
}

// CandidateSearch filters the candidate directory (employers only).
type CandidateSearch struct {
	Skills         string `json:"skills"`
	Location       string `json:"location,omitempty"`
	CredentialType string `json:"credential_type,omitempty"`
}

type credentialsResponse struct {
	Credentials []models.Credential `json:"credentials"`
}

type verificationsResponse struct {
	Verifications []models.Verification `json:"verifications"`
}

type candidatesResponse struct {
	Candidates []models.Candidate `json:"candidates"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyCredentials(ctx context.Context) ([]models.Credential, error) {
	var out credentialsResponse
	if err := c.Request(ctx, http.MethodGet, "/credentials/my", nil, &out); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

func (c *Client) IssuedCredentials(ctx context.Context) ([]models.Credential, error) {
	var out credentialsResponse
	if err := c.Request(ctx, http.MethodGet, "/credentials/issued", nil, &out); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

func (c *Client) VerificationHistory(ctx context.Context) ([]models.Verification, error) {
	var out verificationsResponse
	if err := c.Request(ctx, http.MethodGet, "/verifications/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Verifications, nil
}

func (c *Client) GetCredential(ctx context.Context, id string) (*models.Credential, error) {
	var out models.Credential
	if err := c.Request(ctx, http.MethodGet, "/credentials/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IssueCredential(ctx context.Context, req IssueRequest) (*IssueReceipt, error) {
	var out IssueReceipt
	if err := c.Request(ctx, http.MethodPost, "/credentials/issue", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RequestCredential(ctx context.Context, req CredentialRequest) error {
	return c.Request(ctx, http.MethodPost, "/credentials/request", req, nil)
}

func (c *Client) RevokeCredential(ctx context.Context, id string) error {
	return c.Request(ctx, http.MethodPost, "/credentials/"+url.PathEscape(id)+"/revoke", nil, nil)
}

// CredentialQR fetches the credential's QR code as PNG bytes.
func (c *Client) CredentialQR(ctx context.Context, id string) ([]byte, error) {
	return c.RequestBytes(ctx, http.MethodGet, "/credentials/"+url.PathEscape(id)+"/qr")
}

func (c *Client) Verify(ctx context.Context, id string) (*models.VerifiedCredential, error) {
	var out models.VerifiedCredential
	if err := c.Request(ctx, http.MethodGet, "/verify/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchCandidates(ctx context.Context, req CandidateSearch) ([]models.Candidate, error) {
	var out candidatesResponse
	if err := c.Request(ctx, http.MethodPost, "/candidates/search", req, &out); err != nil {
		return nil, err
	}
	return out.Candidates, nil
}

func (c *Client) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var out models.Candidate
	if err := c.Request(ctx, http.MethodGet, "/candidates/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
