// Package app wires the client together: session restore, authentication,
// navigation between the landing page and the role dashboards, and the
// modal form handlers.
package app

import (
	"context"
	"fmt"

	"github.com/safariskills/passport/internal/client/dashboard"
	"github.com/safariskills/passport/internal/client/gateway"
	"github.com/safariskills/passport/internal/client/modal"
	"github.com/safariskills/passport/internal/client/models"
	"github.com/safariskills/passport/internal/client/scan"
	"github.com/safariskills/passport/internal/client/session"
	"github.com/safariskills/passport/internal/client/view"
	"github.com/safariskills/passport/internal/logging"
)

// App is the top-level client orchestrator.
type App struct {
	api      gateway.API
	sessions *session.Store
	screen   *view.Screen
	notifier *view.Notifier
	modals   *modal.Manager
	loader   *dashboard.Loader
	workflow *scan.Workflow
	log      logging.Logger
}

func New(api gateway.API, sessions *session.Store, screen *view.Screen, notifier *view.Notifier,
	modals *modal.Manager, loader *dashboard.Loader, workflow *scan.Workflow, log logging.Logger) *App {
	if log == nil {
		log = logging.NewNopLogger()
	}
	a := &App{
		api:      api,
		sessions: sessions,
		screen:   screen,
		notifier: notifier,
		modals:   modals,
		loader:   loader,
		workflow: workflow,
		log:      log,
	}
	a.registerModals()
	return a
}

// Start restores a persisted session if one exists and renders the
// matching surface: the role dashboard for a live session, the landing
// page otherwise.
func (a *App) Start(ctx context.Context) {
	if sess, ok := a.sessions.Restore(ctx); ok {
		a.log.Info(ctx, "session restored", "user_id", sess.User.ID, "role", sess.User.Role)
		a.enterDashboard(ctx, sess.User)
		return
	}
	a.renderLanding(ctx)
}

// Logout clears the session and returns to the landing page. A failed
// wipe of the durable store is logged but does not keep the user signed
// in.
func (a *App) Logout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Warn(ctx, "session clear failed", "error", err)
	}
	a.modals.Close(ctx)
	a.workflow.StopScan(ctx)
	a.notifier.Info("Signed out")
	a.renderLanding(ctx)
}

// Modals returns the modal manager, for renderers to route dismissal and
// focus events to.
func (a *App) Modals() *modal.Manager { return a.modals }

// Loader returns the dashboard loader, for renderers to route row actions
// to.
func (a *App) Loader() *dashboard.Loader { return a.loader }

// Workflow returns the verification workflow.
func (a *App) Workflow() *scan.Workflow { return a.workflow }

func (a *App) enterDashboard(ctx context.Context, user models.UserProfile) {
	a.screen.Update(ctx, view.RegionNav, view.Nav{SignedIn: true, Name: user.DisplayName(), Role: user.Role})
	a.screen.Update(ctx, view.RegionWelcome, view.Welcome{Name: user.DisplayName(), Role: user.Role})
	a.loader.LoadForRole(ctx, user.Role)
}

func (a *App) renderLanding(ctx context.Context) {
	a.screen.Update(ctx, view.RegionNav, view.Nav{})
	a.screen.Update(ctx, view.RegionWelcome, view.Welcome{})
}

// registerModals fills the modal content table and binds submit handlers.
func (a *App) registerModals() {
	a.modals.Register(modal.IDLogin, modal.Content{
		Title: "Login",
		Fields: []modal.Field{
			{ID: "email", Label: "Email", Kind: modal.FieldEmail, Required: true},
			{ID: "password", Label: "Password", Kind: modal.FieldPassword, Required: true},
		},
		SubmitLabel: "Login",
	}, a.login)

	a.modals.Register(modal.IDRegister, modal.Content{
		Title: "Create Account",
		Fields: []modal.Field{
			{ID: "email", Label: "Email", Kind: modal.FieldEmail, Required: true},
			{ID: "password", Label: "Password", Kind: modal.FieldPassword, Required: true},
			{ID: "role", Label: "Account Type", Kind: modal.FieldSelect, Required: true,
				Options: []string{
					string(models.RoleProfessional),
					string(models.RoleEmployer),
					string(models.RoleInstitution),
				}},
			{ID: "name", Label: "Organization Name", Kind: modal.FieldText},
		},
		SubmitLabel: "Register",
	}, a.register)

	a.modals.Register(modal.IDRequestCredential, modal.Content{
		Title: "Request Credential",
		Fields: []modal.Field{
			{ID: "credential_type", Label: "Credential Type", Kind: modal.FieldSelect, Required: true,
				Options: credentialTypes()},
			{ID: "institution_email", Label: "Institution Email", Kind: modal.FieldEmail, Required: true},
			{ID: "title", Label: "Credential Title", Kind: modal.FieldText, Required: true},
			{ID: "message", Label: "Message", Kind: modal.FieldTextarea},
		},
		SubmitLabel: "Send Request",
	}, a.requestCredential)

	a.modals.Register(modal.IDIssueCredential, modal.Content{
		Title: "Issue Credential",
		Fields: []modal.Field{
			{ID: "holder_email", Label: "Holder Email", Kind: modal.FieldEmail, Required: true},
			{ID: "credential_type", Label: "Credential Type", Kind: modal.FieldSelect, Required: true,
				Options: credentialTypes()},
			{ID: "title", Label: "Title", Kind: modal.FieldText, Required: true},
			{ID: "description", Label: "Description", Kind: modal.FieldTextarea},
			{ID: "issue_date", Label: "Issue Date", Kind: modal.FieldDate, Required: true},
		},
		SubmitLabel: "Issue",
	}, a.issueCredential)

	a.modals.Register(modal.IDSearchCandidates, modal.Content{
		Title: "Search Candidates",
		Fields: []modal.Field{
			{ID: "skills", Label: "Skills", Kind: modal.FieldText, Required: true},
			{ID: "location", Label: "Location", Kind: modal.FieldText},
			{ID: "credential_type", Label: "Credential Type", Kind: modal.FieldSelect,
				Options: credentialTypes()},
		},
		SubmitLabel: "Search",
	}, a.searchCandidates)

	a.modals.Register(modal.IDCredentialDetail, modal.Content{Title: "Credential Details"}, nil)
	a.modals.Register(modal.IDCandidateProfile, modal.Content{Title: "Candidate Profile"}, nil)
	a.modals.Register(modal.IDIssueReceipt, modal.Content{Title: "Credential Issued"}, nil)
}

func credentialTypes() []string {
	return []string{
		models.TypeDegree,
		models.TypeCertificate,
		models.TypeLicense,
		models.TypeTranscript,
		models.TypeAward,
	}
}

func (a *App) login(ctx context.Context, values map[string]string) error {
	done := a.notifier.Loading("Signing in...")
	resp, err := a.api.Login(ctx, values["email"], values["password"])
	done()
	if err != nil {
		a.notifier.Error(gateway.Reason(err))
		return err
	}

	if err := a.sessions.Save(ctx, resp.Token, resp.User); err != nil {
		a.log.Warn(ctx, "session not persisted, continuing in-memory only", "error", err)
	}

	a.modals.Close(ctx)
	a.notifier.Success("Welcome back, " + resp.User.DisplayName())
	a.enterDashboard(ctx, resp.User)
	return nil
}

func (a *App) register(ctx context.Context, values map[string]string) error {
	role := models.Role(values["role"])
	if !role.Valid() {
		err := fmt.Errorf("unknown account type %q", values["role"])
		a.notifier.Error("Please choose an account type")
		return err
	}

	done := a.notifier.Loading("Creating your account...")
	resp, err := a.api.Register(ctx, gateway.RegisterRequest{
		Email:    values["email"],
		Password: values["password"],
		Role:     role,
		Name:     values["name"],
	})
	done()
	if err != nil {
		a.notifier.Error(gateway.Reason(err))
		return err
	}

	if err := a.sessions.Save(ctx, resp.Token, resp.User); err != nil {
		a.log.Warn(ctx, "session not persisted, continuing in-memory only", "error", err)
	}

	a.modals.Close(ctx)
	a.notifier.Success("Account created")
	a.enterDashboard(ctx, resp.User)
	return nil
}

func (a *App) requestCredential(ctx context.Context, values map[string]string) error {
	done := a.notifier.Loading("Sending request...")
	err := a.api.RequestCredential(ctx, gateway.CredentialRequest{
		CredentialType:   values["credential_type"],
		InstitutionEmail: values["institution_email"],
		Title:            values["title"],
		Message:          values["message"],
	})
	done()
	if err != nil {
		a.notifier.Error(gateway.Reason(err))
		return err
	}

	a.modals.Close(ctx)
	a.notifier.Success("Request sent to the institution")
	return nil
}

func (a *App) issueCredential(ctx context.Context, values map[string]string) error {
	req := gateway.IssueRequest{
		HolderEmail:    values["holder_email"],
		CredentialType: values["credential_type"],
		Title:          values["title"],
		Description:    values["description"],
		IssueDate:      values["issue_date"],
	}
	if v := values["expiry_date"]; v != "" {
		req.ExpiryDate = &v
	}

	done := a.notifier.Loading("Issuing credential...")
	receipt, err := a.api.IssueCredential(ctx, req)
	done()
	if err != nil {
		a.notifier.Error(gateway.Reason(err))
		return err
	}

	a.modals.Close(ctx)
	a.notifier.Success("Credential issued")
	a.modals.Show(ctx, modal.IDIssueReceipt)
	a.screen.Update(ctx, view.RegionReceipt, view.IssueReceipt{
		CredentialID: receipt.CredentialID,
		IPFSHash:     receipt.IPFSHash,
		ChainHash:    receipt.ChainHash,
		QRCodeBase64: receipt.QRCode,
	})
	a.loader.LoadForRole(ctx, models.RoleInstitution)
	return nil
}

func (a *App) searchCandidates(ctx context.Context, values map[string]string) error {
	a.modals.Close(ctx)
	a.loader.SearchCandidates(ctx, gateway.CandidateSearch{
		Skills:         values["skills"],
		Location:       values["location"],
		CredentialType: values["credential_type"],
	})
	return nil
}
