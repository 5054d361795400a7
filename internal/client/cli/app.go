// Package cli is the terminal frontend of the Skills Passport client. It
// renders the view regions as plain text, walks modal forms as interactive
// prompts, and drives the application through a small REPL.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	coreapp "github.com/safariskills/passport/internal/client/app"
	"github.com/safariskills/passport/internal/client/config"
	"github.com/safariskills/passport/internal/client/dashboard"
	"github.com/safariskills/passport/internal/client/gateway"
	"github.com/safariskills/passport/internal/client/modal"
	"github.com/safariskills/passport/internal/client/scan"
	"github.com/safariskills/passport/internal/client/session"
	"github.com/safariskills/passport/internal/client/store"
	"github.com/safariskills/passport/internal/client/view"
	"github.com/safariskills/passport/internal/logging"
)

// App ties the core client to the terminal: a reader for user input, the
// Terminal renderer for output, and the orchestrator behind them.
type App struct {
	config   *config.Config
	core     *coreapp.App
	sessions *session.Store
	terminal *Terminal
	reader   *bufio.Reader
	w        io.Writer
	db       *sql.DB
	log      logging.Logger
}

// NewApp opens the local store and wires the full client stack for
// terminal use.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	sessions := session.NewSQLiteStore(db, logger)
	api := gateway.New(cfg.APIBaseURL, cfg.RequestTimeout, sessions, logger)

	terminal := NewTerminal(os.Stdout)
	screen := view.NewScreen(terminal, logger)
	notifier := view.NewNotifier(terminal, cfg.ToastDuration)
	modals := modal.NewManager(terminal, cfg.CloseDelay, logger)
	loader := dashboard.NewLoader(api, screen, notifier, modals, logger)

	reader := bufio.NewReader(os.Stdin)
	scanner := newLineScanner(reader, os.Stdout)
	workflow := scan.NewWorkflow(api, scanner, screen, notifier, scan.Options{
		FacingMode: "environment",
		FPS:        cfg.ScanFPS,
		Box:        cfg.ScanBoxSize,
	}, logger)

	core := coreapp.New(api, sessions, screen, notifier, modals, loader, workflow, logger)

	return &App{
		config:   cfg,
		core:     core,
		sessions: sessions,
		terminal: terminal,
		reader:   reader,
		w:        os.Stdout,
		db:       db,
		log:      logger,
	}, nil
}

// Run restores any persisted session and enters the REPL. It returns when
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	a.core.Start(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	if s := a.sessions.Current(); s != nil {
		return fmt.Sprintf("%s (%s)", s.User.DisplayName(), s.User.Role)
	}
	return "signed out"
}

func (a *App) isSignedIn() bool {
	return a.sessions.Current() != nil
}

func (a *App) role() string {
	if s := a.sessions.Current(); s != nil {
		return string(s.User.Role)
	}
	return ""
}

// submitForm walks a modal's fields as prompts and submits the collected
// values, re-prompting while local validation fails.
func (a *App) submitForm(ctx context.Context, id string) error {
	content, ok := a.core.Modals().ContentFor(id)
	if !ok {
		a.core.Modals().Show(ctx, id) // placeholder
		return nil
	}

	a.core.Modals().Show(ctx, id)
	values := map[string]string{}
	for _, f := range content.Fields {
		var v string
		var err error
		switch f.Kind {
		case modal.FieldPassword:
			v, err = GetPassword(a.w, f.Label)
		case modal.FieldSelect:
			v, err = GetChoice(a.reader, f.Label, f.Options, a.w)
		default:
			v, err = GetSimpleText(a.reader, f.Label, a.w)
		}
		if err != nil {
			a.core.Modals().Close(ctx)
			return err
		}
		values[f.ID] = v
	}

	if err := a.core.Modals().Submit(ctx, id, values); err != nil {
		// Validation errors were already printed field by field.
		a.core.Modals().Close(ctx)
		return err
	}
	return nil
}

func (a *App) Login(ctx context.Context) error {
	return a.submitForm(ctx, modal.IDLogin)
}

func (a *App) Register(ctx context.Context) error {
	return a.submitForm(ctx, modal.IDRegister)
}

func (a *App) Logout(ctx context.Context) error {
	a.core.Logout(ctx)
	return nil
}

// Dashboard reloads the current role's dashboard.
func (a *App) Dashboard(ctx context.Context) error {
	if s := a.sessions.Current(); s != nil {
		a.core.Loader().LoadForRole(ctx, s.User.Role)
	}
	return nil
}

// Verify prompts for a credential id and runs manual verification.
func (a *App) Verify(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Credential ID", a.w)
	if err != nil {
		return err
	}
	a.core.Workflow().VerifyManual(ctx, id)
	return nil
}

// Scan runs a scanning session against the line-based stand-in scanner.
func (a *App) Scan(ctx context.Context) error {
	a.core.Workflow().StartScan(ctx)
	// A cancelled session leaves the workflow scanning; wind it down.
	a.core.Workflow().StopScan(ctx)
	return nil
}

// ViewCredential prompts for an id and opens its detail view.
func (a *App) ViewCredential(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Credential ID", a.w)
	if err != nil {
		return err
	}
	a.core.Loader().ViewCredential(ctx, id)
	a.core.Modals().Close(ctx)
	return nil
}

// DownloadQR prompts for an id and writes the credential's QR PNG next to
// the store.
func (a *App) DownloadQR(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Credential ID", a.w)
	if err != nil {
		return err
	}
	png := a.core.Loader().DownloadQR(ctx, id)
	if png == nil {
		return nil
	}
	name := "credential-" + id + ".png"
	if err := os.WriteFile(name, png, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	fmt.Fprintln(a.w, "Saved", name)
	return nil
}

// Revoke prompts for an id, confirms, and revokes the credential.
func (a *App) Revoke(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Credential ID to revoke", a.w)
	if err != nil {
		return err
	}
	confirm, err := GetChoice(a.reader, "Revoke "+id+"?", []string{"no", "yes"}, a.w)
	if err != nil || confirm != "yes" {
		return err
	}
	return a.core.Loader().RevokeCredential(ctx, id)
}

func (a *App) Search(ctx context.Context) error {
	return a.submitForm(ctx, modal.IDSearchCandidates)
}

// ViewCandidate prompts for a candidate id and opens their profile.
func (a *App) ViewCandidate(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Candidate ID", a.w)
	if err != nil {
		return err
	}
	a.core.Loader().ViewCandidate(ctx, id)
	a.core.Modals().Close(ctx)
	return nil
}

func (a *App) RequestCredential(ctx context.Context) error {
	return a.submitForm(ctx, modal.IDRequestCredential)
}

func (a *App) IssueCredential(ctx context.Context) error {
	err := a.submitForm(ctx, modal.IDIssueCredential)
	if err == nil {
		a.core.Modals().Close(ctx)
	}
	return err
}
