package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	role() string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Verify(ctx context.Context) error
	Scan(ctx context.Context) error
	ViewCredential(ctx context.Context) error
	DownloadQR(ctx context.Context) error
	Revoke(ctx context.Context) error
	Search(ctx context.Context) error
	ViewCandidate(ctx context.Context) error
	RequestCredential(ctx context.Context) error
	IssueCredential(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the Skills Passport client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Verification (verify, scan) is public and available in every state; the
// remaining commands require a session, and the help text reflects the
// signed-in role. Errors returned by command handlers are ignored here;
// handlers surface their own failures as toasts. This keeps the REPL loop
// resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ssp> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "verify":
			_ = a.Verify(ctx)

		case "scan":
			_ = a.Scan(ctx)

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "view":
			_ = a.ViewCredential(ctx)

		case "qr":
			_ = a.DownloadQR(ctx)

		case "request":
			_ = a.RequestCredential(ctx)

		case "issue":
			_ = a.IssueCredential(ctx)

		case "revoke":
			_ = a.Revoke(ctx)

		case "search":
			_ = a.Search(ctx)

		case "candidate":
			_ = a.ViewCandidate(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isSignedIn() {
		printlnFn("Available commands: login, register, verify, scan, exit")
		return
	}
	switch a.role() {
	case "professional":
		printlnFn("Available commands: (d)ashboard, view, qr, request, verify, scan, logout, exit")
	case "employer":
		printlnFn("Available commands: (d)ashboard, search, candidate, verify, scan, logout, exit")
	case "institution":
		printlnFn("Available commands: (d)ashboard, issue, revoke, view, qr, verify, scan, logout, exit")
	default:
		printlnFn("Available commands: (d)ashboard, verify, scan, logout, exit")
	}
}
