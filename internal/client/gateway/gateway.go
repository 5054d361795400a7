// Package gateway is the sole component performing outbound network calls.
// It shapes requests (base-URL joining, JSON bodies, bearer injection),
// normalizes heterogeneous response shapes into one result/error contract,
// and leaves retry and fallback decisions entirely to callers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/safariskills/passport/internal/logging"
)

// Credentials supplies the session token and reacts to authentication
// failures. The session store implements it.
type Credentials interface {
	// Token returns the current bearer token, or "" when signed out.
	Token() string
	// Invalidate drops the session after the server rejects its token.
	Invalidate(ctx context.Context) error
}

// Client performs HTTP/JSON calls against the credential-verification API.
type Client struct {
	base  string
	http  *http.Client
	creds Credentials
	log   logging.Logger
}

// New builds a gateway client. timeout zero means no enforced network
// timeout; a hung request then stays in flight until it settles. creds may
// be nil for an unauthenticated client.
func New(baseURL string, timeout time.Duration, creds Credentials, log logging.Logger) *Client {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		creds: creds,
		log:   log.With("component", "gateway"),
	}
}

// envelope is the subset of remote error payloads the gateway understands.
type envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Request performs one API call and decodes the JSON response into out
// (ignored when out is nil).
//
// Behavior:
//   - the target address is base joined with path;
//   - a non-nil body is JSON-encoded with Content-Type: application/json;
//   - a bearer header is injected when the session has a token;
//   - JSON response bodies are parsed; non-JSON bodies are wrapped as
//     {error: <raw text or fallback>};
//   - non-2xx statuses become *Error with the most specific message
//     available; a 401 additionally invalidates the session.
//
// The gateway never retries; callers own retry and fallback policy.
func (c *Client) Request(ctx context.Context, method, path string, body any, out any) error {
	raw, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: FallbackMessage}
	}
	return nil
}

// RequestBytes performs an API call whose successful response is a binary
// payload (e.g. a QR code image) and returns the raw bytes. Error responses
// are normalized exactly like Request.
func (c *Client) RequestBytes(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(ctx, resp.StatusCode, normalize(resp.Header.Get("Content-Type"), data))
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, contentType string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: err.Error()}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req)

	reqID := uuid.NewString()
	c.log.Debug(ctx, "request", "id", reqID, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "id", reqID, "err", err)
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	parsed := normalize(resp.Header.Get("Content-Type"), data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ge := c.fail(ctx, resp.StatusCode, parsed)
		c.log.Debug(ctx, "request rejected", "id", reqID, "status", resp.StatusCode, "msg", ge.Message)
		return nil, ge
	}

	c.log.Debug(ctx, "request settled", "id", reqID, "status", resp.StatusCode)
	return parsed, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.creds == nil {
		return
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// normalize turns a response body into a JSON document. Declared-JSON
// bodies pass through unchanged; anything else is wrapped as an error
// envelope so downstream code never sees an unhandled parse failure.
func normalize(contentType string, data []byte) json.RawMessage {
	if strings.Contains(contentType, "application/json") {
		return json.RawMessage(data)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		text = FallbackMessage
	}
	wrapped, _ := json.Marshal(envelope{Error: text})
	return wrapped
}

// fail maps a non-success response to *Error, invalidating the session on
// an authentication failure.
func (c *Client) fail(ctx context.Context, status int, body json.RawMessage) *Error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = FallbackMessage
	}

	if status == http.StatusUnauthorized && c.creds != nil {
		if err := c.creds.Invalidate(ctx); err != nil {
			c.log.Warn(ctx, "failed to drop rejected session", "err", err)
		}
	}

	return &Error{Status: status, Message: msg}
}
