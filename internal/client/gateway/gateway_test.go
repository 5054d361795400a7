package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCreds implements Credentials and records invalidations.
type fakeCreds struct {
	token       string
	invalidated int
}

func (f *fakeCreds) Token() string { return f.token }

func (f *fakeCreds) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.token = ""
	return nil
}

func TestClient_Request_InjectsBearerWhenPresent(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	creds := &fakeCreds{token: "t1"}
	c := New(srv.URL, 0, creds, nil)

	require.NoError(t, c.Request(context.Background(), http.MethodPost, "/x", map[string]string{"a": "b"}, nil))
	require.Equal(t, "Bearer t1", gotAuth)
	require.Equal(t, "application/json", gotContentType)
}

func TestClient_Request_OmitsBearerWhenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, &fakeCreds{}, nil)
	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/x", nil, nil))
	require.Empty(t, gotAuth)
}

func TestClient_Request_ErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMsg     string
	}{
		{
			name:        "error field wins",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"error":"invalid credential id","message":"secondary"}`,
			wantMsg:     "invalid credential id",
		},
		{
			name:        "message field next",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"message":"bad input"}`,
			wantMsg:     "bad input",
		},
		{
			name:        "generic fallback",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{}`,
			wantMsg:     FallbackMessage,
		},
		{
			name:        "non-JSON body becomes raw text",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "upstream exploded",
			wantMsg:     "upstream exploded",
		},
		{
			name:        "empty non-JSON body becomes fallback",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "",
			wantMsg:     FallbackMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			c := New(srv.URL, 0, nil, nil)
			err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)

			var ge *Error
			require.ErrorAs(t, err, &ge)
			require.Equal(t, tc.status, ge.Status)
			require.Equal(t, tc.wantMsg, ge.Message)
		})
	}
}

func TestClient_Request_UnauthorizedInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	t.Cleanup(srv.Close)

	creds := &fakeCreds{token: "stale"}
	c := New(srv.URL, 0, creds, nil)

	err := c.Request(context.Background(), http.MethodGet, "/credentials/my", nil, nil)
	var ge *Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, http.StatusUnauthorized, ge.Status)
	require.Equal(t, "token expired", ge.Message)
	require.Equal(t, 1, creds.invalidated)
}

func TestClient_Request_OtherErrorsDoNotInvalidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	creds := &fakeCreds{token: "t"}
	c := New(srv.URL, 0, creds, nil)

	err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	require.Zero(t, creds.invalidated)
}

func TestClient_Request_TransportFailureIsGatewayError(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, 0, nil, nil)
	err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	require.Zero(t, ge.Status)
	require.NotEmpty(t, ge.Message)
}

func TestClient_Request_DecodesSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"credentials":[{"id":"c1","title":"BSc"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, nil, nil)

	var out struct {
		Credentials []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"credentials"`
	}
	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/credentials/my", nil, &out))
	require.Len(t, out.Credentials, 1)
	require.Equal(t, "c1", out.Credentials[0].ID)
}

func TestClient_RequestBytes_ReturnsBinaryBody(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, &fakeCreds{token: "t1"}, nil)
	got, err := c.RequestBytes(context.Background(), http.MethodGet, "/credentials/c1/qr")
	require.NoError(t, err)
	require.Equal(t, png, got)
}

func TestClient_RequestBytes_ErrorIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"credential not found"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, 0, nil, nil)
	_, err := c.RequestBytes(context.Background(), http.MethodGet, "/credentials/x/qr")

	var ge *Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, "credential not found", ge.Message)
}

func TestClient_BaseURLJoining(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	// Trailing slash on the base must not double up.
	c := New(srv.URL+"/api/", 0, nil, nil)
	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/verify/abc", nil, nil))
	require.Equal(t, "/api/verify/abc", gotPath)
}

func TestReason(t *testing.T) {
	require.Empty(t, Reason(nil))
	require.Equal(t, "nope", Reason(&Error{Status: 400, Message: "nope"}))
	require.Equal(t, "plain", Reason(errInput("plain")))
}

type errInput string

func (e errInput) Error() string { return string(e) }

func TestError_Error(t *testing.T) {
	require.Equal(t, "conn refused", (&Error{Message: "conn refused"}).Error())
	require.Equal(t, "nope (status 400)", (&Error{Status: 400, Message: "nope"}).Error())
}

func TestNormalize_WrapsNonJSONAsEnvelope(t *testing.T) {
	raw := normalize("text/plain", []byte("  some text  "))
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, "some text", env.Error)
}
