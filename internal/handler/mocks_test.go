package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/scorelive/internal/auth"
	"github.com/pkordes/scorelive/internal/domain"
	"github.com/pkordes/scorelive/internal/handler"
	"github.com/pkordes/scorelive/internal/middleware"
)

// mockMatchServicer is a hand-written test double for handler.MatchServicer.
// Each method is a function field; set only the ones your test needs.
type mockMatchServicer struct {
	create     func(ctx context.Context, home, away string) (domain.Match, error)
	recordGoal func(ctx context.Context, g domain.Goal) (domain.Goal, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Match, error)
	list       func(ctx context.Context) ([]domain.Match, error)
	score      func(ctx context.Context, id uuid.UUID) (domain.ScoreLine, error)
}

func (m *mockMatchServicer) Create(ctx context.Context, home, away string) (domain.Match, error) {
	return m.create(ctx, home, away)
}
func (m *mockMatchServicer) RecordGoal(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	return m.recordGoal(ctx, g)
}
func (m *mockMatchServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Match, error) {
	return m.getByID(ctx, id)
}
func (m *mockMatchServicer) List(ctx context.Context) ([]domain.Match, error) {
	return m.list(ctx)
}
func (m *mockMatchServicer) Score(ctx context.Context, id uuid.UUID) (domain.ScoreLine, error) {
	return m.score(ctx, id)
}

var _ handler.MatchServicer = (*mockMatchServicer)(nil)

// stubVerifier returns its fixed result for every token.
type stubVerifier struct {
	claims auth.Claims
	err    error
	got    string
}

func (v *stubVerifier) Verify(raw string) (auth.Claims, error) {
	v.got = raw
	return v.claims, v.err
}

var _ middleware.Verifier = (*stubVerifier)(nil)

// stubTokenIssuer is a function-field double for handler.TokenIssuer.
type stubTokenIssuer struct {
	issue func(subject string) (auth.Token, error)
}

func (s *stubTokenIssuer) Issue(subject string) (auth.Token, error) { return s.issue(subject) }

// countingRecorder counts handler.Recorder calls.
type countingRecorder struct {
	tokens   int
	failures []string
}

func (c *countingRecorder) TokenIssued()             { c.tokens++ }
func (c *countingRecorder) AuthFailed(reason string) { c.failures = append(c.failures, reason) }

// ---- helpers ---------------------------------------------------------------

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// do sends one request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

// doRaw sends body verbatim with the given content type and bearer header.
func doRaw(t *testing.T, h http.Handler, method, target string, body io.Reader, contentType, authz string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doChunked sends a JSON body of unknown length, as a chunked upload would.
func doChunked(t *testing.T, h http.Handler, method, target, body, authz string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, io.NopCloser(bytes.NewBufferString(body)))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authz)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
