// Package handler implements the HTTP handlers for the ScoreLive API.
// All handlers are methods on Server; Routes wires them onto a chi router.
// Methods are split into resource files (health.go, token.go, match.go,
// score.go) but share the same Server struct and its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/scorelive/internal/auth"
	"github.com/pkordes/scorelive/internal/domain"
	"github.com/pkordes/scorelive/internal/middleware"
)

// MatchServicer defines the business operations the match handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store.
type MatchServicer interface {
	Create(ctx context.Context, homeTeam, awayTeam string) (domain.Match, error)
	RecordGoal(ctx context.Context, goal domain.Goal) (domain.Goal, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Match, error)
	List(ctx context.Context) ([]domain.Match, error)
	Score(ctx context.Context, id uuid.UUID) (domain.ScoreLine, error)
}

// TokenIssuer issues bearer credentials. *auth.TokenService satisfies it.
type TokenIssuer interface {
	Issue(subject string) (auth.Token, error)
}

// Recorder receives auth-related counts. *metrics.Metrics satisfies it.
type Recorder interface {
	TokenIssued()
	AuthFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) TokenIssued()      {}
func (nopRecorder) AuthFailed(string) {}

// Server holds the dependencies shared by every handler.
type Server struct {
	matches MatchServicer
	tokens  TokenIssuer
	rec     Recorder
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// rec and log may be nil.
func NewServer(matches MatchServicer, tokens TokenIssuer, rec Recorder, log *slog.Logger) *Server {
	if rec == nil {
		rec = nopRecorder{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{matches: matches, tokens: tokens, rec: rec, log: log}
}

// Routes returns a router serving every API endpoint. Only POST /newmatch
// requires a bearer credential, checked by verifier.
func (s *Server) Routes(verifier middleware.Verifier) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.GetRoot)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/token", s.GetToken)

	r.With(middleware.NewBearerAuth(verifier, s.rejectCredential)).Post("/newmatch", s.CreateMatch)
	r.Post("/goalscored", s.RecordGoal)
	r.Get("/livematches/{matchId}", s.GetMatch)
	r.Get("/get_all_matches", s.ListMatches)
	r.Get("/score", s.GetScore)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}
