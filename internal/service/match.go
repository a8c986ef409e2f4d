// Package service contains the business logic for the ScoreLive API.
// Services validate inputs, enforce access rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/scorelive/internal/auth"
	"github.com/pkordes/scorelive/internal/domain"
	"github.com/pkordes/scorelive/internal/repo"
	"github.com/pkordes/scorelive/internal/scoreboard"
)

// Recorder receives counts of successful writes. *metrics.Metrics satisfies it.
type Recorder interface {
	MatchCreated()
	GoalRecorded()
}

type nopRecorder struct{}

func (nopRecorder) MatchCreated() {}
func (nopRecorder) GoalRecorded() {}

// MatchService implements business logic for matches, goals and scores.
type MatchService struct {
	matches repo.MatchRepo
	rec     Recorder
	log     *slog.Logger
}

// NewMatchService constructs a MatchService backed by the provided MatchRepo.
// rec and log may be nil.
func NewMatchService(r repo.MatchRepo, rec Recorder, log *slog.Logger) *MatchService {
	if rec == nil {
		rec = nopRecorder{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &MatchService{matches: r, rec: rec, log: log}
}

// Create registers a new match. It is the only access-controlled operation:
// ctx must carry verified claims (see auth.NewContext).
// Returns domain.ErrUnauthorized without claims, domain.ErrValidation for
// blank team names.
func (s *MatchService) Create(ctx context.Context, homeTeam, awayTeam string) (domain.Match, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", domain.ErrUnauthorized)
	}

	m := domain.Match{
		HomeTeam: strings.TrimSpace(homeTeam),
		AwayTeam: strings.TrimSpace(awayTeam),
	}
	if err := validateMatch(m); err != nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", err)
	}

	created, err := s.matches.Create(ctx, m)
	if err != nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.Create: %w", err)
	}

	s.rec.MatchCreated()
	s.log.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"home_team", created.HomeTeam,
		"away_team", created.AwayTeam,
		"subject", claims.Subject,
	)
	return created, nil
}

// RecordGoal appends a goal to an existing match. Team and minute are stored
// as given; a team matching neither side is only excluded when scoring.
// Returns domain.ErrNotFound for an unknown match, domain.ErrValidation when
// scorer or team is blank.
func (s *MatchService) RecordGoal(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	goal.Scorer = strings.TrimSpace(goal.Scorer)
	goal.Team = strings.TrimSpace(goal.Team)
	if err := validateGoal(goal); err != nil {
		return domain.Goal{}, fmt.Errorf("service.MatchService.RecordGoal: %w", err)
	}

	saved, err := s.matches.AddGoal(ctx, goal)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("service.MatchService.RecordGoal: %w", err)
	}

	s.rec.GoalRecorded()
	s.log.InfoContext(ctx, "goal recorded",
		"match_id", saved.MatchID,
		"minute", saved.Minute,
		"team", saved.Team,
	)
	return saved, nil
}

// GetByID returns a match with its full goal history.
// Returns domain.ErrNotFound if no match with that ID exists.
func (s *MatchService) GetByID(ctx context.Context, id uuid.UUID) (domain.Match, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return domain.Match{}, fmt.Errorf("service.MatchService.GetByID: %w", err)
	}
	return m, nil
}

// List returns summaries of every match in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *MatchService) List(ctx context.Context) ([]domain.Match, error) {
	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MatchService.List: %w", err)
	}
	if matches == nil {
		return []domain.Match{}, nil
	}
	return matches, nil
}

// Score returns the aggregated scoreline for a match.
// Returns domain.ErrNotFound for an unknown match and
// domain.ErrNoGoalsRecorded if it has no goals yet.
func (s *MatchService) Score(ctx context.Context, id uuid.UUID) (domain.ScoreLine, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return domain.ScoreLine{}, fmt.Errorf("service.MatchService.Score: %w", err)
	}

	line, err := scoreboard.Aggregate(m)
	if err != nil {
		return domain.ScoreLine{}, fmt.Errorf("service.MatchService.Score: %w", err)
	}
	return line, nil
}

// validateMatch requires both team names (already trimmed).
func validateMatch(m domain.Match) error {
	if m.HomeTeam == "" {
		return fmt.Errorf("%w: homeTeam is required", domain.ErrValidation)
	}
	if m.AwayTeam == "" {
		return fmt.Errorf("%w: awayTeam is required", domain.ErrValidation)
	}
	return nil
}

// validateGoal checks presence only. Minute range and team membership are
// intentionally not checked.
func validateGoal(g domain.Goal) error {
	if g.Scorer == "" {
		return fmt.Errorf("%w: scorer is required", domain.ErrValidation)
	}
	if g.Team == "" {
		return fmt.Errorf("%w: team is required", domain.ErrValidation)
	}
	return nil
}
