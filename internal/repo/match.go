// Package repo contains all match and goal persistence for the ScoreLive API.
// MatchRepo has a Postgres implementation (this file) and an in-memory one
// (memory.go). No business logic lives here, only storage and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/scorelive/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test; Begin on a
// pgx.Tx opens a savepoint, so AddGoal's locking transaction nests inside it.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MatchRepo defines the persistence operations for matches and their goals.
// The service layer depends on this interface, not on either implementation.
type MatchRepo interface {
	// Create stores a new match with no goals and returns it with its
	// store-allocated ID and CreatedAt populated.
	Create(ctx context.Context, match domain.Match) (domain.Match, error)

	// GetByID returns a match and all its goals in insertion order.
	// Returns domain.ErrNotFound if no match with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Match, error)

	// List returns every match in creation order, without goals.
	List(ctx context.Context) ([]domain.Match, error)

	// AddGoal appends a goal to its match and returns it with ID populated.
	// Appends to the same match are linearized.
	// Returns domain.ErrNotFound if goal.MatchID does not exist.
	AddGoal(ctx context.Context, goal domain.Goal) (domain.Goal, error)
}

// pgMatchRepo is the Postgres implementation of MatchRepo.
type pgMatchRepo struct {
	db db
}

// NewMatchRepo constructs a MatchRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewMatchRepo(db db) MatchRepo {
	return &pgMatchRepo{db: db}
}

// Create inserts a match row; match_id and created_at are generated by the DB.
func (r *pgMatchRepo) Create(ctx context.Context, match domain.Match) (domain.Match, error) {
	const q = `
		INSERT INTO matches (home_team, away_team)
		VALUES (@home_team, @away_team)
		RETURNING match_id, home_team, away_team, created_at`

	args := pgx.NamedArgs{
		"home_team": match.HomeTeam,
		"away_team": match.AwayTeam,
	}

	result, err := scanMatch(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a match by primary key, then its goals ordered by id.
func (r *pgMatchRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Match, error) {
	const q = `
		SELECT match_id, home_team, away_team, created_at
		FROM matches
		WHERE match_id = @match_id`

	m, err := scanMatch(r.db.QueryRow(ctx, q, pgx.NamedArgs{"match_id": id}))
	if err != nil {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.GetByID: %w", err)
	}

	goals, err := r.listGoals(ctx, id)
	if err != nil {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.GetByID: %w", err)
	}
	m.Goals = goals

	return m, nil
}

// List returns all matches ordered by created_at, ties broken by match_id.
func (r *pgMatchRepo) List(ctx context.Context) ([]domain.Match, error) {
	const q = `
		SELECT match_id, home_team, away_team, created_at
		FROM matches
		ORDER BY created_at, match_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.MatchRepo.List: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MatchRepo.List: scan: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MatchRepo.List: rows: %w", err)
	}

	return matches, nil
}

// AddGoal locks the parent match row for the rest of the transaction, so
// concurrent appends to one match queue behind each other, then inserts.
func (r *pgMatchRepo) AddGoal(ctx context.Context, goal domain.Goal) (domain.Goal, error) {
	const lockQ = `SELECT match_id FROM matches WHERE match_id = @match_id FOR UPDATE`
	const insertQ = `
		INSERT INTO goals (match_id, minute, scorer, team)
		VALUES (@match_id, @minute, @scorer, @team)
		RETURNING id, match_id, minute, scorer, team`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op after Commit

	var locked pgtype.UUID
	if err := tx.QueryRow(ctx, lockQ, pgx.NamedArgs{"match_id": goal.MatchID}).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: %w", domain.ErrNotFound)
		}
		return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: lock: %w", err)
	}

	args := pgx.NamedArgs{
		"match_id": goal.MatchID,
		"minute":   goal.Minute,
		"scorer":   goal.Scorer,
		"team":     goal.Team,
	}
	result, err := scanGoal(tx.QueryRow(ctx, insertQ, args))
	if err != nil {
		return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: commit: %w", err)
	}
	return result, nil
}

func (r *pgMatchRepo) listGoals(ctx context.Context, matchID uuid.UUID) ([]domain.Goal, error) {
	const q = `
		SELECT id, match_id, minute, scorer, team
		FROM goals
		WHERE match_id = @match_id
		ORDER BY id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"match_id": matchID})
	if err != nil {
		return nil, fmt.Errorf("goals: %w", err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("goals: scan: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goals: rows: %w", err)
	}
	return goals, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanMatch maps a matches row into a domain.Match (Goals left nil).
func scanMatch(s scanner) (domain.Match, error) {
	var (
		m  domain.Match
		id pgtype.UUID
	)

	if err := s.Scan(&id, &m.HomeTeam, &m.AwayTeam, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Match{}, domain.ErrNotFound
		}
		return domain.Match{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	return m, nil
}

// scanGoal maps a goals row into a domain.Goal.
func scanGoal(s scanner) (domain.Goal, error) {
	var (
		g       domain.Goal
		matchID pgtype.UUID
	)

	if err := s.Scan(&g.ID, &matchID, &g.Minute, &g.Scorer, &g.Team); err != nil {
		return domain.Goal{}, err
	}

	g.MatchID = uuid.UUID(matchID.Bytes)
	return g, nil
}
