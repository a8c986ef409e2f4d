package repo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/scorelive/internal/domain"
)

// memoryMatchRepo keeps matches in process memory. The index is guarded by
// an RWMutex; each match has its own mutex so appends to one match are
// serialized without blocking reads or writes on others.
type memoryMatchRepo struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	matches map[uuid.UUID]*memoryMatch

	goalSeq atomic.Int64
	now     func() time.Time
}

type memoryMatch struct {
	mu    sync.Mutex
	match domain.Match // Goals always nil; goals live below
	goals []domain.Goal
}

// NewMemoryMatchRepo constructs an empty in-memory MatchRepo.
// State lives as long as the returned value; nothing is persisted.
func NewMemoryMatchRepo() MatchRepo {
	return &memoryMatchRepo{
		matches: make(map[uuid.UUID]*memoryMatch),
		now:     time.Now,
	}
}

func (r *memoryMatchRepo) Create(_ context.Context, match domain.Match) (domain.Match, error) {
	m := domain.Match{
		ID:        uuid.New(),
		HomeTeam:  match.HomeTeam,
		AwayTeam:  match.AwayTeam,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; exists {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.Create: duplicate match id %s", m.ID)
	}
	r.matches[m.ID] = &memoryMatch{match: m}
	r.order = append(r.order, m.ID)

	return m, nil
}

func (r *memoryMatchRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Match, error) {
	mm, ok := r.lookup(id)
	if !ok {
		return domain.Match{}, fmt.Errorf("repo.MatchRepo.GetByID: %w", domain.ErrNotFound)
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	m := mm.match
	m.Goals = append([]domain.Goal{}, mm.goals...)
	return m, nil
}

func (r *memoryMatchRepo) List(_ context.Context) ([]domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Match, 0, len(r.order))
	for _, id := range r.order {
		// match is immutable after Create, so no per-match lock is needed.
		matches = append(matches, r.matches[id].match)
	}
	return matches, nil
}

func (r *memoryMatchRepo) AddGoal(_ context.Context, goal domain.Goal) (domain.Goal, error) {
	mm, ok := r.lookup(goal.MatchID)
	if !ok {
		return domain.Goal{}, fmt.Errorf("repo.MatchRepo.AddGoal: %w", domain.ErrNotFound)
	}

	mm.mu.Lock()
	defer mm.mu.Unlock()

	goal.ID = r.goalSeq.Add(1)
	mm.goals = append(mm.goals, goal)
	return goal, nil
}

func (r *memoryMatchRepo) lookup(id uuid.UUID) (*memoryMatch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mm, ok := r.matches[id]
	return mm, ok
}
