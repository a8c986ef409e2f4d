package repo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/scorelive/internal/domain"
	"github.com/pkordes/scorelive/internal/repo"
)

// matchFixture returns an Arsenal vs Chelsea match ready for Create.
func matchFixture() domain.Match {
	return domain.Match{HomeTeam: "Arsenal", AwayTeam: "Chelsea"}
}

// missingID is a UUID that is never inserted by any test.
var missingID = uuid.UUID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// testMatchRepo runs the behaviour every MatchRepo implementation must share.
// newRepo must return an isolated, empty-enough repo for each call.
func testMatchRepo(t *testing.T, newRepo func(t *testing.T) repo.MatchRepo) {
	t.Run("Create", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Create(context.Background(), matchFixture())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, got.ID, "ID should be store-generated")
		assert.Equal(t, "Arsenal", got.HomeTeam)
		assert.Equal(t, "Chelsea", got.AwayTeam)
		assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by the store")
		assert.Empty(t, got.Goals)
	})

	t.Run("Create_UniqueIDs", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		seen := map[uuid.UUID]bool{}
		for range 5 {
			m, err := r.Create(ctx, matchFixture())
			require.NoError(t, err)
			assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
			seen[m.ID] = true
		}
	})

	t.Run("Create_SameTeamTwice", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Create(context.Background(), domain.Match{HomeTeam: "Derby", AwayTeam: "Derby"})

		require.NoError(t, err)
		assert.Equal(t, got.HomeTeam, got.AwayTeam)
	})

	t.Run("GetByID", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, matchFixture())
		require.NoError(t, err)

		got, err := r.GetByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.HomeTeam, got.HomeTeam)
		assert.NotNil(t, got.Goals, "a fetched match always carries a goal slice")
		assert.Empty(t, got.Goals)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetByID(context.Background(), missingID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("AddGoal_PreservesOrder", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		m, err := r.Create(ctx, matchFixture())
		require.NoError(t, err)

		// Reported out of minute order on purpose: storage order is reporting order.
		reported := []domain.Goal{
			{MatchID: m.ID, Minute: 55, Scorer: "Palmer", Team: "Chelsea"},
			{MatchID: m.ID, Minute: 10, Scorer: "Saka", Team: "Arsenal"},
			{MatchID: m.ID, Minute: 90 + 4, Scorer: "Rice", Team: "Arsenal"},
		}
		for i, g := range reported {
			saved, err := r.AddGoal(ctx, g)
			require.NoError(t, err)
			assert.NotZero(t, saved.ID)
			assert.Equal(t, g.Scorer, saved.Scorer)

			got, err := r.GetByID(ctx, m.ID)
			require.NoError(t, err)
			assert.Len(t, got.Goals, i+1, "goal sequence grows by exactly one")
		}

		got, err := r.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.Len(t, got.Goals, 3)
		for i, g := range got.Goals {
			assert.Equal(t, reported[i].Scorer, g.Scorer)
			assert.Equal(t, reported[i].Minute, g.Minute)
			assert.Equal(t, m.ID, g.MatchID)
		}
	})

	t.Run("AddGoal_UnknownTeamAccepted", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		m, err := r.Create(ctx, matchFixture())
		require.NoError(t, err)

		_, err = r.AddGoal(ctx, domain.Goal{MatchID: m.ID, Minute: -1, Scorer: "VAR", Team: "Referee Error"})

		require.NoError(t, err, "the store appends without checking team or minute")
	})

	t.Run("AddGoal_MinuteBeyondInt32", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		m, err := r.Create(ctx, matchFixture())
		require.NoError(t, err)

		const minute = 3_000_000_000
		saved, err := r.AddGoal(ctx, domain.Goal{MatchID: m.ID, Minute: minute, Scorer: "Saka", Team: "Arsenal"})
		require.NoError(t, err)
		assert.Equal(t, minute, saved.Minute)

		got, err := r.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.Len(t, got.Goals, 1)
		assert.Equal(t, minute, got.Goals[0].Minute)
	})

	t.Run("AddGoal_NotFound", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.AddGoal(context.Background(), domain.Goal{MatchID: missingID, Minute: 1, Scorer: "Saka", Team: "Arsenal"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		first, err := r.Create(ctx, domain.Match{HomeTeam: "Arsenal", AwayTeam: "Chelsea"})
		require.NoError(t, err)
		second, err := r.Create(ctx, domain.Match{HomeTeam: "Liverpool", AwayTeam: "Everton"})
		require.NoError(t, err)
		_, err = r.AddGoal(ctx, domain.Goal{MatchID: first.ID, Minute: 3, Scorer: "Saka", Team: "Arsenal"})
		require.NoError(t, err)

		matches, err := r.List(ctx)

		require.NoError(t, err)
		require.GreaterOrEqual(t, len(matches), 2)

		var ids []uuid.UUID
		for _, m := range matches {
			ids = append(ids, m.ID)
			assert.Nil(t, m.Goals, "list returns summaries only")
		}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
	})
}

// testMatchRepoConcurrentGoals fires n appends at one match from n goroutines
// and checks none are lost.
func testMatchRepoConcurrentGoals(t *testing.T, r repo.MatchRepo, n int) {
	t.Helper()
	ctx := context.Background()

	m, err := r.Create(ctx, matchFixture())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.AddGoal(ctx, domain.Goal{MatchID: m.ID, Minute: i, Scorer: fmt.Sprintf("p%d", i), Team: "Arsenal"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Goals, n, "no appends lost")

	for i := 1; i < len(got.Goals); i++ {
		assert.Greater(t, got.Goals[i].ID, got.Goals[i-1].ID, "goal ids increase in stored order")
	}
}
