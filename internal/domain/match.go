// Package domain contains the core data types for the ScoreLive application.
// This package depends only on uuid and is imported by every other internal
// package (repo, service, scoreboard, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Match is a tracked fixture and the top-level aggregate; goals belong to a match.
// HomeTeam and AwayTeam never change after creation.
type Match struct {
	ID        uuid.UUID
	HomeTeam  string
	AwayTeam  string
	CreatedAt time.Time
	Goals     []Goal // insertion order; nil in list summaries
}

// Goal is a single scoring event. Team is stored as reported and is not
// checked against the match's teams.
type Goal struct {
	ID      int64
	MatchID uuid.UUID
	Minute  int
	Scorer  string
	Team    string
}

// ScoreLine is the derived home/away tally for a match.
type ScoreLine struct {
	MatchID   uuid.UUID
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
}

// Fixture renders the scoreline's key, e.g. "Arsenal vs Chelsea".
func (s ScoreLine) Fixture() string {
	return fmt.Sprintf("%s vs %s", s.HomeTeam, s.AwayTeam)
}

// Score renders the tally, e.g. "2 - 1".
func (s ScoreLine) Score() string {
	return fmt.Sprintf("%d - %d", s.HomeScore, s.AwayScore)
}
