// Package scoreboard derives running scores from a match's goal history.
package scoreboard

import (
	"fmt"

	"github.com/pkordes/scorelive/internal/domain"
)

// Aggregate tallies m's goals into a ScoreLine. A goal counts for the home
// side when its Team equals m.HomeTeam, otherwise for the away side when it
// equals m.AwayTeam; goals naming any other team are left out of both counts.
// Returns domain.ErrNoGoalsRecorded if m has no goals at all.
func Aggregate(m domain.Match) (domain.ScoreLine, error) {
	if len(m.Goals) == 0 {
		return domain.ScoreLine{}, fmt.Errorf("scoreboard.Aggregate: match %s: %w", m.ID, domain.ErrNoGoalsRecorded)
	}

	line := domain.ScoreLine{
		MatchID:  m.ID,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
	}
	for _, g := range m.Goals {
		switch g.Team {
		case m.HomeTeam:
			line.HomeScore++
		case m.AwayTeam:
			line.AwayScore++
		}
	}
	return line, nil
}
