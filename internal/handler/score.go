package handler

import (
	"net/http"

	"github.com/google/uuid"
)

type scoreResponse struct {
	MatchID   uuid.UUID `json:"matchId"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	// Scoreline is the single-entry {"Home vs Away": "h - a"} rendering.
	Scoreline map[string]string `json:"scoreline"`
}

// GetScore handles GET /score?matchId=.
// A match with no goals yet is answered with 404 no_goals_recorded.
func (s *Server) GetScore(w http.ResponseWriter, r *http.Request) {
	id, err := queryMatchID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	line, err := s.matches.Score(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		MatchID:   line.MatchID,
		HomeTeam:  line.HomeTeam,
		AwayTeam:  line.AwayTeam,
		HomeScore: line.HomeScore,
		AwayScore: line.AwayScore,
		Scoreline: map[string]string{line.Fixture(): line.Score()},
	})
}
