package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/scorelive/internal/domain"
)

// --- request bodies ---------------------------------------------------------

type createMatchRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
}

type recordGoalRequest struct {
	MatchID string `json:"matchId"`
	Minute  *int   `json:"minute"`
	Scorer  string `json:"scorer"`
	Team    string `json:"team"`
}

// --- responses --------------------------------------------------------------

type matchSummary struct {
	MatchID   uuid.UUID `json:"matchId"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	CreatedAt time.Time `json:"createdAt"`
}

type matchDetail struct {
	matchSummary
	Goals []goalResponse `json:"goals"`
}

type goalResponse struct {
	ID      int64     `json:"id"`
	MatchID uuid.UUID `json:"matchId"`
	Minute  int       `json:"minute"`
	Scorer  string    `json:"scorer"`
	Team    string    `json:"team"`
}

type createMatchResponse struct {
	Message string `json:"message"`
	matchSummary
}

type recordGoalResponse struct {
	Message string       `json:"message"`
	Goal    goalResponse `json:"goal"`
}

type listMatchesResponse struct {
	Matches []matchSummary `json:"matches"`
}

// CreateMatch handles POST /newmatch. The bearer middleware has already put
// verified claims on the context.
func (s *Server) CreateMatch(w http.ResponseWriter, r *http.Request) {
	req, err := bindCreateMatch(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.matches.Create(r.Context(), req.HomeTeam, req.AwayTeam)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createMatchResponse{
		Message:      "New match created successfully",
		matchSummary: matchToSummary(created),
	})
}

// RecordGoal handles POST /goalscored.
func (s *Server) RecordGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := bindRecordGoal(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	saved, err := s.matches.RecordGoal(r.Context(), goal)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordGoalResponse{
		Message: "Goal recorded",
		Goal:    goalToResponse(saved),
	})
}

// GetMatch handles GET /livematches/{matchId}.
func (s *Server) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathMatchID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	m, err := s.matches.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, matchToDetail(m))
}

// ListMatches handles GET /get_all_matches.
func (s *Server) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matches.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make([]matchSummary, len(matches))
	for i, m := range matches {
		out[i] = matchToSummary(m)
	}
	writeJSON(w, http.StatusOK, listMatchesResponse{Matches: out})
}

// --- binding ----------------------------------------------------------------

// bindCreateMatch reads homeTeam/awayTeam from a JSON body or, failing a JSON
// content type, from query parameters.
func bindCreateMatch(r *http.Request) (createMatchRequest, error) {
	var req createMatchRequest
	if hasJSONBody(r) {
		return req, decodeJSON(r, &req)
	}

	var err error
	if req.HomeTeam, err = queryString(r, "homeTeam"); err != nil {
		return req, err
	}
	if req.AwayTeam, err = queryString(r, "awayTeam"); err != nil {
		return req, err
	}
	return req, nil
}

// bindRecordGoal reads a goal from a JSON body or from query parameters.
func bindRecordGoal(r *http.Request) (domain.Goal, error) {
	if hasJSONBody(r) {
		var req recordGoalRequest
		if err := decodeJSON(r, &req); err != nil {
			return domain.Goal{}, err
		}
		if req.Minute == nil {
			return domain.Goal{}, errMinuteRequired
		}
		id, err := uuid.Parse(req.MatchID)
		if err != nil {
			return domain.Goal{}, errBadMatchID
		}
		return domain.Goal{MatchID: id, Minute: *req.Minute, Scorer: req.Scorer, Team: req.Team}, nil
	}

	id, err := queryMatchID(r)
	if err != nil {
		return domain.Goal{}, err
	}
	g := domain.Goal{MatchID: id}
	if g.Minute, err = queryInt(r, "minute"); err != nil {
		return domain.Goal{}, err
	}
	if g.Scorer, err = queryString(r, "scorer"); err != nil {
		return domain.Goal{}, err
	}
	if g.Team, err = queryString(r, "team"); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

// --- mapping helpers --------------------------------------------------------

func matchToSummary(m domain.Match) matchSummary {
	return matchSummary{
		MatchID:   m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		CreatedAt: m.CreatedAt,
	}
}

// matchToDetail always emits a goals array, empty rather than null.
func matchToDetail(m domain.Match) matchDetail {
	goals := make([]goalResponse, len(m.Goals))
	for i, g := range m.Goals {
		goals[i] = goalToResponse(g)
	}
	return matchDetail{matchSummary: matchToSummary(m), Goals: goals}
}

func goalToResponse(g domain.Goal) goalResponse {
	return goalResponse{
		ID:      g.ID,
		MatchID: g.MatchID,
		Minute:  g.Minute,
		Scorer:  g.Scorer,
		Team:    g.Team,
	}
}
