package handler

import (
	"net/http"
	"time"
)

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// GetToken handles GET /token?username=.
// Any username is accepted; no password or identity check is made.
func (s *Server) GetToken(w http.ResponseWriter, r *http.Request) {
	username, err := queryString(r, "username")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tok, err := s.tokens.Issue(username)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.rec.TokenIssued()
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresAt:   tok.ExpiresAt,
	})
}
