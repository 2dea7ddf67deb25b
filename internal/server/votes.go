package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/domain"
)

type voteRequest struct {
	AnswerID string `json:"answerId"`
	Value    int    `json:"value"`
}

// handleVote upserts the caller's vote on an answer. Voting twice replaces
// the previous value; it never accumulates.
func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req voteRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AnswerID == "" || (req.Value != 1 && req.Value != -1) {
		s.error(w, http.StatusBadRequest, "answerId and value (1 or -1) are required")
		return
	}

	vote, err := s.store.UpsertVote(r.Context(), &domain.Vote{
		AnswerID: req.AnswerID,
		UserID:   p.UserID,
		Value:    req.Value,
	})
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}
	s.respond(w, http.StatusOK, vote)
}
