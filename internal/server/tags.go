package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/suggest"

	"go.uber.org/zap"
)

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, tags)
}

// handleSuggestTags asks the model for candidates, then keeps only names
// that already exist in the tag table, in their canonical casing.
func (s *Server) handleSuggestTags(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		s.error(w, http.StatusServiceUnavailable, "Tag suggestion is not configured")
		return
	}

	var req suggestRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" && req.Description == "" {
		s.error(w, http.StatusBadRequest, "Title or description is required")
		return
	}

	candidates, err := s.suggester.Suggest(r.Context(), req.Title, req.Description)
	if err != nil {
		s.log.Error("tag suggestion failed", zap.Error(err))
		s.error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing, err := s.store.ListTags(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}

	s.respond(w, http.StatusOK, map[string][]string{
		"tags": suggest.FilterExisting(candidates, existing),
	})
}
