package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/go-chi/chi/v5"
)

type commentRequest struct {
	AnswerID string          `json:"answerId"`
	Content  domain.Document `json:"content"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req commentRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content.IsZero() || req.AnswerID == "" {
		s.error(w, http.StatusBadRequest, "Content and answerId are required")
		return
	}

	answer, err := s.store.GetAnswerByID(r.Context(), req.AnswerID)
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}

	comment, err := s.store.CreateComment(r.Context(), &domain.Comment{
		Content:  req.Content,
		AuthorID: p.UserID,
		AnswerID: req.AnswerID,
	})
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}

	s.notifier.CommentPosted(r.Context(), answer, comment)

	s.respond(w, http.StatusCreated, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	comment, err := s.store.GetCommentByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Comment not found", "")
		return
	}
	if comment.AuthorID != p.UserID {
		s.error(w, http.StatusForbidden, "Only the comment author can delete the comment")
		return
	}

	if err := s.store.DeleteComment(r.Context(), id); err != nil {
		s.storageError(w, err, "Comment not found", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message": "Comment deleted successfully",
		"deletedComment": map[string]string{
			"id":       comment.ID,
			"answerId": comment.AnswerID,
		},
	})
}
