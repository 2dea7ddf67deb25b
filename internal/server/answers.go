package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/go-chi/chi/v5"
)

type answerRequest struct {
	QuestionID string          `json:"questionId"`
	Content    domain.Document `json:"content"`
}

func (s *Server) handleCreateAnswer(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req answerRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content.IsZero() || req.QuestionID == "" {
		s.error(w, http.StatusBadRequest, "Content and questionId are required")
		return
	}

	question, err := s.store.GetQuestionByID(r.Context(), req.QuestionID)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}

	answer, err := s.store.CreateAnswer(r.Context(), &domain.Answer{
		Content:    req.Content,
		AuthorID:   p.UserID,
		QuestionID: req.QuestionID,
	})
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}

	// Synchronous, best-effort fan-out; a failed notification write never
	// fails the answer itself.
	s.notifier.AnswerPosted(r.Context(), question, answer)

	s.respond(w, http.StatusCreated, answer)
}

func (s *Server) handleDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	answer, err := s.store.GetAnswerByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}
	if answer.AuthorID != p.UserID {
		s.error(w, http.StatusForbidden, "Only the answer author can delete the answer")
		return
	}

	if err := s.store.DeleteAnswer(r.Context(), id); err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message": "Answer deleted successfully",
		"deletedAnswer": map[string]string{
			"id":         answer.ID,
			"questionId": answer.QuestionID,
		},
	})
}
