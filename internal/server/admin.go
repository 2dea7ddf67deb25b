package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/go-chi/chi/v5"
)

const recentActivityLimit = 10

// === Users ===

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, users)
}

func (s *Server) handleAdminGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserWithCounts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err, "User not found", "")
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	if id == p.UserID {
		s.error(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "User not found", "")
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.storageError(w, err, "User not found", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
		"deletedUser": map[string]string{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     string(user.Role),
		},
	})
}

// === Questions ===

func (s *Server) handleAdminListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.store.ListQuestions(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, questions)
}

func (s *Server) handleAdminUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Description.IsZero() {
		s.error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	updated, err := s.store.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), req.Title, req.Description, req.Tags)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleAdminDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	question, err := s.store.GetQuestionByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}

	if err := s.store.DeleteQuestion(r.Context(), id); err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message": "Question deleted successfully",
		"deletedQuestion": map[string]string{
			"id":    question.ID,
			"title": question.Title,
		},
	})
}

// === Answers ===

func (s *Server) handleAdminListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.store.ListAnswers(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, answers)
}

func (s *Server) handleAdminUpdateAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content domain.Document `json:"content"`
	}
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content.IsZero() {
		s.error(w, http.StatusBadRequest, "Content is required")
		return
	}

	updated, err := s.store.UpdateAnswerContent(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleAdminDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	answer, err := s.store.GetAnswerByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Answer not found", "")
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

// === Comments ===

func (s *Server) handleAdminListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.store.ListComments(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, comments)
}

func (s *Server) handleAdminDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	comment, err := s.store.GetCommentByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Comment not found", "")
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

// === Tags ===

func (s *Server) handleAdminListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, tags)
}

type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAdminCreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		s.error(w, http.StatusBadRequest, "Tag name is required and must be a non-empty string")
		return
	}

	tag, err := s.store.CreateTag(r.Context(), req.Name)
	if err != nil {
		s.storageError(w, err, "Tag not found", "Tag already exists")
		return
	}
	s.respond(w, http.StatusCreated, tag)
}

func (s *Server) handleAdminUpdateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		s.error(w, http.StatusBadRequest, "Tag name is required and must be a non-empty string")
		return
	}

	tag, err := s.store.UpdateTag(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		s.storageError(w, err, "Tag not found", "Tag name already exists")
		return
	}
	s.respond(w, http.StatusOK, tag)
}

func (s *Server) handleAdminDeleteTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tag, err := s.store.GetTagByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Tag not found", "")
		return
	}

	if err := s.store.DeleteTag(r.Context(), id); err != nil {
		s.storageError(w, err, "Tag not found", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message": "Tag deleted successfully",
		"deletedTag": map[string]string{
			"id":   tag.ID,
			"name": tag.Name,
		},
	})
}

// === Aggregates ===

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, stats)
}

func (s *Server) handleAdminRecentActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.store.RecentActivity(r.Context(), recentActivityLimit)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, activity)
}
