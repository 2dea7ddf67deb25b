package server

import (
	"net/http"
	"time"

	"github.com/stackit-team/stackit-server/internal/domain"

	"github.com/go-chi/chi/v5"
)

type questionRequest struct {
	Title       string          `json:"title"`
	Description domain.Document `json:"description"`
	Tags        []string        `json:"tags"`
}

type acceptRequest struct {
	AnswerID string `json:"answerId"`
}

type authorView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type commentView struct {
	ID        string          `json:"id"`
	Content   domain.Document `json:"content"`
	Author    authorView      `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
}

type answerView struct {
	ID        string          `json:"id"`
	Content   domain.Document `json:"content"`
	Author    authorView      `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
	Score     int             `json:"score"`
	Comments  []commentView   `json:"comments"`
}

type questionDetailView struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      domain.Document `json:"description"`
	Author           authorView      `json:"author"`
	Tags             []*domain.Tag   `json:"tags"`
	CreatedAt        time.Time       `json:"createdAt"`
	AcceptedAnswerID *string         `json:"acceptedAnswerId"`
	Answers          []answerView    `json:"answers"`
}

func toAuthorView(u *domain.User) authorView {
	if u == nil {
		return authorView{}
	}
	return authorView{ID: u.ID, Username: u.Username}
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListQuestionSummaries(r.Context())
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, summaries)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := s.store.GetQuestionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}

	view := questionDetailView{
		ID:               question.ID,
		Title:            question.Title,
		Description:      question.Description,
		Author:           toAuthorView(question.Author),
		Tags:             question.Tags,
		CreatedAt:        question.CreatedAt,
		AcceptedAnswerID: question.AcceptedAnswerID,
		Answers:          make([]answerView, 0, len(question.Answers)),
	}
	for _, a := range question.Answers {
		av := answerView{
			ID:        a.ID,
			Content:   a.Content,
			Author:    toAuthorView(a.Author),
			CreatedAt: a.CreatedAt,
			Score:     a.Score(),
			Comments:  make([]commentView, 0, len(a.Comments)),
		}
		for _, c := range a.Comments {
			av.Comments = append(av.Comments, commentView{
				ID:        c.ID,
				Content:   c.Content,
				Author:    toAuthorView(c.Author),
				CreatedAt: c.CreatedAt,
			})
		}
		view.Answers = append(view.Answers, av)
	}
	s.respond(w, http.StatusOK, view)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req questionRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Description.IsZero() {
		s.error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	question, err := s.store.CreateQuestion(r.Context(), &domain.Question{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    p.UserID,
	}, req.Tags)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	s.respond(w, http.StatusCreated, question)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	question, err := s.store.GetQuestionByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	if question.AuthorID != p.UserID && p.Role != domain.RoleAdmin {
		s.error(w, http.StatusForbidden, "Only the question author can edit the question")
		return
	}

	var req questionRequest
	if err := decode(r, &req); err != nil {
		s.error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Description.IsZero() {
		s.error(w, http.StatusBadRequest, "Title and description are required")
		return
	}

	updated, err := s.store.UpdateQuestion(r.Context(), id, req.Title, req.Description, req.Tags)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	s.respond(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	question, err := s.store.GetQuestionByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	if question.AuthorID != p.UserID && p.Role != domain.RoleAdmin {
		s.error(w, http.StatusForbidden, "Only the question author can delete the question")
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

func (s *Server) handleAcceptAnswer(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req acceptRequest
	if err := decode(r, &req); err != nil || req.AnswerID == "" {
		s.error(w, http.StatusBadRequest, "answerId is required")
		return
	}

	question, err := s.store.GetQuestionByID(r.Context(), id)
	if err != nil {
		s.storageError(w, err, "Question not found", "")
		return
	}
	if question.AuthorID != p.UserID {
		s.error(w, http.StatusForbidden, "Only the question author can accept an answer")
		return
	}

	updated, err := s.store.AcceptAnswer(r.Context(), id, req.AnswerID)
	if err != nil {
		s.storageError(w, err, "Answer not found for this question", "")
		return
	}
	s.respond(w, http.StatusOK, updated)
}
