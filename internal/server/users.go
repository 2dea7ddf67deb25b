package server

import (
	"net/http"
	"time"

	"github.com/stackit-team/stackit-server/internal/domain"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	user, err := s.store.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		s.storageError(w, err, "User not found", "")
		return
	}
	s.respond(w, http.StatusOK, user)
}

func (s *Server) handleMyQuestions(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	questions, err := s.store.ListQuestionsByAuthor(r.Context(), p.UserID)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}

	type item struct {
		ID          string        `json:"id"`
		Title       string        `json:"title"`
		CreatedAt   time.Time     `json:"createdAt"`
		Tags        []*domain.Tag `json:"tags"`
		AnswerCount int           `json:"answerCount"`
	}
	out := make([]item, 0, len(questions))
	for _, q := range questions {
		out = append(out, item{
			ID:          q.ID,
			Title:       q.Title,
			CreatedAt:   q.CreatedAt,
			Tags:        q.Tags,
			AnswerCount: len(q.Answers),
		})
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleMyAnswers(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	answers, err := s.store.ListAnswersByAuthor(r.Context(), p.UserID)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}

	type item struct {
		ID            string          `json:"id"`
		Content       domain.Document `json:"content"`
		QuestionID    string          `json:"questionId"`
		QuestionTitle string          `json:"questionTitle"`
		VoteCount     int             `json:"voteCount"`
		CreatedAt     time.Time       `json:"createdAt"`
	}
	out := make([]item, 0, len(answers))
	for _, a := range answers {
		title := ""
		if a.Question != nil {
			title = a.Question.Title
		}
		out = append(out, item{
			ID:            a.ID,
			Content:       a.Content,
			QuestionID:    a.QuestionID,
			QuestionTitle: title,
			VoteCount:     a.Score(),
			CreatedAt:     a.CreatedAt,
		})
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleMyComments(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	comments, err := s.store.ListCommentsByAuthor(r.Context(), p.UserID)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}

	type item struct {
		ID            string          `json:"id"`
		Content       domain.Document `json:"content"`
		CreatedAt     time.Time       `json:"createdAt"`
		QuestionID    string          `json:"questionId"`
		QuestionTitle string          `json:"questionTitle"`
		AnswerID      string          `json:"answerId"`
	}
	out := make([]item, 0, len(comments))
	for _, c := range comments {
		questionID, questionTitle := "", ""
		if c.Answer != nil && c.Answer.Question != nil {
			questionID = c.Answer.Question.ID
			questionTitle = c.Answer.Question.Title
		}
		out = append(out, item{
			ID:            c.ID,
			Content:       c.Content,
			CreatedAt:     c.CreatedAt,
			QuestionID:    questionID,
			QuestionTitle: questionTitle,
			AnswerID:      c.AnswerID,
		})
	}
	s.respond(w, http.StatusOK, out)
}
