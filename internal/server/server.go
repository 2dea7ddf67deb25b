package server

import (
	"net/http"

	"github.com/stackit-team/stackit-server/internal/auth"
	"github.com/stackit-team/stackit-server/internal/domain"
	"github.com/stackit-team/stackit-server/internal/notify"
	"github.com/stackit-team/stackit-server/internal/storage"
	"github.com/stackit-team/stackit-server/internal/suggest"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server wires storage, auth and the notification fan-out behind the REST
// surface. Handlers hold no state of their own.
type Server struct {
	store     storage.Storage
	tokens    *auth.Manager
	notifier  *notify.Notifier
	hub       *notify.Hub
	suggester suggest.Suggester // nil when no API key is configured
	log       *zap.Logger
}

func New(store storage.Storage, tokens *auth.Manager, notifier *notify.Notifier, hub *notify.Hub, suggester suggest.Suggester, log *zap.Logger) *Server {
	return &Server{
		store:     store,
		tokens:    tokens,
		notifier:  notifier,
		hub:       hub,
		suggester: suggester,
		log:       log,
	}
}

// Routes builds the router. Public reads stay outside the auth group;
// everything that writes requires a principal.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Server running"))
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleListQuestions)
		r.Get("/questions/{id}", s.handleGetQuestion)
		r.Get("/tags", s.handleListTags)
		r.Post("/tags/suggest", s.handleSuggestTags)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireRole(domain.RoleUser, domain.RoleAdmin))

			r.Post("/questions", s.handleCreateQuestion)
			r.Put("/questions/{id}", s.handleUpdateQuestion)
			r.Delete("/questions/{id}", s.handleDeleteQuestion)
			r.Post("/questions/{id}/accept", s.handleAcceptAnswer)

			r.Post("/answers", s.handleCreateAnswer)
			r.Delete("/answers/{id}", s.handleDeleteAnswer)

			r.Post("/comments", s.handleCreateComment)
			r.Delete("/comments/{id}", s.handleDeleteComment)

			r.Post("/votes", s.handleVote)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications/mark-read", s.handleMarkNotificationsRead)
			r.Get("/notifications/stream", s.handleStreamNotifications)

			r.Get("/users/me", s.handleMe)
			r.Get("/users/me/questions", s.handleMyQuestions)
			r.Get("/users/me/answers", s.handleMyAnswers)
			r.Get("/users/me/comments", s.handleMyComments)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireRole(domain.RoleAdmin))

			r.Get("/users", s.handleAdminListUsers)
			r.Get("/users/{id}", s.handleAdminGetUser)
			r.Delete("/users/{id}", s.handleAdminDeleteUser)

			r.Get("/questions", s.handleAdminListQuestions)
			r.Put("/questions/{id}", s.handleAdminUpdateQuestion)
			r.Delete("/questions/{id}", s.handleAdminDeleteQuestion)

			r.Get("/answers", s.handleAdminListAnswers)
			r.Put("/answers/{id}", s.handleAdminUpdateAnswer)
			r.Delete("/answers/{id}", s.handleAdminDeleteAnswer)

			r.Get("/comments", s.handleAdminListComments)
			r.Delete("/comments/{id}", s.handleAdminDeleteComment)

			r.Get("/tags", s.handleAdminListTags)
			r.Post("/tags", s.handleAdminCreateTag)
			r.Put("/tags/{id}", s.handleAdminUpdateTag)
			r.Delete("/tags/{id}", s.handleAdminDeleteTag)

			r.Get("/stats", s.handleAdminStats)
			r.Get("/recent-activity", s.handleAdminRecentActivity)
		})
	})

	return r
}
