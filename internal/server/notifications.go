package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	notifications, err := s.store.ListNotifications(r.Context(), p.UserID)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, notifications)
}

// handleMarkNotificationsRead flips isRead for the caller's own
// notifications. Ids owned by someone else are silently skipped, not an
// error; the response carries how many were actually updated.
func (s *Server) handleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	var req markReadRequest
	if err := decode(r, &req); err != nil || req.NotificationIDs == nil {
		s.error(w, http.StatusBadRequest, "notificationIds array is required")
		return
	}

	count, err := s.store.MarkNotificationsRead(r.Context(), p.UserID, req.NotificationIDs)
	if err != nil {
		s.storageError(w, err, "", "")
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"message":      "Notifications marked as read",
		"updatedCount": count,
	})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStreamNotifications pushes the caller's new notifications over a
// websocket until the client goes away. Delivery is best-effort; the
// poll-based list endpoint remains the source of truth.
func (s *Server) handleStreamNotifications(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	subID, ch := s.hub.Subscribe(p.UserID)
	defer s.hub.Unsubscribe(p.UserID, subID)

	// Drain reads so we notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(n); err != nil {
				return
			}
		}
	}
}
