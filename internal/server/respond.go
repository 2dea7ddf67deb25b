package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stackit-team/stackit-server/internal/storage"

	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) error(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, errorBody{Error: message})
}

// storageError maps storage sentinels onto the HTTP taxonomy. Anything
// unexpected is logged and hidden behind a generic 500.
func (s *Server) storageError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.error(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrConflict):
		s.error(w, http.StatusConflict, conflictMsg)
	default:
		s.log.Error("storage error", zap.Error(err))
		s.error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
