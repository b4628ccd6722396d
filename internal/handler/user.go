package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/service"
)

// UserHandler serves the user list and preference updates.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleList returns all users.
//
// HTTP: GET /api/users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type preferencesRequest struct {
	UserID    string   `json:"user_id"`
	Interests []string `json:"interests"`
}

// HandleUpdatePreferences replaces a user's preference tags and returns the
// updated user.
//
// HTTP: PUT /api/users/preferences
// 404 when the user id is unknown.
func (h *UserHandler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	user, err := h.users.UpdatePreferences(r.Context(), req.UserID, req.Interests)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
