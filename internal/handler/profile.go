package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/service"
)

// ProfileHandler serves the aggregated profile snapshot and the health check.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// HandleProfile returns the composite profile for a user: the user record,
// joined clubs, recommended clubs (joined excluded, empty when the user has
// no preferences), authored projects, and collaborations.
//
// HTTP: GET /api/profile/{userID}
// 404 when the user does not exist.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		writeError(w, apperror.ValidationFailed("userID", "user ID is required"))
		return
	}

	profile, err := h.profiles.Aggregate(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleHealth is the root health check.
//
// HTTP: GET /
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "online",
		"timestamp": time.Now(),
	})
}
