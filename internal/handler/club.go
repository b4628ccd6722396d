package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
	"github.com/sakif/clubmonkey/internal/service"
)

// ClubHandler serves the club catalog, the club-with-posts view, membership
// joins, the feed, and the standalone recommendation endpoint.
type ClubHandler struct {
	clubs  *service.ClubService
	logger *slog.Logger
}

func NewClubHandler(clubs *service.ClubService, logger *slog.Logger) *ClubHandler {
	return &ClubHandler{clubs: clubs, logger: logger}
}

// clubIDParam parses the {clubID} URL parameter. Non-numeric ids are a 404,
// not a 400 — "/api/clubs/banana" names a club that cannot exist.
func clubIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("clubID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NotFound("club", raw)
	}
	return id, nil
}

// HandleList returns the full club catalog.
//
// HTTP: GET /api/clubs
func (h *ClubHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubs)
}

type createClubRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	LogoURL      string   `json:"logoUrl"`
	PrimaryColor string   `json:"primaryColor"`
	AccentColor  string   `json:"accentColor"`
	Tags         []string `json:"tags"`
}

// HandleCreate creates a new club.
//
// HTTP: POST /api/clubs
func (h *ClubHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	club, err := h.clubs.Create(r.Context(), &model.Club{
		Name:         req.Name,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
		AccentColor:  req.AccentColor,
		Tags:         model.NewTagSet(req.Tags...),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, club)
}

// HandleDetails returns the club-with-posts view, posts newest first.
//
// HTTP: GET /api/clubs/{clubID}
func (h *ClubHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := clubIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.clubs.Details(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// HandleDelete removes a club and, by cascade, its memberships and posts.
//
// HTTP: DELETE /api/clubs/{clubID}
func (h *ClubHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := clubIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.clubs.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type joinClubRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HandleJoin adds a member to a club.
//
// HTTP: POST /api/clubs/{clubID}/join
// 404 unknown club, 409 when the user already joined.
func (h *ClubHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := clubIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	membership, err := h.clubs.Join(r.Context(), req.UserID, id, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

// HandleCreatePost publishes a post on a club's feed.
//
// HTTP: POST /api/clubs/{clubID}/posts
func (h *ClubHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	id, err := clubIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	post, err := h.clubs.CreatePost(r.Context(), &model.Post{
		ClubID:   id,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleRecommended is the standalone recommendation endpoint.
//
// HTTP: GET /api/clubs/recommended/{userID}
//
// Unknown user or empty preferences → the whole catalog ("no signal → show
// everything"). This differs from the profile aggregation on purpose.
func (h *ClubHandler) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		writeError(w, apperror.ValidationFailed("userID", "user ID is required"))
		return
	}

	clubs, err := h.clubs.RecommendedFor(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clubs)
}
