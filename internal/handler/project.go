package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/service"
)

// ProjectHandler serves project listing, creation, the project-with-author
// view, and team joins.
type ProjectHandler struct {
	projects *service.ProjectService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

func projectIDParam(r *http.Request) (int64, error) {
	raw := r.PathValue("projectID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NotFound("project", raw)
	}
	return id, nil
}

// HandleList returns all projects.
//
// HTTP: GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	AuthorID     string   `json:"author_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// HandleCreate creates a new project with status "open".
//
// HTTP: POST /api/projects
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	project, err := h.projects.Create(r.Context(),
		req.AuthorID, req.Title, req.Description, req.Requirements)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

// HandleDetails returns the project-with-author view.
//
// HTTP: GET /api/projects/{projectID}
func (h *ProjectHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	details, err := h.projects.Details(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

type joinProjectRequest struct {
	UserID string `json:"user_id"`
}

// HandleJoin registers the user on the project's team.
//
// HTTP: POST /api/projects/{projectID}/join
// 404 unknown project, 409 when already collaborating.
func (h *ProjectHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	id, err := projectIDParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req joinProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	collab, err := h.projects.Join(r.Context(), req.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, collab)
}
