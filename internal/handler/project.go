package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dvloasia/pagehost/internal/middleware"
	"github.com/dvloasia/pagehost/internal/site"
	"github.com/go-chi/chi/v5"
)

// ProjectHandler handles project CRUD and file listing.
type ProjectHandler struct {
	site *site.Service
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(site *site.Service) *ProjectHandler {
	return &ProjectHandler{site: site}
}

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Create creates a new project and its storage directory.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	user := middleware.GetUser(r.Context())
	project, err := h.site.CreateProject(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// List lists the authenticated user's projects, newest first.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	projects, err := h.site.ListProjects(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"count":    len(projects),
	})
}

// Get retrieves one of the authenticated user's projects by id.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	project, err := h.site.GetProject(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete removes a project's storage directory and catalog row.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if err := h.site.DeleteProject(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Files lists the stored files of a project.
func (h *ProjectHandler) Files(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	files, err := h.site.ListFiles(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"files": files,
		"count": len(files),
	})
}
