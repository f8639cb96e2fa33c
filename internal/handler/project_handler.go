package handler

import (
	"net/http"

	"github.com/morphofolio/backend/internal/gallery"
	"github.com/morphofolio/backend/internal/model"
)

// ProjectCatalog is the read side of the project catalog.
type ProjectCatalog interface {
	Projects() []model.Project
	Get(id string) (model.Project, bool)
}

// ProjectHandler serves the public project gallery.
type ProjectHandler struct {
	catalog ProjectCatalog
}

func NewProjectHandler(catalog ProjectCatalog) *ProjectHandler {
	return &ProjectHandler{catalog: catalog}
}

// List handles GET /api/projects.
// category and technology may repeat; category=All clears the category set.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := gallery.NewSelection(q["category"], q["technology"])
	writeJSON(w, http.StatusOK, gallery.Compose(h.catalog.Projects(), sel))
}

// Facets handles GET /api/projects/facets.
func (h *ProjectHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gallery.DeriveFacets(h.catalog.Projects()))
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "project_not_found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
