package gallery

import "github.com/morphofolio/backend/internal/model"

// View is the assembled gallery: the visible projects plus what the
// filter controls need to render.
type View struct {
	Projects      []model.Project `json:"projects"`
	Facets        Facets          `json:"facets"`
	Selection     Selection       `json:"selection"`
	FiltersActive bool            `json:"filters_active"`
	Total         int             `json:"total"`
	Visible       int             `json:"visible"`
}

// Compose filters projects by sel and attaches the facets of the full set.
func Compose(projects []model.Project, sel Selection) View {
	visible := Filter(projects, sel)
	if sel.Categories == nil {
		sel.Categories = []string{}
	}
	if sel.Technologies == nil {
		sel.Technologies = []string{}
	}
	return View{
		Projects:      visible,
		Facets:        DeriveFacets(projects),
		Selection:     sel,
		FiltersActive: sel.Active(),
		Total:         len(projects),
		Visible:       len(visible),
	}
}
