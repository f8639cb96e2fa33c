// Package gallery derives the visible project list from the active filter selection.
package gallery

import (
	"sort"

	"github.com/morphofolio/backend/internal/model"
)

// AllCategory is the sentinel category that clears the category selection.
const AllCategory = "All"

// Selection holds the categories and technologies picked in the gallery.
// An empty set matches every project.
type Selection struct {
	Categories   []string `json:"categories"`
	Technologies []string `json:"technologies"`
}

// NewSelection builds a selection from raw values, dropping duplicates.
// Any occurrence of AllCategory clears the category set.
func NewSelection(categories, technologies []string) Selection {
	var s Selection
	for _, c := range categories {
		if c == AllCategory {
			s.Categories = nil
			break
		}
		if !contains(s.Categories, c) {
			s.Categories = append(s.Categories, c)
		}
	}
	for _, t := range technologies {
		if !contains(s.Technologies, t) {
			s.Technologies = append(s.Technologies, t)
		}
	}
	return s
}

// Active reports whether any filter is set.
func (s Selection) Active() bool {
	return len(s.Categories) > 0 || len(s.Technologies) > 0
}

// ToggleCategory adds or removes category. AllCategory empties the set.
func (s Selection) ToggleCategory(category string) Selection {
	if category == AllCategory {
		return Selection{Technologies: s.Technologies}
	}
	return Selection{
		Categories:   toggle(s.Categories, category),
		Technologies: s.Technologies,
	}
}

// ToggleTechnology adds or removes technology.
func (s Selection) ToggleTechnology(technology string) Selection {
	return Selection{
		Categories:   s.Categories,
		Technologies: toggle(s.Technologies, technology),
	}
}

// Clear drops every filter.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Filter returns the projects matching every active predicate, in input order.
// Categories match by membership; technologies match on any overlap.
func Filter(projects []model.Project, sel Selection) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if matchCategory(p, sel.Categories) && matchTechnology(p, sel.Technologies) {
			out = append(out, p)
		}
	}
	return out
}

func matchCategory(p model.Project, categories []string) bool {
	return len(categories) == 0 || contains(categories, p.Category)
}

func matchTechnology(p model.Project, technologies []string) bool {
	if len(technologies) == 0 {
		return true
	}
	for _, t := range technologies {
		if p.HasTechnology(t) {
			return true
		}
	}
	return false
}

// Facets lists the values available to the filter controls.
type Facets struct {
	Categories   []string `json:"categories"`
	Technologies []string `json:"technologies"`
}

// DeriveFacets collects distinct categories in first-seen order, led by AllCategory,
// and distinct technologies sorted ascending.
func DeriveFacets(projects []model.Project) Facets {
	f := Facets{
		Categories:   []string{AllCategory},
		Technologies: []string{},
	}
	seenCat := make(map[string]struct{})
	seenTech := make(map[string]struct{})
	for _, p := range projects {
		if _, ok := seenCat[p.Category]; !ok {
			seenCat[p.Category] = struct{}{}
			f.Categories = append(f.Categories, p.Category)
		}
		for _, t := range p.Technologies {
			if _, ok := seenTech[t]; !ok {
				seenTech[t] = struct{}{}
				f.Technologies = append(f.Technologies, t)
			}
		}
	}
	sort.Strings(f.Technologies)
	return f
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// toggle returns a new slice with v removed if present, appended otherwise.
func toggle(values []string, v string) []string {
	out := make([]string, 0, len(values)+1)
	found := false
	for _, x := range values {
		if x == v {
			found = true
			continue
		}
		out = append(out, x)
	}
	if !found {
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
