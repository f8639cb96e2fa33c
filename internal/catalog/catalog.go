// Package catalog loads the fixed collection of portfolio projects.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/morphofolio/backend/internal/model"
)

var (
	// ErrMissingID is returned when a catalog entry has no identifier.
	ErrMissingID = errors.New("catalog: project without id")
	// ErrDuplicateID is returned when two catalog entries share an identifier.
	ErrDuplicateID = errors.New("catalog: duplicate project id")
)

//go:embed projects.yaml
var seed []byte

// Catalog is an immutable, ordered set of projects.
type Catalog struct {
	projects []model.Project
	byID     map[string]int
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// Load reads a YAML catalog from path. An empty path returns the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of projects and checks identifier uniqueness.
func Parse(data []byte) (*Catalog, error) {
	var projects []model.Project
	if err := yaml.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return New(projects)
}

// New builds a catalog from projects, preserving their order.
func New(projects []model.Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]model.Project, 0, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrMissingID, i)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		p.ID = id
		p.Technologies = append([]string(nil), p.Technologies...)
		c.byID[id] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// Projects returns a copy of every project in catalog order.
func (c *Catalog) Projects() []model.Project {
	out := make([]model.Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Get returns the project with the given id.
func (c *Catalog) Get(id string) (model.Project, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Project{}, false
	}
	return c.projects[i], true
}

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }
