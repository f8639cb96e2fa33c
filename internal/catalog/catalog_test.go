package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphofolio/backend/internal/model"
)

func TestDefault_LoadsSeedProjects(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	p, ok := c.Get("2")
	require.True(t, ok)
	assert.Equal(t, "Google Cloud Analytics Dashboard", p.Title)
	assert.Equal(t, "Web", p.Category)
	assert.Equal(t, []string{"React", "TypeScript", "Google Cloud", "D3.js"}, p.Technologies)
	assert.Equal(t, "https://cloud.google.com", p.GoogleLink)
	assert.Empty(t, p.AppleLink)
}

func TestNew_RejectsDuplicateID(t *testing.T) {
	_, err := New([]model.Project{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNew_RejectsMissingID(t *testing.T) {
	_, err := New([]model.Project{{ID: "  ", Title: "nameless"}})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestProjects_ReturnsCopy(t *testing.T) {
	c, err := New([]model.Project{{ID: "a", Title: "A"}})
	require.NoError(t, err)

	got := c.Projects()
	got[0].Title = "changed"

	p, _ := c.Get("a")
	assert.Equal(t, "A", p.Title)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	data := []byte("- id: x\n  title: X\n  category: Web\n  technologies: [Go]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	p, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, []string{"Go"}, p.Technologies)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
