package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifiedai/internal/models"
)

func TestToggleTwiceIsIdentity(t *testing.T) {
	var s Selection
	s.Toggle(models.SelectedModel{ID: "a", Name: "A"})
	s.Toggle(models.SelectedModel{ID: "b", Name: "B"})
	before := s.Items()

	for _, m := range before {
		assert.False(t, s.Toggle(m))
		assert.True(t, s.Toggle(m))
		assert.ElementsMatch(t, before, s.Items(), "toggling %s twice", m.ID)
	}

	absent := models.SelectedModel{ID: "c", Name: "C"}
	assert.True(t, s.Toggle(absent))
	assert.False(t, s.Toggle(absent))
	assert.ElementsMatch(t, before, s.Items())
	assert.False(t, s.Contains("c"))
}

func TestToggleKeepsIDsUnique(t *testing.T) {
	var s Selection
	assert.True(t, s.Toggle(models.SelectedModel{ID: "a"}))
	assert.False(t, s.Toggle(models.SelectedModel{ID: "a"}))
	assert.True(t, s.Toggle(models.SelectedModel{ID: "a"}))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
}

func TestItemsIsACopy(t *testing.T) {
	var s Selection
	s.Toggle(models.SelectedModel{ID: "a"})
	s.Toggle(models.SelectedModel{ID: "b"})
	items := s.Items()
	s.Toggle(models.SelectedModel{ID: "a"})
	assert.Equal(t, models.ID("a"), items[0].ID)
	assert.Equal(t, []models.ID{"b"}, s.IDs())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestCatalogLookupPrecondition(t *testing.T) {
	var c Catalog
	_, _, err := c.Lookup("gemini")
	require.ErrorIs(t, err, ErrCatalogNotLoaded)
	assert.Equal(t, "gemini", c.DisplayName("gemini"))

	c.SetLoading()
	assert.Equal(t, CatalogLoading, c.State())
	_, _, err = c.Lookup("gemini")
	require.ErrorIs(t, err, ErrCatalogNotLoaded)

	c.SetModels(testCatalog)
	m, ok, err := c.Lookup("1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Gemini", m.Name)
	_, ok, err = c.Lookup("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogError(t *testing.T) {
	var c Catalog
	c.SetError(assert.AnError)
	assert.Equal(t, CatalogFailed, c.State())
	assert.Equal(t, assert.AnError, c.Err())
	assert.Empty(t, c.Models())
}
