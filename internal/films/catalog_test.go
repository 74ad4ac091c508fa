package films

import (
	"testing"

	"filmapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogWithoutSnapshot(t *testing.T) {
	films, err := LoadCatalog(nil)
	require.NoError(t, err)
	require.Len(t, films, 3)

	assert.Equal(t, 1, films[0].ID)
	assert.Equal(t, "Batman", films[0].Title)
	assert.Equal(t, 2, films[1].ID)
	assert.Equal(t, "Iron man 3", films[1].Title)
	assert.Equal(t, 3, films[2].ID)
	assert.Equal(t, "Doctor Strange in the Multiverse of Madness", films[2].Title)

	for _, f := range films {
		assert.False(t, f.Liked)
	}
}

func TestDefaultCatalogIsDeterministic(t *testing.T) {
	first := DefaultCatalog()
	first[0].Title = "changed"

	assert.Equal(t, "Batman", DefaultCatalog()[0].Title)
	assert.Equal(t, DefaultCatalog(), DefaultCatalog())
}

func TestLoadCatalogFromSnapshot(t *testing.T) {
	want := []models.Film{{ID: 9, Title: "Heat", ImageRef: "heat", Description: "LA", Liked: true}}
	text, err := Encode(want)
	require.NoError(t, err)

	got, err := LoadCatalog(&text)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCatalogMalformed(t *testing.T) {
	text := "not valid encoded text"
	got, err := LoadCatalog(&text)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Nil(t, got)
}

func TestFindFilm(t *testing.T) {
	catalog := DefaultCatalog()

	film, ok := FindFilm(catalog, 2)
	require.True(t, ok)
	assert.Equal(t, "Iron man 3", film.Title)

	_, ok = FindFilm(catalog, 99)
	assert.False(t, ok)
}
