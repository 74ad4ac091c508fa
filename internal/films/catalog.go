package films

import "filmapp/internal/models"

// DefaultCatalog returns the seed used when no catalog snapshot exists.
func DefaultCatalog() []models.Film {
	return []models.Film{
		{
			ID:          1,
			Title:       "Batman",
			ImageRef:    "batman",
			Description: "Film about batman",
		},
		{
			ID:          2,
			Title:       "Iron man 3",
			ImageRef:    "iron_man",
			Description: "Film about Iron man 3",
		},
		{
			ID:          3,
			Title:       "Doctor Strange in the Multiverse of Madness",
			ImageRef:    "multiverse_of_madness",
			Description: "Doctor Strange in the Multiverse of Madness film",
		},
	}
}

// LoadCatalog decodes snapshot, or returns the default seed when snapshot is
// nil. A malformed snapshot yields an error wrapping ErrDecode and no films.
func LoadCatalog(snapshot *string) ([]models.Film, error) {
	if snapshot == nil {
		return DefaultCatalog(), nil
	}
	return Decode(*snapshot)
}

func FindFilm(films []models.Film, id int) (models.Film, bool) {
	for _, f := range films {
		if f.ID == id {
			return f, true
		}
	}
	return models.Film{}, false
}
