package films

import "filmapp/internal/models"

// Favourites is an ordered set of films keyed by ID. It is not safe for
// concurrent use.
type Favourites struct {
	films []models.Film
}

// NewFavourites builds a set from films, keeping the first film seen for
// each ID.
func NewFavourites(films ...models.Film) *Favourites {
	f := &Favourites{films: make([]models.Film, 0, len(films))}
	for _, film := range films {
		f.Add(film)
	}
	return f
}

// LoadFavourites decodes snapshot, or returns an empty set when snapshot is
// nil.
func LoadFavourites(snapshot *string) (*Favourites, error) {
	if snapshot == nil {
		return NewFavourites(), nil
	}

	films, err := Decode(*snapshot)
	if err != nil {
		return nil, err
	}
	return NewFavourites(films...), nil
}

func (f *Favourites) Add(film models.Film) {
	if f.indexOf(film.ID) >= 0 {
		return
	}
	f.films = append(f.films, film)
}

func (f *Favourites) Remove(film models.Film) {
	i := f.indexOf(film.ID)
	if i < 0 {
		return
	}
	f.films = append(f.films[:i], f.films[i+1:]...)
}

func (f *Favourites) Contains(film models.Film) bool {
	return f.indexOf(film.ID) >= 0
}

func (f *Favourites) Len() int {
	return len(f.films)
}

// Films returns a copy of the set in insertion order.
func (f *Favourites) Films() []models.Film {
	out := make([]models.Film, len(f.films))
	copy(out, f.films)
	return out
}

func (f *Favourites) ToSnapshot() (string, error) {
	return Encode(f.films)
}

func (f *Favourites) indexOf(id int) int {
	for i, film := range f.films {
		if film.ID == id {
			return i
		}
	}
	return -1
}
