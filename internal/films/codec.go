package films

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"filmapp/internal/models"
)

var ErrDecode = errors.New("malformed film snapshot")

// filmRecord mirrors models.Film with pointer fields so absent keys can be
// told apart from zero values.
type filmRecord struct {
	ID          *int    `json:"id"`
	Title       *string `json:"title"`
	ImageRef    *string `json:"imageRef"`
	Description *string `json:"description"`
	Liked       *bool   `json:"liked"`
}

// Encode serializes films as a JSON array, preserving order.
func Encode(films []models.Film) (string, error) {
	if films == nil {
		films = []models.Film{}
	}

	data, err := json.Marshal(films)
	if err != nil {
		return "", fmt.Errorf("failed to encode films: %w", err)
	}
	return string(data), nil
}

// Decode is the inverse of Encode. Every error it returns wraps ErrDecode.
func Decode(text string) ([]models.Film, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var records []*filmRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expected an array of films", ErrDecode)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after film array", ErrDecode)
	}

	films := make([]models.Film, 0, len(records))
	for i, r := range records {
		film, err := r.toFilm()
		if err != nil {
			return nil, fmt.Errorf("%w: film %d: %v", ErrDecode, i, err)
		}
		films = append(films, film)
	}
	return films, nil
}

func (r *filmRecord) toFilm() (models.Film, error) {
	switch {
	case r == nil:
		return models.Film{}, errors.New("null entry")
	case r.ID == nil:
		return models.Film{}, errors.New("missing field id")
	case r.Title == nil:
		return models.Film{}, errors.New("missing field title")
	case r.ImageRef == nil:
		return models.Film{}, errors.New("missing field imageRef")
	case r.Description == nil:
		return models.Film{}, errors.New("missing field description")
	case r.Liked == nil:
		return models.Film{}, errors.New("missing field liked")
	}

	return models.Film{
		ID:          *r.ID,
		Title:       *r.Title,
		ImageRef:    *r.ImageRef,
		Description: *r.Description,
		Liked:       *r.Liked,
	}, nil
}
