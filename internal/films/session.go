package films

import (
	"fmt"

	"filmapp/internal/models"

	"github.com/sirupsen/logrus"
)

// Gateway is the only surface presentation code uses to read films and
// change favourites.
type Gateway interface {
	AddToFavourites(film models.Film)
	RemoveFromFavourites(film models.Film)
	CheckIfInFavourites(film models.Film) bool
	Films() []models.Film
	Favourites() []models.Film
}

// Session holds the catalog and favourites restored for one run of the host
// UI. Catalog and favourites are stored independently and may diverge.
type Session struct {
	catalog    []models.Film
	favourites *Favourites
	logger     *logrus.Logger
}

var _ Gateway = (*Session)(nil)

// Start restores a session from the two snapshots handed back by the host.
// A nil snapshot means nothing was saved. A snapshot that fails to decode is
// logged and replaced by the default for its kind, so Start never fails.
func Start(catalogSnap, favouritesSnap *string, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}

	catalog, err := LoadCatalog(catalogSnap)
	if err != nil {
		logger.WithError(err).Warn("Discarding catalog snapshot, using default films")
		catalog = DefaultCatalog()
	}

	favourites, err := LoadFavourites(favouritesSnap)
	if err != nil {
		logger.WithError(err).Warn("Discarding favourites snapshot, starting empty")
		favourites = NewFavourites()
	}

	logger.WithFields(logrus.Fields{
		"films":      len(catalog),
		"favourites": favourites.Len(),
	}).Debug("Session started")

	return &Session{
		catalog:    catalog,
		favourites: favourites,
		logger:     logger,
	}
}

func (s *Session) AddToFavourites(film models.Film) {
	s.favourites.Add(film)
}

func (s *Session) RemoveFromFavourites(film models.Film) {
	s.favourites.Remove(film)
}

func (s *Session) CheckIfInFavourites(film models.Film) bool {
	return s.favourites.Contains(film)
}

func (s *Session) Films() []models.Film {
	out := make([]models.Film, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Session) Favourites() []models.Film {
	return s.favourites.Films()
}

// ReplaceFavourites swaps the whole favourites set for the one encoded in
// snapshot. On a decode error the current set is left untouched.
func (s *Session) ReplaceFavourites(snapshot string) error {
	favourites, err := LoadFavourites(&snapshot)
	if err != nil {
		return err
	}
	s.favourites = favourites
	return nil
}

// Teardown encodes the catalog and favourites as two independent snapshots.
func (s *Session) Teardown() (catalog string, favourites string, err error) {
	catalog, err = Encode(s.catalog)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	favourites, err = s.favourites.ToSnapshot()
	if err != nil {
		return "", "", fmt.Errorf("failed to encode favourites: %w", err)
	}
	return catalog, favourites, nil
}
