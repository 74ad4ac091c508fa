// Package store keeps the opaque film snapshots between sessions. It never
// looks inside a snapshot.
package store

import (
	"context"
	"errors"
	"fmt"
)

type Kind string

const (
	KindCatalog    Kind = "films"
	KindFavourites Kind = "films_fav"
)

var ErrUnknownKind = errors.New("unknown snapshot kind")

// SnapshotStore saves and loads snapshot blobs per session. Load returns a
// nil blob and no error when nothing has been saved.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string, kind Kind) (*string, error)
	Save(ctx context.Context, sessionID string, kind Kind, blob string) error
	Delete(ctx context.Context, sessionID string) error
}

func (k Kind) validate() error {
	switch k {
	case KindCatalog, KindFavourites:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}
