// Package gallery persists named compositions.
//
// A gallery entry pairs a user-chosen name with a full composition
// snapshot, so a kept piece can be listed, reloaded, and re-rendered long
// after the session that produced it. The Store interface has two
// implementations:
//   - file: JSON files in a local directory, for CLI use
//   - mongo: a MongoDB collection, for server deployments
//
// # Usage
//
//	store, err := gallery.NewFileStore("")  // Uses ~/.local/share/tanglemap/gallery/
//	if err != nil {
//	    return err
//	}
//	entry := gallery.NewEntry("sunset-study", snap)
//	if err := store.Put(ctx, entry); err != nil {
//	    return err
//	}
package gallery

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pixelczar/tangle-map/pkg/composition"
	"github.com/pixelczar/tangle-map/pkg/errors"
)

// Entry is one saved composition.
type Entry struct {
	ID        string                `json:"id" bson:"_id"`
	Name      string                `json:"name" bson:"name"`
	Snapshot  *composition.Snapshot `json:"snapshot" bson:"snapshot"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
}

// NewEntry creates an entry with a fresh ID and the current time.
func NewEntry(name string, snap *composition.Snapshot) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Snapshot:  snap,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the entry before persisting.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "entry ID cannot be empty")
	}
	if err := errors.ValidateGalleryName(e.Name); err != nil {
		return err
	}
	if e.Snapshot == nil {
		return errors.New(errors.ErrCodeInvalidInput, "entry snapshot cannot be nil")
	}
	return nil
}

// Store persists gallery entries.
type Store interface {
	// Put saves an entry, replacing any existing entry with the same ID.
	Put(ctx context.Context, entry *Entry) error

	// Get returns the entry with the given ID, or an ENTRY_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Entry, error)

	// List returns all entries ordered by creation time, newest first.
	// Snapshots are included; callers listing large galleries should page
	// with limit (0 means no limit).
	List(ctx context.Context, limit int) ([]*Entry, error)

	// Delete removes the entry with the given ID. Deleting a missing
	// entry is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
