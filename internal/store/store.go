// Package store persists donation snapshots and gallery photos. Snapshots
// are append-only: every accepted update inserts a new row and the current
// value is the row with the newest recorded_at (ties broken by insertion
// order), never an in-place update.
package store

import (
	"context"
	"errors"

	"sadaka/internal/model"
)

// ErrNoSnapshot is returned by LatestDonation when no snapshot has been
// recorded yet so callers can lazily create the default.
var ErrNoSnapshot = errors.New("no donation snapshot recorded")

// Store is the durable record store behind the services.
type Store interface {
	// LatestDonation returns the current snapshot or ErrNoSnapshot.
	LatestDonation(ctx context.Context) (model.DonationSnapshot, error)

	// AppendDonation records a new snapshot and returns it as stored.
	AppendDonation(ctx context.Context, familiesSupported int, lastUpdated string) (model.DonationSnapshot, error)

	// EnsureDonation inserts the zero default only if no snapshot exists
	// yet, then returns the latest. Safe to call concurrently: at most one
	// default row is ever created.
	EnsureDonation(ctx context.Context, lastUpdated string) (model.DonationSnapshot, error)

	// ListPhotos returns all gallery photos, newest createdAt first.
	ListPhotos(ctx context.Context) ([]model.GalleryPhoto, error)

	// AddPhoto stores a new gallery photo.
	AddPhoto(ctx context.Context, photo model.GalleryPhoto) error

	// DeletePhoto removes the photo with the given id. Deleting an absent
	// id is a no-op, not an error.
	DeletePhoto(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
