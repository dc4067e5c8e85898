package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sadaka/internal/model"
	"sadaka/internal/store"
)

// defaultUpdatedLayout formats the lastUpdated string of the lazily created
// first snapshot, e.g. "12 Jan 2026".
const defaultUpdatedLayout = "2 Jan 2006"

// HealthStatus is the GET /health response.
type HealthStatus struct {
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
	StorageConnected bool      `json:"storageConnected"`
}

// Query serves reads for clients that are not connected live (initial page
// load or reconnect).
type Query struct {
	store  store.Store
	initMu sync.Mutex
}

// NewQuery wires the read path.
func NewQuery(st store.Store) *Query {
	return &Query{store: st}
}

// Donation returns the current snapshot. On an empty store it creates the
// zero default exactly once, even under concurrent first reads: the mutex
// serializes this process and the store's EnsureDonation is an atomic
// insert-if-absent for anything else writing to the same tables.
func (q *Query) Donation(ctx context.Context) (model.DonationSnapshot, error) {
	snap, err := q.store.LatestDonation(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, store.ErrNoSnapshot) {
		return model.DonationSnapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	q.initMu.Lock()
	defer q.initMu.Unlock()

	// Another caller may have initialized while we waited for the lock.
	snap, err = q.store.LatestDonation(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, store.ErrNoSnapshot) {
		return model.DonationSnapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	snap, err = q.store.EnsureDonation(ctx, time.Now().Format(defaultUpdatedLayout))
	if err != nil {
		return model.DonationSnapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return snap, nil
}

// Photos returns the whole gallery, newest first.
func (q *Query) Photos(ctx context.Context) ([]model.GalleryPhoto, error) {
	photos, err := q.store.ListPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return photos, nil
}

// Health reports store connectivity. It never fails: an unreachable store
// is reported, not propagated.
func (q *Query) Health(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:           "ok",
		Timestamp:        time.Now(),
		StorageConnected: true,
	}
	if err := q.store.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.StorageConnected = false
	}
	return status
}
