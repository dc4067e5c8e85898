package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"sadaka/internal/model"
)

// Memory is an in-memory Store. It backs the server when no database is
// configured and keeps the tests independent of a running MySQL. Data does
// not survive restarts.
type Memory struct {
	mu        sync.Mutex
	snapshots []model.DonationSnapshot
	photos    []model.GalleryPhoto
	nextID    int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) LatestDonation(_ context.Context) (model.DonationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestLocked()
}

// latestLocked scans for max recorded_at, ties broken by insertion order.
func (m *Memory) latestLocked() (model.DonationSnapshot, error) {
	if len(m.snapshots) == 0 {
		return model.DonationSnapshot{}, ErrNoSnapshot
	}

	latest := m.snapshots[0]
	for _, snap := range m.snapshots[1:] {
		if !snap.RecordedAt.Before(latest.RecordedAt) {
			latest = snap
		}
	}
	return latest, nil
}

func (m *Memory) AppendDonation(_ context.Context, familiesSupported int, lastUpdated string) (model.DonationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := model.DonationSnapshot{
		ID:                m.nextID,
		FamiliesSupported: familiesSupported,
		LastUpdated:       lastUpdated,
		RecordedAt:        time.Now(),
	}
	m.nextID++
	m.snapshots = append(m.snapshots, snap)

	return snap, nil
}

func (m *Memory) EnsureDonation(_ context.Context, lastUpdated string) (model.DonationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.snapshots) == 0 {
		snap := model.DonationSnapshot{
			ID:          m.nextID,
			LastUpdated: lastUpdated,
			RecordedAt:  time.Now(),
		}
		m.nextID++
		m.snapshots = append(m.snapshots, snap)
	}

	return m.latestLocked()
}

func (m *Memory) ListPhotos(_ context.Context) ([]model.GalleryPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Reverse insertion order first so equal timestamps list the newest
	// addition at the head after the stable sort.
	photos := make([]model.GalleryPhoto, 0, len(m.photos))
	for i := len(m.photos) - 1; i >= 0; i-- {
		photos = append(photos, m.photos[i])
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})

	return photos, nil
}

func (m *Memory) AddPhoto(_ context.Context, photo model.GalleryPhoto) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = append(m.photos, photo)
	return nil
}

func (m *Memory) DeletePhoto(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, photo := range m.photos {
		if photo.ID == id {
			m.photos = append(m.photos[:i], m.photos[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

// SnapshotCount reports how many snapshots have been recorded.
func (m *Memory) SnapshotCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}

