// Package service implements the write and read paths between the HTTP
// handlers and the store. Writes persist first and broadcast after, so a
// pushed event always refers to durably committed data.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sadaka/internal/auth"
	"sadaka/internal/model"
	"sadaka/internal/store"
)

// Broadcaster is the push side of the Mutation service. Satisfied by
// *hub.Hub; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(event model.Event)
}

// Mutation validates and persists writes, then notifies live clients.
type Mutation struct {
	store  store.Store
	guard  auth.Guard
	events Broadcaster
}

// NewMutation wires the write path.
func NewMutation(st store.Store, guard auth.Guard, events Broadcaster) *Mutation {
	return &Mutation{store: st, guard: guard, events: events}
}

// UpdateDonation records a new donation snapshot and pushes it to live
// clients. The broadcast fires only after the snapshot is durably stored.
func (m *Mutation) UpdateDonation(ctx context.Context, credential string, familiesSupported int, lastUpdated string) (model.DonationSnapshot, error) {
	if !m.guard.Check(credential) {
		return model.DonationSnapshot{}, ErrUnauthorized
	}
	if familiesSupported < 0 {
		return model.DonationSnapshot{}, fmt.Errorf("%w: familiesSupported must be a non-negative integer", ErrInvalidInput)
	}
	if lastUpdated == "" {
		return model.DonationSnapshot{}, fmt.Errorf("%w: lastUpdated is required", ErrInvalidInput)
	}

	snap, err := m.store.AppendDonation(ctx, familiesSupported, lastUpdated)
	if err != nil {
		return model.DonationSnapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	m.events.Broadcast(model.Event{Type: model.EventDonationUpdate, Data: snap})

	return snap, nil
}

// AddPhoto stores a new gallery photo under a fresh id and pushes the full
// entry to live clients.
func (m *Mutation) AddPhoto(ctx context.Context, credential, url, caption, date string) (model.GalleryPhoto, error) {
	if !m.guard.Check(credential) {
		return model.GalleryPhoto{}, ErrUnauthorized
	}
	if url == "" {
		return model.GalleryPhoto{}, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	photo := model.GalleryPhoto{
		ID:        uuid.NewString(),
		URL:       url,
		Caption:   caption,
		Date:      date,
		CreatedAt: time.Now(),
	}

	if err := m.store.AddPhoto(ctx, photo); err != nil {
		return model.GalleryPhoto{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	m.events.Broadcast(model.Event{
		Type: model.EventGalleryUpdate,
		Data: model.GalleryChange{Action: model.ActionAdd, Photo: &photo},
	})

	return photo, nil
}

// DeletePhoto removes a gallery photo. Deleting an id that does not exist
// succeeds (idempotent); the delete event is pushed either way so clients
// converge on the same gallery.
func (m *Mutation) DeletePhoto(ctx context.Context, credential, id string) error {
	if !m.guard.Check(credential) {
		return ErrUnauthorized
	}

	if err := m.store.DeletePhoto(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	m.events.Broadcast(model.Event{
		Type: model.EventGalleryUpdate,
		Data: model.GalleryChange{Action: model.ActionDelete, ID: id},
	})

	return nil
}
