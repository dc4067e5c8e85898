package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sadaka/internal/model"
)

const (
	latestDonationQuery = "SELECT id, families_supported, last_updated, recorded_at FROM donation_snapshots ORDER BY recorded_at DESC, id DESC LIMIT 1"
	appendDonationQuery = "INSERT INTO donation_snapshots (families_supported, last_updated, recorded_at) VALUES (?, ?, ?)"
	// Atomic insert-if-absent so two concurrent first reads cannot both
	// create the default row.
	ensureDonationQuery = "INSERT INTO donation_snapshots (families_supported, last_updated, recorded_at) SELECT 0, ?, ? FROM DUAL WHERE NOT EXISTS (SELECT 1 FROM donation_snapshots)"
	listPhotosQuery     = "SELECT id, url, caption, date, created_at FROM gallery_photos ORDER BY created_at DESC, id DESC"
	addPhotoQuery       = "INSERT INTO gallery_photos (id, url, caption, date, created_at) VALUES (?, ?, ?, ?, ?)"
	deletePhotoQuery    = "DELETE FROM gallery_photos WHERE id = ?"
)

// MySQL implements Store on top of a *sql.DB opened by internal/database.
type MySQL struct {
	db *sql.DB
}

// NewMySQL wraps an open database handle.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

func (s *MySQL) LatestDonation(ctx context.Context) (model.DonationSnapshot, error) {
	var snap model.DonationSnapshot
	err := s.db.QueryRowContext(ctx, latestDonationQuery).
		Scan(&snap.ID, &snap.FamiliesSupported, &snap.LastUpdated, &snap.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DonationSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return model.DonationSnapshot{}, err
	}
	return snap, nil
}

func (s *MySQL) AppendDonation(ctx context.Context, familiesSupported int, lastUpdated string) (model.DonationSnapshot, error) {
	snap := model.DonationSnapshot{
		FamiliesSupported: familiesSupported,
		LastUpdated:       lastUpdated,
		RecordedAt:        time.Now(),
	}

	result, err := s.db.ExecContext(ctx, appendDonationQuery,
		snap.FamiliesSupported, snap.LastUpdated, snap.RecordedAt)
	if err != nil {
		return model.DonationSnapshot{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.DonationSnapshot{}, err
	}
	snap.ID = id

	return snap, nil
}

func (s *MySQL) EnsureDonation(ctx context.Context, lastUpdated string) (model.DonationSnapshot, error) {
	if _, err := s.db.ExecContext(ctx, ensureDonationQuery, lastUpdated, time.Now()); err != nil {
		return model.DonationSnapshot{}, err
	}
	return s.LatestDonation(ctx)
}

func (s *MySQL) ListPhotos(ctx context.Context) ([]model.GalleryPhoto, error) {
	rows, err := s.db.QueryContext(ctx, listPhotosQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []model.GalleryPhoto
	for rows.Next() {
		var photo model.GalleryPhoto
		var caption, date sql.NullString
		if err := rows.Scan(&photo.ID, &photo.URL, &caption, &date, &photo.CreatedAt); err != nil {
			return nil, err
		}
		photo.Caption = caption.String
		photo.Date = date.String
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

func (s *MySQL) AddPhoto(ctx context.Context, photo model.GalleryPhoto) error {
	_, err := s.db.ExecContext(ctx, addPhotoQuery,
		photo.ID, photo.URL, photo.Caption, photo.Date, photo.CreatedAt)
	return err
}

func (s *MySQL) DeletePhoto(ctx context.Context, id string) error {
	// Zero rows affected means the id was already gone, which is fine.
	_, err := s.db.ExecContext(ctx, deletePhotoQuery, id)
	return err
}

func (s *MySQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
