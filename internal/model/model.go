package model

import "time"

// DonationSnapshot is one recorded state of the donation counter. Snapshots
// are append-only; the current value is the one with the newest RecordedAt.
type DonationSnapshot struct {
	ID                int64     `json:"-"`
	FamiliesSupported int       `json:"familiesSupported"`
	LastUpdated       string    `json:"lastUpdated"`
	RecordedAt        time.Time `json:"recordedAt"`
}

// GalleryPhoto represents one gallery entry. URL and Date are opaque display
// strings, the server never fetches or parses them.
type GalleryPhoto struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event types pushed over the WebSocket channel.
const (
	EventDonationUpdate = "donation-update"
	EventGalleryUpdate  = "gallery-update"
)

// Gallery change actions carried inside a gallery-update event.
const (
	ActionAdd    = "add"
	ActionDelete = "delete"
)

// Event is used for WebSocket change notifications.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// GalleryChange is the payload of a gallery-update event. Photo is set for
// adds, ID for deletes.
type GalleryChange struct {
	Action string        `json:"action"`
	Photo  *GalleryPhoto `json:"photo,omitempty"`
	ID     string        `json:"id,omitempty"`
}
