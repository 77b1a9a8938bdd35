package model

import "time"

// Contact is a phonebook entry.
// This is a pure domain model with no database-specific dependencies or tags.
// ID is opaque: each store decides its format and assigns it on creation.
type Contact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Snapshot describes a JSON export of the phonebook kept in object storage.
type Snapshot struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
