package domain

import "time"

// PageRecord describes a live page and the engine bound to its container.
type PageRecord struct {
	ID        string    `json:"id"`
	Container string    `json:"container"`
	Algorithm string    `json:"algorithm"`
	Debug     bool      `json:"debug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
