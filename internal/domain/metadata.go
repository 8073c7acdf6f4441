package domain

import "time"

// Metadata carries store-assigned document fields shared by every entity.
// The repository layer owns these values; services never set them.
type Metadata struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
