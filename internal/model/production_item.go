package model

import "time"

// ProductionItem is a sellable product design. It owns sample items; deleting
// it cascades to its sample items and transitively to their inventory units,
// requests and comments.
type ProductionItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
