package model

import "time"

// SampleItem is one concrete variation of a production item at a production
// stage. The tuple (production item, stage, color, size, revision) is unique;
// empty color/size count as distinct variant values in that tuple.
type SampleItem struct {
	ID               string    `json:"id"`
	ProductionItemID string    `json:"production_item_id"`
	Stage            string    `json:"stage"`
	Color            string    `json:"color,omitempty"`
	Size             string    `json:"size,omitempty"`
	Revision         string    `json:"revision"`
	Notes            string    `json:"notes,omitempty"`
	ImageURLs        []string  `json:"image_urls,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VariantLabel returns a human-readable description of the variation tuple,
// used in conflict error messages.
func (s *SampleItem) VariantLabel() string {
	color := s.Color
	if color == "" {
		color = "no color"
	}
	size := s.Size
	if size == "" {
		size = "no size"
	}
	return s.Stage + " / " + color + " / " + size + " / rev " + s.Revision
}

// VariationSpec describes one sample variation in a batch creation call.
// InitialQuantity > 0 creates that many AVAILABLE inventory units at Location.
type VariationSpec struct {
	Stage           string `json:"stage"`
	Color           string `json:"color,omitempty"`
	Size            string `json:"size,omitempty"`
	Revision        string `json:"revision"`
	Notes           string `json:"notes,omitempty"`
	InitialQuantity int    `json:"initial_quantity,omitempty"`
	Location        string `json:"location,omitempty"`
}
