package model

import "time"

// Team is a requester of samples. A team with at least one sample request
// cannot be deleted.
type Team struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	IsInternal      bool      `json:"is_internal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
