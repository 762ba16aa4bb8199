package model

import "time"

// InventoryUnit is one physical, individually trackable instance of a sample
// item. Inventory is modeled per unit, never as a quantity counter: status and
// location vary independently per physical item, so "available count" is
// always computed from unit statuses on read.
type InventoryUnit struct {
	ID           string    `json:"id"`
	SampleItemID string    `json:"sample_item_id"`
	Location     string    `json:"location,omitempty"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Availability is the aggregated view over a set of inventory units. It is
// derived at query time and never stored.
type Availability struct {
	TotalCount     int            `json:"total_count"`
	AvailableCount int            `json:"available_count"`
	ByStatus       map[string]int `json:"by_status"`
	Groups         LocationGroups `json:"groups"`
}

// LocationGroups nests units location → size → color → sample item id.
// The GroupNone key collects units with no value for that level.
type LocationGroups map[string]SizeGroups

// SizeGroups nests units by size within one location.
type SizeGroups map[string]ColorGroups

// ColorGroups nests units by color within one size.
type ColorGroups map[string]SampleGroups

// SampleGroups holds the ordered units of each sample item within one color.
type SampleGroups map[string][]InventoryUnit
