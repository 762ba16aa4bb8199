package model

import "time"

// Sample request lifecycle statuses.
const (
	RequestRequested = "REQUESTED"
	RequestApproved  = "APPROVED"
	RequestShipped   = "SHIPPED"
	RequestHandedOff = "HANDED_OFF"
	RequestInUse     = "IN_USE"
	RequestReturned  = "RETURNED"
	RequestClosed    = "CLOSED"
)

// RequestStatuses lists all lifecycle statuses in lifecycle order.
var RequestStatuses = []string{
	RequestRequested, RequestApproved, RequestShipped,
	RequestHandedOff, RequestInUse, RequestReturned, RequestClosed,
}

// AllowedTransitions is the authoritative transition table for the request
// lifecycle. CLOSED is terminal and has no outgoing transitions.
var AllowedTransitions = map[string][]string{
	RequestRequested: {RequestApproved, RequestClosed},
	RequestApproved:  {RequestShipped, RequestHandedOff, RequestClosed},
	RequestShipped:   {RequestHandedOff, RequestInUse, RequestReturned, RequestClosed},
	RequestHandedOff: {RequestInUse, RequestReturned, RequestClosed},
	RequestInUse:     {RequestReturned, RequestClosed},
	RequestReturned:  {RequestClosed},
	RequestClosed:    {},
}

// ValidRequestStatus reports whether s is a known lifecycle status.
func ValidRequestStatus(s string) bool { return contains(RequestStatuses, s) }

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to string) bool {
	return contains(AllowedTransitions[from], to)
}

// SampleRequest is a team's claim on some quantity of a sample item. Each
// lifecycle timestamp is set the first time the request enters that status and
// never overwritten afterwards.
type SampleRequest struct {
	ID              string     `json:"id"`
	SampleItemID    string     `json:"sample_item_id"`
	TeamID          string     `json:"team_id"`
	Quantity        int        `json:"quantity"`
	Status          string     `json:"status"`
	ShippingMethod  string     `json:"shipping_method,omitempty"`
	ShippingAddress string     `json:"shipping_address,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	RequestedAt     time.Time  `json:"requested_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ShippedAt       *time.Time `json:"shipped_at,omitempty"`
	HandedOffAt     *time.Time `json:"handed_off_at,omitempty"`
	ReturnedAt      *time.Time `json:"returned_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StageTimestamp returns a pointer to the lifecycle timestamp field for the
// given status, or nil if the status has none (REQUESTED uses RequestedAt,
// assigned at creation).
func (r *SampleRequest) StageTimestamp(status string) **time.Time {
	switch status {
	case RequestApproved:
		return &r.ApprovedAt
	case RequestShipped:
		return &r.ShippedAt
	case RequestHandedOff:
		return &r.HandedOffAt
	case RequestReturned:
		return &r.ReturnedAt
	case RequestClosed:
		return &r.ClosedAt
	}
	return nil
}

// RequestStats is the aggregate view over all requests.
type RequestStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}
