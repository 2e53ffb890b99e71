package models

import "time"

// Trip request lifecycle states.
const (
	TripRequestOpen      = "open"
	TripRequestAccepted  = "accepted"
	TripRequestCancelled = "cancelled"
	TripRequestExpired   = "expired"
)

// TripRequest is a traveler's posted need for a trip, against which
// vendors bid. SelectedVendorID is set only when Status is accepted.
type TripRequest struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Destination      string    `json:"destination"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	GroupSize        int       `json:"group_size"`
	Budget           int64     `json:"budget"` // minor currency units
	Status           string    `json:"status"`
	SelectedVendorID int64     `json:"selected_vendor_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
