package models

import "time"

// SavedOffer bookmarks an offer for a user. The (UserID, OfferID) pair
// is the primary key; saving again refreshes SavedAt.
type SavedOffer struct {
	UserID  int64     `json:"user_id"`
	OfferID int64     `json:"offer_id"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedOfferView joins a bookmark with the current offer and trip
// request state for display.
type SavedOfferView struct {
	SavedAt     time.Time   `json:"saved_at"`
	Offer       Offer       `json:"offer"`
	TripRequest TripRequest `json:"trip_request"`
}

// OfferShare is one append-only share event; repeat shares to the same
// group are recorded as distinct events.
type OfferShare struct {
	ID       string    `json:"id"`
	OfferID  int64     `json:"offer_id"`
	GroupID  int64     `json:"group_id"`
	Message  string    `json:"message,omitempty"`
	SharedAt time.Time `json:"shared_at"`
}
