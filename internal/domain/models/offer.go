package models

import "time"

// Stored offer lifecycle states. "expired" is a derived read-time view
// (pending + valid_until elapsed), never written to storage.
const (
	OfferPending        = "pending"
	OfferAccepted       = "accepted"
	OfferRejected       = "rejected"
	OfferCounterOffered = "counter_offered"
	OfferExpired        = "expired"
)

// Offer is a vendor's priced bid against a trip request. Money fields
// are integer minor currency units.
type Offer struct {
	ID              int64            `json:"id"`
	TripRequestID   int64            `json:"trip_request_id"`
	VendorID        int64            `json:"vendor_id"`
	ProposedPrice   int64            `json:"proposed_price"`
	PriceBreakdown  map[string]int64 `json:"price_breakdown,omitempty"`
	Message         string           `json:"message"`
	VendorRating    *float64         `json:"vendor_rating,omitempty"`
	Status          string           `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	ValidUntil      time.Time        `json:"valid_until"`
	CreatedAt       time.Time        `json:"created_at"`
	AcceptedAt      *time.Time       `json:"accepted_at,omitempty"`
	RejectedAt      *time.Time       `json:"rejected_at,omitempty"`
}

// Rating returns the vendor rating with the missing-rating default of 0.
func (o Offer) Rating() float64 {
	if o.VendorRating == nil {
		return 0
	}
	return *o.VendorRating
}
