package models

import "time"

// Counter offer round states.
const (
	CounterPending  = "pending"
	CounterAccepted = "accepted"
	CounterRejected = "rejected"
)

// CounterOffer is a traveler-initiated price/terms revision referencing
// an existing offer. An offer accumulates counter rounds one-to-many,
// with one undecided round at a time.
type CounterOffer struct {
	ID            string    `json:"id"`
	OfferID       int64     `json:"offer_id"`
	ProposedPrice int64     `json:"proposed_price"`
	Message       string    `json:"message"`
	Modifications string    `json:"modifications,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// CounterOfferInput carries the traveler's counter proposal.
type CounterOfferInput struct {
	ProposedPrice int64  `json:"proposed_price"`
	Message       string `json:"message"`
	Modifications string `json:"modifications"`
}
