// Package offers holds the pure in-memory engines over offer
// collections: read-time expiry derivation, filtering/sorting, and
// cross-offer comparison. Nothing here touches storage; callers pass
// the current time in explicitly.
package offers

import (
	"time"

	"tripmarket/internal/domain/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// DaysUntilExpiry is the ceiling division of the remaining time by one
// day. Zero and negative values mean the offer expires today or has
// already expired.
func DaysUntilExpiry(validUntil, now time.Time) int {
	ms := validUntil.Sub(now).Milliseconds()
	q := ms / dayMillis
	if ms%dayMillis > 0 {
		q++
	}
	return int(q)
}

// IsExpired reports whether a stored-pending offer is past valid_until.
// Terminal statuses are never expired; they are already decided.
func IsExpired(o models.Offer, now time.Time) bool {
	return o.Status == models.OfferPending && o.ValidUntil.Before(now)
}

// EffectiveStatus is the consumer-facing status: storage keeps
// "pending" after valid_until elapses, readers must see "expired".
func EffectiveStatus(o models.Offer, now time.Time) string {
	if IsExpired(o, now) {
		return models.OfferExpired
	}
	return o.Status
}

// Actionable reports whether accept/reject/counter are still available.
// Expiry gates on days-until-expiry so that "0 days" counts as expired.
func Actionable(o models.Offer, now time.Time) bool {
	return o.Status == models.OfferPending && DaysUntilExpiry(o.ValidUntil, now) > 0
}

// View is an offer with its derived read-time fields attached.
type View struct {
	models.Offer
	EffectiveStatus string `json:"effective_status"`
	IsExpired       bool   `json:"is_expired"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// Annotate attaches the derived fields for a single offer.
func Annotate(o models.Offer, now time.Time) View {
	return View{
		Offer:           o,
		EffectiveStatus: EffectiveStatus(o, now),
		IsExpired:       IsExpired(o, now),
		DaysUntilExpiry: DaysUntilExpiry(o.ValidUntil, now),
	}
}

// AnnotateAll maps Annotate over a collection, preserving order.
func AnnotateAll(list []models.Offer, now time.Time) []View {
	out := make([]View, len(list))
	for i, o := range list {
		out[i] = Annotate(o, now)
	}
	return out
}
