package offers

import (
	"sort"
	"time"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

// PriceRange aggregates proposed prices in minor units.
type PriceRange struct {
	Min     int64   `json:"min"`
	Max     int64   `json:"max"`
	Average float64 `json:"average"`
}

// RatingRange aggregates vendor ratings.
type RatingRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

// ExpirationEntry pairs an offer with its remaining days, soonest first.
type ExpirationEntry struct {
	OfferID         int64 `json:"offer_id"`
	DaysUntilExpiry int   `json:"days_until_expiry"`
}

// CompareOptions tune the comparison. ExcludeUnrated drops offers with
// no vendor rating from the rating aggregates instead of counting them
// as 0 (the default policy).
type CompareOptions struct {
	Now            time.Time
	ExcludeUnrated bool
}

// Comparison is the aggregate view over a selected subset of offers.
// Best-value slices flag every offer at the extremum; ties are all kept.
type Comparison struct {
	PriceRange         PriceRange        `json:"price_range"`
	RatingRange        RatingRange       `json:"rating_range"`
	ExpirationDays     []ExpirationEntry `json:"expiration_days"`
	BestPriceOfferIDs  []int64           `json:"best_price_offer_ids"`
	BestRatingOfferIDs []int64           `json:"best_rating_offer_ids"`
}

// CompareOffers computes aggregates over the offers whose ids appear in
// selectedIDs. A single selected offer yields degenerate ranges. An
// empty or unmatched selection is a validation error.
func CompareOffers(list []models.Offer, selectedIDs []int64, opts CompareOptions) (Comparison, error) {
	if len(selectedIDs) == 0 {
		return Comparison{}, domain.ValidationError{Field: "offer_ids", Msg: "no offers selected"}
	}

	wanted := make(map[int64]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}
	selected := make([]models.Offer, 0, len(selectedIDs))
	for _, o := range list {
		if wanted[o.ID] {
			selected = append(selected, o)
		}
	}
	if len(selected) == 0 {
		return Comparison{}, domain.ValidationError{Field: "offer_ids", Msg: "selected offers not found"}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	out := Comparison{
		PriceRange:  priceRange(selected),
		RatingRange: ratingRange(selected, opts.ExcludeUnrated),
	}

	out.ExpirationDays = make([]ExpirationEntry, len(selected))
	for i, o := range selected {
		out.ExpirationDays[i] = ExpirationEntry{
			OfferID:         o.ID,
			DaysUntilExpiry: DaysUntilExpiry(o.ValidUntil, now),
		}
	}
	sort.SliceStable(out.ExpirationDays, func(i, j int) bool {
		return out.ExpirationDays[i].DaysUntilExpiry < out.ExpirationDays[j].DaysUntilExpiry
	})

	out.BestPriceOfferIDs = flagExtremum(selected, func(o models.Offer) (float64, bool) {
		return float64(o.ProposedPrice), true
	}, false)
	out.BestRatingOfferIDs = flagExtremum(selected, func(o models.Offer) (float64, bool) {
		if opts.ExcludeUnrated && o.VendorRating == nil {
			return 0, false
		}
		return o.Rating(), true
	}, true)

	return out, nil
}

func priceRange(selected []models.Offer) PriceRange {
	r := PriceRange{Min: selected[0].ProposedPrice, Max: selected[0].ProposedPrice}
	var sum int64
	for _, o := range selected {
		if o.ProposedPrice < r.Min {
			r.Min = o.ProposedPrice
		}
		if o.ProposedPrice > r.Max {
			r.Max = o.ProposedPrice
		}
		sum += o.ProposedPrice
	}
	r.Average = float64(sum) / float64(len(selected))
	return r
}

func ratingRange(selected []models.Offer, excludeUnrated bool) RatingRange {
	var r RatingRange
	first := true
	var sum float64
	var n int
	for _, o := range selected {
		if excludeUnrated && o.VendorRating == nil {
			continue
		}
		v := o.Rating()
		if first {
			r.Min, r.Max = v, v
			first = false
		} else {
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
		sum += v
		n++
	}
	if n > 0 {
		r.Average = sum / float64(n)
	}
	return r
}

// flagExtremum returns the ids of every offer whose value equals the
// extremum; eligible=false excludes an offer from the criterion.
func flagExtremum(selected []models.Offer, value func(models.Offer) (float64, bool), highest bool) []int64 {
	var best float64
	found := false
	for _, o := range selected {
		v, ok := value(o)
		if !ok {
			continue
		}
		if !found || (highest && v > best) || (!highest && v < best) {
			best = v
			found = true
		}
	}
	if !found {
		return nil
	}
	var ids []int64
	for _, o := range selected {
		if v, ok := value(o); ok && v == best {
			ids = append(ids, o.ID)
		}
	}
	return ids
}
