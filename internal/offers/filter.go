package offers

import (
	"sort"
	"time"

	"tripmarket/internal/domain/models"
)

// Sort keys accepted by FilterAndSort.
const (
	SortByPrice     = "price"
	SortByRating    = "rating"
	SortByExpiry    = "expiry"
	SortByCreatedAt = "created_at"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filters are AND-combined; zero fields are skipped. When Now is set,
// the status filter matches the derived effective status, so "pending"
// excludes lapsed offers and "expired" selects them.
type Filters struct {
	Status      string
	MinPrice    *int64
	MaxPrice    *int64
	MinRating   *float64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Now         time.Time
}

func (f Filters) matches(o models.Offer) bool {
	if f.Status != "" {
		status := o.Status
		if !f.Now.IsZero() {
			status = EffectiveStatus(o, f.Now)
		}
		if status != f.Status {
			return false
		}
	}
	if f.MinPrice != nil && o.ProposedPrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && o.ProposedPrice > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && o.Rating() < *f.MinRating {
		return false
	}
	if f.CreatedFrom != nil && o.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && o.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	return true
}

// FilterAndSort returns a new filtered, ordered slice. The input is
// never mutated. Equal keys keep their input order: the sort is stable
// with no secondary key, which keeps results deterministic.
func FilterAndSort(list []models.Offer, f Filters, sortBy, order string) []models.Offer {
	out := make([]models.Offer, 0, len(list))
	for _, o := range list {
		if f.matches(o) {
			out = append(out, o)
		}
	}

	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	desc := order == OrderDesc

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i], sortBy)
		}
		return less(out[i], out[j], sortBy)
	})
	return out
}

// less compares raw typed values, never string representations.
func less(a, b models.Offer, sortBy string) bool {
	switch sortBy {
	case SortByPrice:
		return a.ProposedPrice < b.ProposedPrice
	case SortByRating:
		return a.Rating() < b.Rating()
	case SortByExpiry:
		return a.ValidUntil.Before(b.ValidUntil)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
