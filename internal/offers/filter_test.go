package offers

import (
	"reflect"
	"testing"
	"time"

	"tripmarket/internal/domain/models"
)

func rating(v float64) *float64 { return &v }

func sampleOffers() []models.Offer {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return []models.Offer{
		{ID: 1, ProposedPrice: 300, Status: models.OfferPending, VendorRating: rating(4.5), CreatedAt: base, ValidUntil: base.AddDate(0, 1, 0)},
		{ID: 2, ProposedPrice: 100, Status: models.OfferPending, CreatedAt: base.Add(24 * time.Hour), ValidUntil: base.AddDate(0, 0, 10)},
		{ID: 3, ProposedPrice: 200, Status: models.OfferRejected, VendorRating: rating(3.0), CreatedAt: base.Add(48 * time.Hour), ValidUntil: base.AddDate(0, 2, 0)},
	}
}

func ids(list []models.Offer) []int64 {
	out := make([]int64, len(list))
	for i, o := range list {
		out[i] = o.ID
	}
	return out
}

func TestSortByPriceAscending(t *testing.T) {
	got := FilterAndSort(sampleOffers(), Filters{}, SortByPrice, OrderAsc)
	if want := []int64{2, 3, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("price asc got %v want %v", ids(got), want)
	}
	if got[0].ProposedPrice != 100 || got[1].ProposedPrice != 200 || got[2].ProposedPrice != 300 {
		t.Fatalf("prices not ordered: %v", got)
	}
}

func TestSortIsPure(t *testing.T) {
	in := sampleOffers()
	first := FilterAndSort(in, Filters{}, SortByPrice, OrderDesc)
	second := FilterAndSort(in, Filters{}, SortByPrice, OrderDesc)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("same inputs gave different outputs: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(ids(in), []int64{1, 2, 3}) {
		t.Fatalf("input slice was mutated: %v", ids(in))
	}
}

func TestEqualKeysKeepInputOrder(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []models.Offer{
		{ID: 10, ProposedPrice: 500, CreatedAt: base},
		{ID: 11, ProposedPrice: 500, CreatedAt: base},
		{ID: 12, ProposedPrice: 400, CreatedAt: base},
		{ID: 13, ProposedPrice: 500, CreatedAt: base},
	}
	got := FilterAndSort(in, Filters{}, SortByPrice, OrderAsc)
	if want := []int64{12, 10, 11, 13}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("stability broken: got %v want %v", ids(got), want)
	}

	got = FilterAndSort(in, Filters{}, SortByPrice, OrderDesc)
	if want := []int64{10, 11, 13, 12}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("desc stability broken: got %v want %v", ids(got), want)
	}
}

func TestFiltersAndCombined(t *testing.T) {
	min := int64(150)
	max := int64(350)
	minRating := 3.5

	got := FilterAndSort(sampleOffers(), Filters{
		Status:    models.OfferPending,
		MinPrice:  &min,
		MaxPrice:  &max,
		MinRating: &minRating,
	}, SortByCreatedAt, OrderAsc)
	if want := []int64{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("combined filters got %v want %v", ids(got), want)
	}
}

func TestPriceRangeInclusive(t *testing.T) {
	min := int64(100)
	max := int64(300)
	got := FilterAndSort(sampleOffers(), Filters{MinPrice: &min, MaxPrice: &max}, SortByPrice, OrderAsc)
	if len(got) != 3 {
		t.Fatalf("inclusive bounds should keep all offers, got %v", ids(got))
	}
}

func TestStatusFilterUsesEffectiveStatusWhenNowSet(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	in := sampleOffers() // offer 2 valid until May 11, offer 1 until June 1

	pending := FilterAndSort(in, Filters{Status: models.OfferPending, Now: now}, SortByCreatedAt, OrderAsc)
	if len(pending) != 0 {
		t.Fatalf("all pending offers lapsed by July, got %v", ids(pending))
	}

	expired := FilterAndSort(in, Filters{Status: models.OfferExpired, Now: now}, SortByExpiry, OrderAsc)
	if want := []int64{2, 1}; !reflect.DeepEqual(ids(expired), want) {
		t.Fatalf("expired filter got %v want %v", ids(expired), want)
	}
}

func TestCreatedAtRangeFilter(t *testing.T) {
	from := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	got := FilterAndSort(sampleOffers(), Filters{CreatedFrom: &from, CreatedTo: &to}, SortByCreatedAt, OrderAsc)
	if want := []int64{2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("created range got %v want %v", ids(got), want)
	}
}
