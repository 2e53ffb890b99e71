package offers

import (
	"reflect"
	"testing"
	"time"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

func compareFixture() []models.Offer {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []models.Offer{
		{ID: 1, ProposedPrice: 50000, VendorRating: rating(4.0), ValidUntil: now.Add(5 * 24 * time.Hour)},
		{ID: 2, ProposedPrice: 30000, VendorRating: rating(4.8), ValidUntil: now.Add(48 * time.Hour)},
		{ID: 3, ProposedPrice: 40000, ValidUntil: now.Add(10 * 24 * time.Hour)},
		{ID: 4, ProposedPrice: 90000, VendorRating: rating(2.5), ValidUntil: now.Add(time.Hour)},
	}
}

func TestCompareAggregates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cmp, err := CompareOffers(compareFixture(), []int64{1, 2, 3}, CompareOptions{Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmp.PriceRange.Min != 30000 || cmp.PriceRange.Max != 50000 {
		t.Fatalf("price range got %+v", cmp.PriceRange)
	}
	if cmp.PriceRange.Average != 40000 {
		t.Fatalf("price average got %f want 40000", cmp.PriceRange.Average)
	}

	// Missing rating counts as 0 under the default policy.
	if cmp.RatingRange.Min != 0 || cmp.RatingRange.Max != 4.8 {
		t.Fatalf("rating range got %+v", cmp.RatingRange)
	}

	wantDays := []ExpirationEntry{
		{OfferID: 2, DaysUntilExpiry: 2},
		{OfferID: 1, DaysUntilExpiry: 5},
		{OfferID: 3, DaysUntilExpiry: 10},
	}
	if !reflect.DeepEqual(cmp.ExpirationDays, wantDays) {
		t.Fatalf("expiration days got %+v want %+v", cmp.ExpirationDays, wantDays)
	}

	if want := []int64{2}; !reflect.DeepEqual(cmp.BestPriceOfferIDs, want) {
		t.Fatalf("best price got %v want %v", cmp.BestPriceOfferIDs, want)
	}
	if want := []int64{2}; !reflect.DeepEqual(cmp.BestRatingOfferIDs, want) {
		t.Fatalf("best rating got %v want %v", cmp.BestRatingOfferIDs, want)
	}
}

func TestComparePriceTiesFlagAllWinners(t *testing.T) {
	list := []models.Offer{
		{ID: 1, ProposedPrice: 30000},
		{ID: 2, ProposedPrice: 30000},
		{ID: 3, ProposedPrice: 45000},
	}
	cmp, err := CompareOffers(list, []int64{1, 2, 3}, CompareOptions{Now: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int64{1, 2}; !reflect.DeepEqual(cmp.BestPriceOfferIDs, want) {
		t.Fatalf("tied best price got %v want %v", cmp.BestPriceOfferIDs, want)
	}
}

func TestCompareSingleOfferDegenerateRanges(t *testing.T) {
	cmp, err := CompareOffers(compareFixture(), []int64{4}, CompareOptions{Now: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.PriceRange.Min != 90000 || cmp.PriceRange.Max != 90000 || cmp.PriceRange.Average != 90000 {
		t.Fatalf("degenerate price range got %+v", cmp.PriceRange)
	}
	if want := []int64{4}; !reflect.DeepEqual(cmp.BestPriceOfferIDs, want) {
		t.Fatalf("single offer should win its own comparison, got %v", cmp.BestPriceOfferIDs)
	}
}

func TestCompareExcludeUnrated(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cmp, err := CompareOffers(compareFixture(), []int64{2, 3, 4}, CompareOptions{Now: now, ExcludeUnrated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.RatingRange.Min != 2.5 || cmp.RatingRange.Max != 4.8 {
		t.Fatalf("unrated offer leaked into rating range: %+v", cmp.RatingRange)
	}
	wantAvg := (4.8 + 2.5) / 2
	if cmp.RatingRange.Average != wantAvg {
		t.Fatalf("rating average got %f want %f", cmp.RatingRange.Average, wantAvg)
	}
	if want := []int64{2}; !reflect.DeepEqual(cmp.BestRatingOfferIDs, want) {
		t.Fatalf("best rating got %v want %v", cmp.BestRatingOfferIDs, want)
	}
}

func TestCompareEmptySelectionRejected(t *testing.T) {
	if _, err := CompareOffers(compareFixture(), nil, CompareOptions{}); !domain.IsValidation(err) {
		t.Fatalf("empty selection should be a validation error, got %v", err)
	}
	if _, err := CompareOffers(compareFixture(), []int64{99}, CompareOptions{}); !domain.IsValidation(err) {
		t.Fatalf("unknown ids should be a validation error, got %v", err)
	}
}
