package services

import (
	"context"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
	"tripmarket/internal/offers"
	"tripmarket/internal/repositories"
	"tripmarket/internal/utils"
)

// QueryService serves the read paths: trip requests with nested offers,
// single-offer detail, and the filter/compare projections.
type QueryService struct {
	TripRepo    repositories.TripRequestRepository
	OfferRepo   repositories.OfferRepository
	CounterRepo repositories.CounterOfferRepository
	Clock       utils.Clock
}

func (s QueryService) clock() utils.Clock {
	if s.Clock != nil {
		return s.Clock
	}
	return utils.SystemClock{}
}

// TripRequestView nests annotated offers under their trip request.
type TripRequestView struct {
	models.TripRequest
	Offers []offers.View `json:"offers"`
}

// ListTripRequests loads the traveler's trip requests with nested
// offers and derived expiry fields.
func (s QueryService) ListTripRequests(ctx context.Context, userID int64) ([]TripRequestView, error) {
	trips, err := s.TripRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock().Now()
	out := make([]TripRequestView, 0, len(trips))
	for _, tr := range trips {
		list, err := s.OfferRepo.ListByTripRequestID(ctx, tr.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TripRequestView{
			TripRequest: tr,
			Offers:      offers.AnnotateAll(list, now),
		})
	}
	return out, nil
}

// OfferDetail is a single annotated offer with its counter rounds.
type OfferDetail struct {
	offers.View
	CounterOffers []models.CounterOffer `json:"counter_offers"`
}

// GetOffer returns one offer with derived fields and counter history.
func (s QueryService) GetOffer(ctx context.Context, offerID int64) (OfferDetail, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return OfferDetail{}, err
	}
	rounds, err := s.CounterRepo.ListByOfferID(ctx, offerID)
	if err != nil {
		return OfferDetail{}, err
	}
	return OfferDetail{
		View:          offers.Annotate(offer, s.clock().Now()),
		CounterOffers: rounds,
	}, nil
}

// FilterOffers loads a trip request's offers and applies the pure
// filter/sort engine against the current clock.
func (s QueryService) FilterOffers(ctx context.Context, tripRequestID int64, f offers.Filters, sortBy, order string) ([]offers.View, error) {
	if _, err := s.TripRepo.GetByID(ctx, tripRequestID); err != nil {
		return nil, err
	}
	list, err := s.OfferRepo.ListByTripRequestID(ctx, tripRequestID)
	if err != nil {
		return nil, err
	}
	now := s.clock().Now()
	f.Now = now
	return offers.AnnotateAll(offers.FilterAndSort(list, f, sortBy, order), now), nil
}

// CompareSelected loads the selected offers and runs the comparison
// engine over them.
func (s QueryService) CompareSelected(ctx context.Context, offerIDs []int64, excludeUnrated bool) (offers.Comparison, []offers.View, error) {
	if len(offerIDs) == 0 {
		return offers.Comparison{}, nil, domain.ValidationError{Field: "offer_ids", Msg: "no offers selected"}
	}

	selected := make([]models.Offer, 0, len(offerIDs))
	for _, id := range offerIDs {
		o, err := s.OfferRepo.GetByID(ctx, id)
		if err != nil {
			return offers.Comparison{}, nil, err
		}
		selected = append(selected, o)
	}

	now := s.clock().Now()
	cmp, err := offers.CompareOffers(selected, offerIDs, offers.CompareOptions{Now: now, ExcludeUnrated: excludeUnrated})
	if err != nil {
		return offers.Comparison{}, nil, err
	}
	return cmp, offers.AnnotateAll(selected, now), nil
}
