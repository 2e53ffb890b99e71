package services

import (
	"context"
	"fmt"
	"time"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
	"tripmarket/internal/offers"
	"tripmarket/internal/repositories"
	"tripmarket/internal/utils"
)

// LifecycleService owns the offer state machine and the transactional
// accept operation.
type LifecycleService struct {
	OfferRepo repositories.OfferRepository
	TripRepo  repositories.TripRequestRepository
	Clock     utils.Clock
	RequestID string
}

func (s LifecycleService) clock() utils.Clock {
	if s.Clock != nil {
		return s.Clock
	}
	return utils.SystemClock{}
}

// AcceptOffer accepts the target offer on behalf of the traveler who
// owns the trip request. Ordering is strict: the conditional accept of
// the target offer happens first and must succeed before any sibling
// rejection or trip-request update is attempted. Those follow-up writes
// are best-effort; their failure surfaces as PartialFailureError, never
// as a rollback of the acceptance.
func (s LifecycleService) AcceptOffer(ctx context.Context, offerID, userID int64) (models.Offer, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return models.Offer{}, err
	}

	trip, err := s.TripRepo.GetByID(ctx, offer.TripRequestID)
	if err != nil {
		return models.Offer{}, err
	}
	if trip.UserID != userID {
		return models.Offer{}, domain.ValidationError{Field: "user_id", Msg: "trip request belongs to another traveler"}
	}

	now := s.clock().Now()
	if err := gateTransition(offer, models.OfferAccepted, now); err != nil {
		return models.Offer{}, err
	}

	ok, err := s.OfferRepo.MarkAccepted(ctx, offerID, now)
	if err != nil {
		return models.Offer{}, err
	}
	if !ok {
		return models.Offer{}, domain.ConflictError{Resource: "offer", Msg: "no longer pending"}
	}

	offer.Status = models.OfferAccepted
	offer.AcceptedAt = &now

	var failed []string
	var firstErr error
	if _, err := s.OfferRepo.RejectPendingSiblings(ctx, offer.TripRequestID, offerID, now); err != nil {
		failed = append(failed, "sibling rejection")
		firstErr = err
	}
	if err := s.TripRepo.MarkAccepted(ctx, offer.TripRequestID, offer.VendorID); err != nil {
		failed = append(failed, "trip request update")
		if firstErr == nil {
			firstErr = err
		}
	}
	if len(failed) > 0 {
		utils.LogEvent(s.RequestID, "lifecycle", "accept_partial",
			fmt.Sprintf("offer_id=%d failed=%v", offerID, failed))
		return offer, domain.PartialFailureError{Primary: "offer acceptance", Failed: failed, Err: firstErr}
	}

	utils.LogEvent(s.RequestID, "lifecycle", "accept",
		fmt.Sprintf("offer_id=%d trip_request_id=%d vendor_id=%d", offerID, offer.TripRequestID, offer.VendorID))
	return offer, nil
}

// RejectOffer rejects a single pending offer. No cascading effects on
// siblings or the trip request.
func (s LifecycleService) RejectOffer(ctx context.Context, offerID int64, reason string) (models.Offer, error) {
	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return models.Offer{}, err
	}

	now := s.clock().Now()
	if err := gateTransition(offer, models.OfferRejected, now); err != nil {
		return models.Offer{}, err
	}

	ok, err := s.OfferRepo.MarkRejected(ctx, offerID, reason, now)
	if err != nil {
		return models.Offer{}, err
	}
	if !ok {
		return models.Offer{}, domain.ConflictError{Resource: "offer", Msg: "no longer pending"}
	}

	offer.Status = models.OfferRejected
	offer.RejectionReason = reason
	offer.RejectedAt = &now

	utils.LogEvent(s.RequestID, "lifecycle", "reject", fmt.Sprintf("offer_id=%d", offerID))
	return offer, nil
}

// gateTransition enforces that pending is the only state lifecycle
// actions may start from, and that a lapsed pending offer counts as
// expired rather than pending.
func gateTransition(offer models.Offer, to string, now time.Time) error {
	if offer.Status != models.OfferPending {
		return domain.InvalidTransitionError{Resource: "offer", From: offer.Status, To: to}
	}
	if !offers.Actionable(offer, now) {
		return domain.InvalidTransitionError{Resource: "offer", From: models.OfferExpired, To: to}
	}
	return nil
}
