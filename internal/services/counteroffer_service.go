package services

import (
	"context"
	"fmt"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
	"tripmarket/internal/repositories"
	"tripmarket/internal/utils"
)

// CounterOfferService creates counter-proposals and re-threads the
// original offer's status.
type CounterOfferService struct {
	CounterRepo repositories.CounterOfferRepository
	OfferRepo   repositories.OfferRepository
	Clock       utils.Clock
	RequestID   string
}

func (s CounterOfferService) clock() utils.Clock {
	if s.Clock != nil {
		return s.Clock
	}
	return utils.SystemClock{}
}

// SubmitCounteroffer records a counter round against a pending,
// unexpired offer and flips the offer to counter_offered. Input is
// validated before anything is read or written, so a bad price leaves
// the offer untouched.
func (s CounterOfferService) SubmitCounteroffer(ctx context.Context, offerID int64, input models.CounterOfferInput) (models.CounterOffer, error) {
	if input.ProposedPrice <= 0 {
		return models.CounterOffer{}, domain.ValidationError{Field: "proposed_price", Msg: "must be positive"}
	}

	offer, err := s.OfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return models.CounterOffer{}, err
	}

	now := s.clock().Now()
	if err := gateTransition(offer, models.OfferCounterOffered, now); err != nil {
		return models.CounterOffer{}, err
	}

	pendingRound, err := s.CounterRepo.HasPendingRound(ctx, offerID)
	if err != nil {
		return models.CounterOffer{}, err
	}
	if pendingRound {
		return models.CounterOffer{}, domain.ConflictError{Resource: "counter offer", Msg: "a round is already awaiting the vendor"}
	}

	counter := models.CounterOffer{
		OfferID:       offerID,
		ProposedPrice: input.ProposedPrice,
		Message:       input.Message,
		Modifications: input.Modifications,
		Status:        models.CounterPending,
		CreatedAt:     now,
	}
	if err := s.CounterRepo.CreateWithOfferTransition(ctx, &counter); err != nil {
		return models.CounterOffer{}, err
	}

	utils.LogEvent(s.RequestID, "counteroffer", "submit",
		fmt.Sprintf("offer_id=%d counter_id=%s", offerID, counter.ID))
	return counter, nil
}

// ListRounds returns the counter history for an offer, newest first.
func (s CounterOfferService) ListRounds(ctx context.Context, offerID int64) ([]models.CounterOffer, error) {
	if _, err := s.OfferRepo.GetByID(ctx, offerID); err != nil {
		return nil, err
	}
	return s.CounterRepo.ListByOfferID(ctx, offerID)
}
