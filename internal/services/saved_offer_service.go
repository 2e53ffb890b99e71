package services

import (
	"context"
	"fmt"
	"sort"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
	"tripmarket/internal/offers"
	"tripmarket/internal/repositories"
	"tripmarket/internal/utils"
)

// SavedOfferService keeps the bookmark and share ledgers.
type SavedOfferService struct {
	SavedRepo repositories.SavedOfferRepository
	ShareRepo repositories.OfferShareRepository
	OfferRepo repositories.OfferRepository
	Clock     utils.Clock
	RequestID string
}

func (s SavedOfferService) clock() utils.Clock {
	if s.Clock != nil {
		return s.Clock
	}
	return utils.SystemClock{}
}

// SaveOfferForLater bookmarks an offer. Repeat saves only refresh the
// saved_at timestamp.
func (s SavedOfferService) SaveOfferForLater(ctx context.Context, offerID, userID int64) (models.SavedOffer, error) {
	if _, err := s.OfferRepo.GetByID(ctx, offerID); err != nil {
		return models.SavedOffer{}, err
	}

	now := s.clock().Now()
	if err := s.SavedRepo.Upsert(ctx, userID, offerID, now); err != nil {
		return models.SavedOffer{}, err
	}

	utils.LogEvent(s.RequestID, "bookmark", "save", fmt.Sprintf("offer_id=%d user_id=%d", offerID, userID))
	return models.SavedOffer{UserID: userID, OfferID: offerID, SavedAt: now}, nil
}

// ShareOfferWithGroup appends one share event. Repeat shares to the
// same group are distinct events.
func (s SavedOfferService) ShareOfferWithGroup(ctx context.Context, offerID, groupID int64, message string) (models.OfferShare, error) {
	if groupID <= 0 {
		return models.OfferShare{}, domain.ValidationError{Field: "group_id", Msg: "must be positive"}
	}
	if _, err := s.OfferRepo.GetByID(ctx, offerID); err != nil {
		return models.OfferShare{}, err
	}

	share := models.OfferShare{
		OfferID:  offerID,
		GroupID:  groupID,
		Message:  message,
		SharedAt: s.clock().Now(),
	}
	if err := s.ShareRepo.Insert(ctx, &share); err != nil {
		return models.OfferShare{}, err
	}

	utils.LogEvent(s.RequestID, "bookmark", "share", fmt.Sprintf("offer_id=%d group_id=%d", offerID, groupID))
	return share, nil
}

// SavedView is a bookmark joined with the annotated offer and its trip
// request.
type SavedView struct {
	SavedAt     string             `json:"saved_at"`
	Offer       offers.View        `json:"offer"`
	TripRequest models.TripRequest `json:"trip_request"`
}

// SavedViewOptions filter and order the saved-offer view. Status is
// "active" or "expired" against the derived offer state; SortBy is
// saved_at (default), price, or expiry.
type SavedViewOptions struct {
	Status string
	SortBy string
	Order  string
}

// LoadSavedOffers returns the traveler's bookmarks joined with current
// offer and trip request state, newest bookmark first unless resorted.
func (s SavedOfferService) LoadSavedOffers(ctx context.Context, userID int64, opts SavedViewOptions) ([]SavedView, error) {
	raw, err := s.SavedRepo.ListViewsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock().Now()
	views := make([]SavedView, 0, len(raw))
	savedAt := make(map[int64]int64, len(raw)) // offer id -> unix nanos for sorting
	for _, r := range raw {
		annotated := offers.Annotate(r.Offer, now)
		switch opts.Status {
		case "active":
			if annotated.EffectiveStatus != models.OfferPending {
				continue
			}
		case "expired":
			if !annotated.IsExpired {
				continue
			}
		}
		savedAt[r.Offer.ID] = r.SavedAt.UnixNano()
		views = append(views, SavedView{
			SavedAt:     utils.FormatDateTime(r.SavedAt),
			Offer:       annotated,
			TripRequest: r.TripRequest,
		})
	}

	desc := opts.Order != "asc" // saved views default to newest/highest first
	less := func(a, b SavedView) bool {
		switch opts.SortBy {
		case offers.SortByPrice:
			return a.Offer.ProposedPrice < b.Offer.ProposedPrice
		case offers.SortByExpiry:
			return a.Offer.ValidUntil.Before(b.Offer.ValidUntil)
		default:
			return savedAt[a.Offer.ID] < savedAt[b.Offer.ID]
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(views[j], views[i])
		}
		return less(views[i], views[j])
	})
	return views, nil
}
