package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	intconfig "tripmarket/internal/config"
	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

type SavedOfferRepository struct {
	DB *sql.DB
}

func (r SavedOfferRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Upsert bookmarks an offer. Saving the same (user, offer) pair again
// only refreshes saved_at; the composite primary key prevents duplicates.
func (r SavedOfferRepository) Upsert(ctx context.Context, userID, offerID int64, at time.Time) error {
	_, err := r.db().ExecContext(ctx,
		`INSERT INTO saved_offers (user_id, offer_id, saved_at) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE saved_at=VALUES(saved_at)`,
		userID, offerID, at)
	if err != nil {
		return domain.AdapterError{Op: "save offer", Err: err}
	}
	return nil
}

// ListViewsByUserID joins bookmarks with current offer and trip request
// state, newest bookmark first.
func (r SavedOfferRepository) ListViewsByUserID(ctx context.Context, userID int64) ([]models.SavedOfferView, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT s.saved_at,
		       o.id, o.trip_request_id, o.vendor_id, o.proposed_price,
		       COALESCE(o.price_breakdown, ''), COALESCE(o.message, ''),
		       o.vendor_rating, o.status, COALESCE(o.rejection_reason, ''),
		       o.valid_until, o.created_at, o.accepted_at, o.rejected_at,
		       t.id, t.user_id, COALESCE(t.destination, ''), t.start_date, t.end_date,
		       t.group_size, t.budget, t.status, COALESCE(t.selected_vendor_id, 0), t.created_at
		FROM saved_offers s
		JOIN offers o ON o.id = s.offer_id
		JOIN trip_requests t ON t.id = o.trip_request_id
		WHERE s.user_id=?
		ORDER BY s.saved_at DESC`, userID)
	if err != nil {
		return nil, domain.AdapterError{Op: "list saved offers", Err: err}
	}
	defer rows.Close()

	var out []models.SavedOfferView
	for rows.Next() {
		var (
			v          models.SavedOfferView
			breakdown  string
			rating     sql.NullFloat64
			acceptedAt sql.NullTime
			rejectedAt sql.NullTime
		)
		err := rows.Scan(
			&v.SavedAt,
			&v.Offer.ID, &v.Offer.TripRequestID, &v.Offer.VendorID, &v.Offer.ProposedPrice,
			&breakdown, &v.Offer.Message,
			&rating, &v.Offer.Status, &v.Offer.RejectionReason,
			&v.Offer.ValidUntil, &v.Offer.CreatedAt, &acceptedAt, &rejectedAt,
			&v.TripRequest.ID, &v.TripRequest.UserID, &v.TripRequest.Destination,
			&v.TripRequest.StartDate, &v.TripRequest.EndDate,
			&v.TripRequest.GroupSize, &v.TripRequest.Budget, &v.TripRequest.Status,
			&v.TripRequest.SelectedVendorID, &v.TripRequest.CreatedAt,
		)
		if err != nil {
			return nil, domain.AdapterError{Op: "scan saved offer", Err: err}
		}
		if breakdown != "" {
			if err := json.Unmarshal([]byte(breakdown), &v.Offer.PriceBreakdown); err != nil {
				return nil, domain.AdapterError{Op: "decode price breakdown", Err: err}
			}
		}
		if rating.Valid {
			f := rating.Float64
			v.Offer.VendorRating = &f
		}
		if acceptedAt.Valid {
			t := acceptedAt.Time
			v.Offer.AcceptedAt = &t
		}
		if rejectedAt.Valid {
			t := rejectedAt.Time
			v.Offer.RejectedAt = &t
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AdapterError{Op: "iterate saved offers", Err: err}
	}
	return out, nil
}

type OfferShareRepository struct {
	DB *sql.DB
}

func (r OfferShareRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert appends one share event. Never deduplicates: sharing the same
// offer to the same group twice records two events.
func (r OfferShareRepository) Insert(ctx context.Context, share *models.OfferShare) error {
	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	_, err := r.db().ExecContext(ctx,
		`INSERT INTO offer_shares (id, offer_id, group_id, message, shared_at) VALUES (?, ?, ?, ?, ?)`,
		share.ID, share.OfferID, share.GroupID, share.Message, share.SharedAt)
	if err != nil {
		return domain.AdapterError{Op: "share offer", Err: err}
	}
	return nil
}
