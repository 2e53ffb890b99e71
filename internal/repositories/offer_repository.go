package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	intconfig "tripmarket/internal/config"
	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

const offerColumns = `id,
       trip_request_id,
       vendor_id,
       proposed_price,
       COALESCE(price_breakdown, ''),
       COALESCE(message, ''),
       vendor_rating,
       status,
       COALESCE(rejection_reason, ''),
       valid_until,
       created_at,
       accepted_at,
       rejected_at`

type OfferRepository struct {
	DB *sql.DB
}

func (r OfferRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches an offer by primary key.
func (r OfferRepository) GetByID(ctx context.Context, id int64) (models.Offer, error) {
	if id <= 0 {
		return models.Offer{}, domain.ValidationError{Field: "offer_id", Msg: "must be positive"}
	}

	row := r.db().QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id=? LIMIT 1`, id)
	o, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return models.Offer{}, domain.NotFoundError{Resource: "offer"}
	}
	if err != nil {
		return models.Offer{}, domain.AdapterError{Op: "get offer", Err: err}
	}
	return o, nil
}

// ListByTripRequestID returns all offers for a trip request, oldest first.
func (r OfferRepository) ListByTripRequestID(ctx context.Context, tripRequestID int64) ([]models.Offer, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE trip_request_id=? ORDER BY created_at, id`, tripRequestID)
	if err != nil {
		return nil, domain.AdapterError{Op: "list offers", Err: err}
	}
	defer rows.Close()

	var out []models.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, domain.AdapterError{Op: "scan offer", Err: err}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AdapterError{Op: "iterate offers", Err: err}
	}
	return out, nil
}

// MarkAccepted transitions an offer to accepted only if it is still
// pending. Returns false without error when the conditional update
// matched no row, meaning another writer got there first.
func (r OfferRepository) MarkAccepted(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE offers SET status=?, accepted_at=? WHERE id=? AND status=?`,
		models.OfferAccepted, at, id, models.OfferPending)
	if err != nil {
		return false, domain.AdapterError{Op: "accept offer", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.AdapterError{Op: "accept offer", Err: err}
	}
	return n == 1, nil
}

// MarkRejected transitions an offer to rejected only if still pending.
func (r OfferRepository) MarkRejected(ctx context.Context, id int64, reason string, at time.Time) (bool, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE offers SET status=?, rejection_reason=?, rejected_at=? WHERE id=? AND status=?`,
		models.OfferRejected, reason, at, id, models.OfferPending)
	if err != nil {
		return false, domain.AdapterError{Op: "reject offer", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, domain.AdapterError{Op: "reject offer", Err: err}
	}
	return n == 1, nil
}

// RejectPendingSiblings rejects every other pending offer under the
// same trip request. Returns how many rows were updated.
func (r OfferRepository) RejectPendingSiblings(ctx context.Context, tripRequestID, exceptOfferID int64, at time.Time) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE offers SET status=?, rejected_at=? WHERE trip_request_id=? AND id<>? AND status=?`,
		models.OfferRejected, at, tripRequestID, exceptOfferID, models.OfferPending)
	if err != nil {
		return 0, domain.AdapterError{Op: "reject sibling offers", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, domain.AdapterError{Op: "reject sibling offers", Err: err}
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (models.Offer, error) {
	var (
		o          models.Offer
		breakdown  string
		rating     sql.NullFloat64
		acceptedAt sql.NullTime
		rejectedAt sql.NullTime
	)
	err := row.Scan(
		&o.ID,
		&o.TripRequestID,
		&o.VendorID,
		&o.ProposedPrice,
		&breakdown,
		&o.Message,
		&rating,
		&o.Status,
		&o.RejectionReason,
		&o.ValidUntil,
		&o.CreatedAt,
		&acceptedAt,
		&rejectedAt,
	)
	if err != nil {
		return models.Offer{}, err
	}
	if breakdown != "" {
		if err := json.Unmarshal([]byte(breakdown), &o.PriceBreakdown); err != nil {
			return models.Offer{}, err
		}
	}
	if rating.Valid {
		v := rating.Float64
		o.VendorRating = &v
	}
	if acceptedAt.Valid {
		t := acceptedAt.Time
		o.AcceptedAt = &t
	}
	if rejectedAt.Valid {
		t := rejectedAt.Time
		o.RejectedAt = &t
	}
	return o, nil
}
