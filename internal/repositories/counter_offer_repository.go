package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	intconfig "tripmarket/internal/config"
	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

type CounterOfferRepository struct {
	DB *sql.DB
}

func (r CounterOfferRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CreateWithOfferTransition inserts the counter round and flips the
// original offer to counter_offered in one transaction. The offer
// update is conditional on the offer still being pending; losing that
// race rolls back the insert and reports a conflict.
func (r CounterOfferRepository) CreateWithOfferTransition(ctx context.Context, counter *models.CounterOffer) error {
	if counter.ID == "" {
		counter.ID = uuid.New().String()
	}

	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return domain.AdapterError{Op: "begin counteroffer tx", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO counter_offers (id, offer_id, proposed_price, message, modifications, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		counter.ID, counter.OfferID, counter.ProposedPrice, counter.Message,
		counter.Modifications, counter.Status, counter.CreatedAt)
	if err != nil {
		return domain.AdapterError{Op: "insert counter offer", Err: err}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE offers SET status=? WHERE id=? AND status=?`,
		models.OfferCounterOffered, counter.OfferID, models.OfferPending)
	if err != nil {
		return domain.AdapterError{Op: "mark offer counter_offered", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.AdapterError{Op: "mark offer counter_offered", Err: err}
	}
	if n != 1 {
		return domain.ConflictError{Resource: "offer", Msg: "status changed before counteroffer was recorded"}
	}

	if err := tx.Commit(); err != nil {
		return domain.AdapterError{Op: "commit counteroffer tx", Err: err}
	}
	return nil
}

// HasPendingRound reports whether the offer already has an undecided
// counter round.
func (r CounterOfferRepository) HasPendingRound(ctx context.Context, offerID int64) (bool, error) {
	var count int
	err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM counter_offers WHERE offer_id=? AND status=?`,
		offerID, models.CounterPending).Scan(&count)
	if err != nil {
		return false, domain.AdapterError{Op: "count counter offers", Err: err}
	}
	return count > 0, nil
}

// ListByOfferID returns counter rounds, newest first.
func (r CounterOfferRepository) ListByOfferID(ctx context.Context, offerID int64) ([]models.CounterOffer, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT id, offer_id, proposed_price, COALESCE(message, ''), COALESCE(modifications, ''), status, created_at
		 FROM counter_offers WHERE offer_id=? ORDER BY created_at DESC`, offerID)
	if err != nil {
		return nil, domain.AdapterError{Op: "list counter offers", Err: err}
	}
	defer rows.Close()

	var out []models.CounterOffer
	for rows.Next() {
		var c models.CounterOffer
		if err := rows.Scan(&c.ID, &c.OfferID, &c.ProposedPrice, &c.Message, &c.Modifications, &c.Status, &c.CreatedAt); err != nil {
			return nil, domain.AdapterError{Op: "scan counter offer", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AdapterError{Op: "iterate counter offers", Err: err}
	}
	return out, nil
}
