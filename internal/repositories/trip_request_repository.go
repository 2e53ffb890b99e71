package repositories

import (
	"context"
	"database/sql"

	intconfig "tripmarket/internal/config"
	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

const tripRequestColumns = `id,
       user_id,
       COALESCE(destination, ''),
       start_date,
       end_date,
       group_size,
       budget,
       status,
       COALESCE(selected_vendor_id, 0),
       created_at`

type TripRequestRepository struct {
	DB *sql.DB
}

func (r TripRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches a trip request by primary key.
func (r TripRequestRepository) GetByID(ctx context.Context, id int64) (models.TripRequest, error) {
	if id <= 0 {
		return models.TripRequest{}, domain.ValidationError{Field: "trip_request_id", Msg: "must be positive"}
	}
	row := r.db().QueryRowContext(ctx,
		`SELECT `+tripRequestColumns+` FROM trip_requests WHERE id=? LIMIT 1`, id)
	tr, err := scanTripRequest(row)
	if err == sql.ErrNoRows {
		return models.TripRequest{}, domain.NotFoundError{Resource: "trip request"}
	}
	if err != nil {
		return models.TripRequest{}, domain.AdapterError{Op: "get trip request", Err: err}
	}
	return tr, nil
}

// ListByUserID returns the traveler's trip requests, newest first.
func (r TripRequestRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TripRequest, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+tripRequestColumns+` FROM trip_requests WHERE user_id=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, domain.AdapterError{Op: "list trip requests", Err: err}
	}
	defer rows.Close()

	var out []models.TripRequest
	for rows.Next() {
		tr, err := scanTripRequest(rows)
		if err != nil {
			return nil, domain.AdapterError{Op: "scan trip request", Err: err}
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.AdapterError{Op: "iterate trip requests", Err: err}
	}
	return out, nil
}

// MarkAccepted sets the trip request to accepted and records the
// winning vendor.
func (r TripRequestRepository) MarkAccepted(ctx context.Context, id, vendorID int64) error {
	_, err := r.db().ExecContext(ctx,
		`UPDATE trip_requests SET status=?, selected_vendor_id=? WHERE id=?`,
		models.TripRequestAccepted, vendorID, id)
	if err != nil {
		return domain.AdapterError{Op: "accept trip request", Err: err}
	}
	return nil
}

func scanTripRequest(row rowScanner) (models.TripRequest, error) {
	var tr models.TripRequest
	err := row.Scan(
		&tr.ID,
		&tr.UserID,
		&tr.Destination,
		&tr.StartDate,
		&tr.EndDate,
		&tr.GroupSize,
		&tr.Budget,
		&tr.Status,
		&tr.SelectedVendorID,
		&tr.CreatedAt,
	)
	if err != nil {
		return models.TripRequest{}, err
	}
	return tr, nil
}
