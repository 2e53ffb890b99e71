package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
)

func TestMarkAcceptedGuardsOnPendingStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := OfferRepository{DB: db}
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE offers SET status=\\?, accepted_at=\\? WHERE id=\\? AND status=\\?").
		WithArgs(models.OfferAccepted, at, int64(7), models.OfferPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.MarkAccepted(context.Background(), 7, at)
	if err != nil || !ok {
		t.Fatalf("expected guarded update to succeed, ok=%v err=%v", ok, err)
	}

	// Zero rows affected means the guard failed, not an error.
	mock.ExpectExec("UPDATE offers SET status=\\?, accepted_at=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.MarkAccepted(context.Background(), 7, at)
	if err != nil {
		t.Fatalf("lost race must not be an adapter error: %v", err)
	}
	if ok {
		t.Fatalf("lost race must report ok=false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := OfferRepository{DB: db}

	mock.ExpectQuery("FROM offers WHERE id=").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestRejectPendingSiblingsSkipsDecidedOffers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := OfferRepository{DB: db}
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// The WHERE clause pins status=pending so counter_offered and
	// rejected siblings stay untouched; two of four siblings match.
	mock.ExpectExec("UPDATE offers SET status=\\?, rejected_at=\\? WHERE trip_request_id=\\? AND id<>\\? AND status=\\?").
		WithArgs(models.OfferRejected, at, int64(10), int64(2), models.OfferPending).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.RejectPendingSiblings(context.Background(), 10, 2, at)
	if err != nil {
		t.Fatalf("sibling rejection error: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows affected got %d want 2", n)
	}
}
