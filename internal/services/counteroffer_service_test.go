package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tripmarket/internal/domain"
	"tripmarket/internal/domain/models"
	"tripmarket/internal/repositories"
	"tripmarket/internal/utils"
)

func newCounterService(t *testing.T) (CounterOfferService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := CounterOfferService{
		CounterRepo: repositories.CounterOfferRepository{DB: db},
		OfferRepo:   repositories.OfferRepository{DB: db},
		Clock:       utils.FixedClock{T: acceptNow},
	}
	return svc, mock, func() { db.Close() }
}

func TestSubmitCounterofferZeroPriceRejectedBeforeAnyRead(t *testing.T) {
	svc, mock, closeDB := newCounterService(t)
	defer closeDB()

	_, err := svc.SubmitCounteroffer(context.Background(), 1, models.CounterOfferInput{ProposedPrice: 0})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	// Nothing was read or written; the offer stays untouched.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestSubmitCounterofferCreatesRoundAndRethreadsOffer(t *testing.T) {
	svc, mock, closeDB := newCounterService(t)
	defer closeDB()

	mock.ExpectQuery("FROM offers WHERE id=").WithArgs(int64(1)).
		WillReturnRows(pendingOfferRow(1, 10, 7, 500, acceptNow.Add(72*time.Hour)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM counter_offers").
		WithArgs(int64(1), models.CounterPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO counter_offers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE offers SET status=").
		WithArgs(models.OfferCounterOffered, int64(1), models.OfferPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counter, err := svc.SubmitCounteroffer(context.Background(), 1, models.CounterOfferInput{
		ProposedPrice: 35000,
		Message:       "can you do 350?",
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if counter.ID == "" {
		t.Fatalf("counter id not assigned")
	}
	if counter.Status != models.CounterPending {
		t.Fatalf("counter status got %q want pending", counter.Status)
	}
	if !counter.CreatedAt.Equal(acceptNow) {
		t.Fatalf("created_at not stamped from clock: %v", counter.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubmitCounterofferRejectsSecondActiveRound(t *testing.T) {
	svc, mock, closeDB := newCounterService(t)
	defer closeDB()

	mock.ExpectQuery("FROM offers WHERE id=").WithArgs(int64(1)).
		WillReturnRows(pendingOfferRow(1, 10, 7, 500, acceptNow.Add(72*time.Hour)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM counter_offers").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.SubmitCounteroffer(context.Background(), 1, models.CounterOfferInput{ProposedPrice: 35000})
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict for active round, got %v", err)
	}
}

func TestSubmitCounterofferExpiredOfferGated(t *testing.T) {
	svc, mock, closeDB := newCounterService(t)
	defer closeDB()

	mock.ExpectQuery("FROM offers WHERE id=").WithArgs(int64(1)).
		WillReturnRows(pendingOfferRow(1, 10, 7, 500, acceptNow.Add(-time.Hour)))

	_, err := svc.SubmitCounteroffer(context.Background(), 1, models.CounterOfferInput{ProposedPrice: 35000})
	if !domain.IsInvalidTransition(err) {
		t.Fatalf("want invalid transition for expired offer, got %v", err)
	}
}

func TestSubmitCounterofferLosesRaceInsideTransaction(t *testing.T) {
	svc, mock, closeDB := newCounterService(t)
	defer closeDB()

	mock.ExpectQuery("FROM offers WHERE id=").WithArgs(int64(1)).
		WillReturnRows(pendingOfferRow(1, 10, 7, 500, acceptNow.Add(72*time.Hour)))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM counter_offers").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO counter_offers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE offers SET status=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.SubmitCounteroffer(context.Background(), 1, models.CounterOfferInput{ProposedPrice: 35000})
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict when offer changed mid-flight, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
