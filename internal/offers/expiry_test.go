package offers

import (
	"testing"
	"time"

	"tripmarket/internal/domain/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDaysUntilExpiryCeiling(t *testing.T) {
	cases := []struct {
		name       string
		validUntil time.Time
		want       int
	}{
		{"one millisecond past", testNow.Add(-time.Millisecond), 0},
		{"exactly now", testNow, 0},
		{"one millisecond left", testNow.Add(time.Millisecond), 1},
		{"five hours left rounds up", testNow.Add(5 * time.Hour), 1},
		{"exactly one day", testNow.Add(24 * time.Hour), 1},
		{"one day plus a second", testNow.Add(24*time.Hour + time.Second), 2},
		{"three days ago", testNow.Add(-72 * time.Hour), -3},
	}
	for _, tc := range cases {
		if got := DaysUntilExpiry(tc.validUntil, testNow); got != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestExpiredPendingOfferPresentsExpired(t *testing.T) {
	o := models.Offer{ID: 1, Status: models.OfferPending, ValidUntil: testNow.Add(-time.Millisecond)}

	if !IsExpired(o, testNow) {
		t.Fatalf("offer past valid_until should be expired")
	}
	if got := EffectiveStatus(o, testNow); got != models.OfferExpired {
		t.Fatalf("effective status got %q want %q", got, models.OfferExpired)
	}
	if d := DaysUntilExpiry(o.ValidUntil, testNow); d > 0 {
		t.Fatalf("days_until_expiry should be <= 0, got %d", d)
	}
}

func TestTerminalStatusesNeverExpired(t *testing.T) {
	for _, status := range []string{models.OfferAccepted, models.OfferRejected, models.OfferCounterOffered} {
		o := models.Offer{Status: status, ValidUntil: testNow.Add(-time.Hour)}
		if IsExpired(o, testNow) {
			t.Errorf("status %s should not derive expired", status)
		}
		if got := EffectiveStatus(o, testNow); got != status {
			t.Errorf("status %s should present unchanged, got %q", status, got)
		}
	}
}

func TestActionableGatesOnZeroDays(t *testing.T) {
	pending := models.Offer{Status: models.OfferPending, ValidUntil: testNow.Add(time.Hour)}
	if !Actionable(pending, testNow) {
		t.Fatalf("pending offer with time left should be actionable")
	}

	lapsed := models.Offer{Status: models.OfferPending, ValidUntil: testNow}
	if Actionable(lapsed, testNow) {
		t.Fatalf("offer expiring exactly now should be gated")
	}

	accepted := models.Offer{Status: models.OfferAccepted, ValidUntil: testNow.Add(time.Hour)}
	if Actionable(accepted, testNow) {
		t.Fatalf("accepted offer should not be actionable")
	}
}

func TestAnnotatePreservesOrder(t *testing.T) {
	list := []models.Offer{
		{ID: 3, Status: models.OfferPending, ValidUntil: testNow.Add(48 * time.Hour)},
		{ID: 1, Status: models.OfferPending, ValidUntil: testNow.Add(-time.Hour)},
	}
	views := AnnotateAll(list, testNow)
	if len(views) != 2 || views[0].ID != 3 || views[1].ID != 1 {
		t.Fatalf("annotate changed order: %+v", views)
	}
	if views[0].IsExpired || !views[1].IsExpired {
		t.Fatalf("expiry flags wrong: %+v", views)
	}
	if views[0].DaysUntilExpiry != 2 {
		t.Fatalf("days for first view got %d want 2", views[0].DaysUntilExpiry)
	}
}
