package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"tripmarket/internal/offers"
	"tripmarket/internal/utils"
)

// ReportsService renders traveler-facing documents.
type ReportsService struct {
	Query     QueryService
	RequestID string
}

// ComparisonPDF renders the comparison aggregates for the selected
// offers into a printable summary.
func (s ReportsService) ComparisonPDF(ctx context.Context, offerIDs []int64) ([]byte, string, error) {
	cmp, views, err := s.Query.CompareSelected(ctx, offerIDs, false)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "comparison_pdf", fmt.Sprintf("offers=%d", len(views)))
	return buildComparisonPDF(cmp, views)
}

func buildComparisonPDF(cmp offers.Comparison, views []offers.View) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Offer Comparison", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "OFFER COMPARISON")
	pdf.Ln(12)

	best := make(map[int64]bool, len(cmp.BestPriceOfferIDs))
	for _, id := range cmp.BestPriceOfferIDs {
		best[id] = true
	}

	pdf.SetFont("Helvetica", "", 11)
	for i, v := range views {
		tag := ""
		if best[v.ID] {
			tag = "  [BEST PRICE]"
		}
		line := fmt.Sprintf("%d) Offer #%d  vendor #%d  price %s  rating %.1f  %s%s",
			i+1, v.ID, v.VendorID, utils.FormatMinor(v.ProposedPrice), v.Rating(),
			expiryLabel(v.DaysUntilExpiry), tag)
		pdf.MultiCell(0, 6, line, "", "", false)
		pdf.Ln(1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Price range")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Lowest  : %s", utils.FormatMinor(cmp.PriceRange.Min)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Highest : %s", utils.FormatMinor(cmp.PriceRange.Max)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Average : %s", utils.FormatMinor(int64(cmp.PriceRange.Average))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Vendor ratings")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Min %.1f / Max %.1f / Average %.2f",
		cmp.RatingRange.Min, cmp.RatingRange.Max, cmp.RatingRange.Average))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Expiring soonest first")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for _, e := range cmp.ExpirationDays {
		pdf.Cell(0, 6, fmt.Sprintf("Offer #%d: %s", e.OfferID, expiryLabel(e.DaysUntilExpiry)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = fmt.Sprintf("%d", v.ID)
	}
	filename := fmt.Sprintf("COMPARISON_%s.pdf", strings.Join(ids, "-"))
	return buf.Bytes(), filename, nil
}

func expiryLabel(days int) string {
	switch {
	case days < 0:
		return "expired"
	case days == 0:
		return "expires today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
