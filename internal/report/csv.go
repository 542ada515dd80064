package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

// Report is a generated file ready for the handler to stream.
type Report struct {
	Filename string
	MimeType string
	Bytes    []byte
}

// CSV builds a portfolio report from one valuation, with an optional tax
// suggestion section when suggestions are provided. Unpriced holdings
// appear with empty value cells.
func CSV(v domain.Valuation, suggestions []domain.TaxSuggestion) (*Report, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"ticker", "quantity", "avg_price", "price", "current_value", "unrealized_pl", "allocation"},
	}
	for _, h := range v.Holdings {
		records = append(records, []string{
			h.Ticker,
			formatFloat(h.Quantity),
			formatFloat(h.AverageCost),
			formatOptional(h.Price),
			formatOptional(h.CurrentValue),
			formatOptional(h.UnrealizedPL),
			formatFloat(h.Allocation),
		})
	}
	records = append(records,
		[]string{},
		[]string{"total_value", formatFloat(v.TotalValue)},
		[]string{"total_cost", formatFloat(v.TotalCost)},
		[]string{"unrealized_pl", formatFloat(v.UnrealizedPL)},
	)
	for _, ticker := range v.Warnings {
		records = append(records, []string{"warning", "price unavailable for " + ticker})
	}

	if len(suggestions) > 0 {
		records = append(records,
			[]string{},
			[]string{"section", "headroom", "tax_saved"},
		)
		for _, s := range suggestions {
			records = append(records, []string{
				s.Section,
				formatFloat(s.Headroom),
				formatFloat(s.TaxSaved),
			})
		}
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}

	asOf := v.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return &Report{
		Filename: "portfolio-" + asOf.Format("2006-01-02") + ".csv",
		MimeType: "text/csv",
		Bytes:    buf.Bytes(),
	}, nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
