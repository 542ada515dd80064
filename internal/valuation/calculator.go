package valuation

import (
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

// Value prices a holding set against a price map. It never mutates the
// portfolio: the returned snapshot is handed back to the caller, which
// appends it to history under the store's lock. Holdings without a price
// are reported with nil values and a warning, and contribute to neither
// the total nor the allocation denominator.
func Value(holdings []domain.Holding, prices map[string]float64, now time.Time) (domain.Valuation, domain.Snapshot) {
	v := domain.Valuation{
		Holdings: make([]domain.HoldingValuation, 0, len(holdings)),
		AsOf:     now,
	}

	for _, h := range holdings {
		hv := domain.HoldingValuation{
			Ticker:      h.Ticker,
			Quantity:    h.Quantity,
			AverageCost: h.AverageCost,
		}
		price, ok := prices[h.Ticker]
		if !ok {
			v.Warnings = append(v.Warnings, h.Ticker)
			v.Holdings = append(v.Holdings, hv)
			continue
		}

		current := h.Quantity * price
		cost := h.Quantity * h.AverageCost
		pl := current - cost

		hv.Price = &price
		hv.CurrentValue = &current
		hv.UnrealizedPL = &pl
		v.TotalValue += current
		v.TotalCost += cost
		v.UnrealizedPL += pl
		v.Holdings = append(v.Holdings, hv)
	}

	if v.TotalValue > 0 {
		for i := range v.Holdings {
			if v.Holdings[i].CurrentValue != nil {
				v.Holdings[i].Allocation = *v.Holdings[i].CurrentValue / v.TotalValue
			}
		}
	}

	return v, domain.Snapshot{Timestamp: now, TotalValue: v.TotalValue}
}
