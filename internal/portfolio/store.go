package portfolio

import (
	"strings"
	"sync"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

// Store owns the process-wide portfolio state: current holdings plus the
// append-only valuation history. All mutations are serialized behind the
// mutex and are all-or-nothing; reads return copies taken under RLock so
// callers never observe a half-applied mutation.
type Store struct {
	mu       sync.RWMutex
	holdings []domain.Holding
	index    map[string]int
	history  []domain.Snapshot
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Create replaces the entire holding set and clears history. Zero-quantity
// entries are dropped rather than stored. The previous state is untouched
// when validation fails.
func (s *Store) Create(holdings []domain.Holding) error {
	next := make([]domain.Holding, 0, len(holdings))
	index := make(map[string]int, len(holdings))

	for _, h := range holdings {
		ticker := normalizeTicker(h.Ticker)
		if ticker == "" {
			return domain.Validationf("holding ticker must not be empty")
		}
		if _, dup := index[ticker]; dup {
			return domain.Validationf("duplicate holding for %s", ticker)
		}
		if h.Quantity < 0 {
			return domain.Validationf("holding %s has negative quantity %f", ticker, h.Quantity)
		}
		if h.Quantity == 0 {
			continue
		}
		if h.AverageCost <= 0 {
			return domain.Validationf("holding %s has non-positive avg price %f", ticker, h.AverageCost)
		}
		index[ticker] = len(next)
		next = append(next, domain.Holding{Ticker: ticker, Quantity: h.Quantity, AverageCost: h.AverageCost})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = next
	s.index = index
	s.history = nil
	return nil
}

// Update applies a batch of quantity adjustments. Increases recompute the
// average cost as a weighted average of the existing position and the new
// shares at the delta's price; decreases leave the average cost alone and
// book realized P/L against it. A position driven to zero or below is
// removed. The whole batch is validated before anything is committed.
func (s *Store) Update(deltas []domain.HoldingDelta) ([]domain.RealizedPL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := make([]domain.Holding, len(s.holdings))
	copy(work, s.holdings)
	index := make(map[string]int, len(s.index))
	for k, v := range s.index {
		index[k] = v
	}

	realized := make([]domain.RealizedPL, 0, len(deltas))
	for _, d := range deltas {
		ticker := normalizeTicker(d.Ticker)
		if ticker == "" {
			return nil, domain.Validationf("delta ticker must not be empty")
		}
		if d.QuantityDelta == 0 {
			return nil, domain.Validationf("delta for %s has zero quantity", ticker)
		}
		if d.Price < 0 {
			return nil, domain.Validationf("delta for %s has negative price %f", ticker, d.Price)
		}

		pos, held := index[ticker]
		if d.QuantityDelta > 0 {
			if d.Price == 0 {
				return nil, domain.Validationf("delta for %s increases quantity without a price", ticker)
			}
			if !held {
				index[ticker] = len(work)
				work = append(work, domain.Holding{Ticker: ticker, Quantity: d.QuantityDelta, AverageCost: d.Price})
				continue
			}
			h := work[pos]
			newQty := h.Quantity + d.QuantityDelta
			h.AverageCost = (h.Quantity*h.AverageCost + d.QuantityDelta*d.Price) / newQty
			h.Quantity = newQty
			work[pos] = h
			continue
		}

		if !held {
			return nil, domain.NotFound("holding " + ticker)
		}
		h := work[pos]
		sold := -d.QuantityDelta
		if sold > h.Quantity {
			sold = h.Quantity
		}
		realized = append(realized, domain.RealizedPL{
			Ticker: ticker,
			Amount: sold * (d.Price - h.AverageCost),
		})
		h.Quantity += d.QuantityDelta
		if h.Quantity <= 0 {
			work = removeAt(work, pos)
			index = reindex(work)
			continue
		}
		work[pos] = h
	}

	s.holdings = work
	s.index = reindex(work)
	return realized, nil
}

// Delete removes the named holdings. Every ticker must exist; otherwise
// nothing is removed and a NotFoundError is returned.
func (s *Store) Delete(tickers []string) error {
	if len(tickers) == 0 {
		return domain.Validationf("no tickers to delete")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		ticker := normalizeTicker(t)
		if _, ok := s.index[ticker]; !ok {
			return domain.NotFound("holding " + ticker)
		}
		drop[ticker] = struct{}{}
	}

	next := s.holdings[:0]
	for _, h := range s.holdings {
		if _, gone := drop[h.Ticker]; !gone {
			next = append(next, h)
		}
	}
	s.holdings = next
	s.index = reindex(next)
	return nil
}

// DeleteAll clears every holding. History is retained.
func (s *Store) DeleteAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = nil
	s.index = make(map[string]int)
}

// Holdings returns a copy of the current holdings in their stored order.
func (s *Store) Holdings() []domain.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

// History returns a copy of the valuation snapshots, oldest first.
func (s *Store) History() []domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Snapshot, len(s.history))
	copy(out, s.history)
	return out
}

// AppendSnapshot appends one valuation point. History is append-only and
// strictly increasing in timestamp; an out-of-order snapshot is rejected.
func (s *Store) AppendSnapshot(snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.history); n > 0 && !snap.Timestamp.After(s.history[n-1].Timestamp) {
		return domain.Validationf("snapshot at %s is not after the last history entry", snap.Timestamp)
	}
	s.history = append(s.history, snap)
	return nil
}

// Restore replaces the in-memory state wholesale, keeping the given
// history instead of clearing it. Used once at boot to reload persisted
// snapshots alongside saved holdings.
func (s *Store) Restore(holdings []domain.Holding, history []domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = make([]domain.Holding, len(holdings))
	copy(s.holdings, holdings)
	s.index = reindex(s.holdings)
	s.history = make([]domain.Snapshot, len(history))
	copy(s.history, history)
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

func removeAt(holdings []domain.Holding, pos int) []domain.Holding {
	return append(holdings[:pos], holdings[pos+1:]...)
}

func reindex(holdings []domain.Holding) map[string]int {
	index := make(map[string]int, len(holdings))
	for i, h := range holdings {
		index[h.Ticker] = i
	}
	return index
}
