package service

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/valuation"
)

type PriceSource interface {
	Prices(ctx context.Context, tickers []string) map[string]float64
}

type PortfolioStore interface {
	Create(holdings []domain.Holding) error
	Update(deltas []domain.HoldingDelta) ([]domain.RealizedPL, error)
	Delete(tickers []string) error
	DeleteAll()
	Holdings() []domain.Holding
	History() []domain.Snapshot
	AppendSnapshot(snap domain.Snapshot) error
	Restore(holdings []domain.Holding, history []domain.Snapshot)
}

type PortfolioPersistence interface {
	ReplaceHoldings(ctx context.Context, holdings []domain.Holding) error
	GetHoldings(ctx context.Context) ([]domain.Holding, error)
	InsertSnapshot(ctx context.Context, snap domain.Snapshot) error
	ClearSnapshots(ctx context.Context) error
	ListSnapshots(ctx context.Context, limit int) ([]domain.Snapshot, error)
}

// PortfolioService owns the read/write flow around the store: mutations
// are mirrored to persistence (best effort), and every computed valuation
// appends one history snapshot. The store itself serializes access; this
// layer never touches holdings outside it.
type PortfolioService struct {
	tracer trace.Tracer
	store  PortfolioStore
	prices PriceSource
	repo   PortfolioPersistence
	now    func() time.Time
}

func NewPortfolioService(tracer trace.Tracer, store PortfolioStore, prices PriceSource, repo PortfolioPersistence) *PortfolioService {
	return &PortfolioService{
		tracer: tracer,
		store:  store,
		prices: prices,
		repo:   repo,
		now:    time.Now,
	}
}

// PortfolioView is the portfolio endpoint response: current valuation
// plus any realized P/L booked by the mutation that produced the view.
type PortfolioView struct {
	Valuation domain.Valuation    `json:"portfolio"`
	Realized  []domain.RealizedPL `json:"realized_pl,omitempty"`
}

// Load restores holdings and history from persistence at boot.
func (s *PortfolioService) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "portfolio-service.load")
	defer span.End()

	holdings, err := s.repo.GetHoldings(ctx)
	if err != nil {
		return err
	}
	history, err := s.repo.ListSnapshots(ctx, 0)
	if err != nil {
		return err
	}
	s.store.Restore(holdings, history)
	return nil
}

// Valuation prices the current holdings and appends the snapshot to
// history. Missing prices degrade to warnings inside the valuation.
func (s *PortfolioService) Valuation(ctx context.Context) (domain.Valuation, error) {
	ctx, span := s.tracer.Start(ctx, "portfolio-service.valuation")
	defer span.End()

	holdings := s.store.Holdings()
	tickers := make([]string, len(holdings))
	for i, h := range holdings {
		tickers[i] = h.Ticker
	}

	var prices map[string]float64
	if len(tickers) > 0 {
		prices = s.prices.Prices(ctx, tickers)
	}

	v, snap := valuation.Value(holdings, prices, s.now().UTC())
	if err := s.store.AppendSnapshot(snap); err != nil {
		// concurrent valuations can collide on the timestamp; the
		// first append wins and the valuation itself is still good
		log.Printf("history append skipped: %v", err)
	} else if s.repo != nil {
		if err := s.repo.InsertSnapshot(ctx, snap); err != nil {
			log.Printf("snapshot persist error: %v", err)
		}
	}
	return v, nil
}

func (s *PortfolioService) Create(ctx context.Context, holdings []domain.Holding) (*PortfolioView, error) {
	ctx, span := s.tracer.Start(ctx, "portfolio-service.create")
	defer span.End()

	if err := s.store.Create(holdings); err != nil {
		return nil, err
	}
	if s.repo != nil {
		if err := s.repo.ReplaceHoldings(ctx, s.store.Holdings()); err != nil {
			log.Printf("holdings persist error: %v", err)
		}
		if err := s.repo.ClearSnapshots(ctx); err != nil {
			log.Printf("history clear error: %v", err)
		}
	}
	return s.view(ctx, nil)
}

func (s *PortfolioService) Update(ctx context.Context, deltas []domain.HoldingDelta) (*PortfolioView, error) {
	ctx, span := s.tracer.Start(ctx, "portfolio-service.update")
	defer span.End()

	realized, err := s.store.Update(deltas)
	if err != nil {
		return nil, err
	}
	s.persistHoldings(ctx)
	return s.view(ctx, realized)
}

// Delete removes the named holdings, or every holding when tickers is
// empty (the DELETE body may omit them to clear the portfolio).
func (s *PortfolioService) Delete(ctx context.Context, tickers []string) (*PortfolioView, error) {
	ctx, span := s.tracer.Start(ctx, "portfolio-service.delete")
	defer span.End()

	if len(tickers) == 0 {
		s.store.DeleteAll()
	} else if err := s.store.Delete(tickers); err != nil {
		return nil, err
	}
	s.persistHoldings(ctx)
	return s.view(ctx, nil)
}

func (s *PortfolioService) History(ctx context.Context) []domain.Snapshot {
	_, span := s.tracer.Start(ctx, "portfolio-service.history")
	defer span.End()
	return s.store.History()
}

func (s *PortfolioService) Holdings() []domain.Holding {
	return s.store.Holdings()
}

func (s *PortfolioService) view(ctx context.Context, realized []domain.RealizedPL) (*PortfolioView, error) {
	v, err := s.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	return &PortfolioView{Valuation: v, Realized: realized}, nil
}

func (s *PortfolioService) persistHoldings(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.ReplaceHoldings(ctx, s.store.Holdings()); err != nil {
		log.Printf("holdings persist error: %v", err)
	}
}
