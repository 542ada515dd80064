package service

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/portfolio"
)

type stubPrices struct {
	prices map[string]float64
}

func (p *stubPrices) Prices(ctx context.Context, tickers []string) map[string]float64 {
	out := make(map[string]float64)
	for _, t := range tickers {
		if v, ok := p.prices[t]; ok {
			out[t] = v
		}
	}
	return out
}

type stubPersistence struct {
	holdings     []domain.Holding
	snapshots    []domain.Snapshot
	replaceCalls int
	insertCalls  int
	clearCalls   int
	getErr       error
}

func (r *stubPersistence) ReplaceHoldings(ctx context.Context, holdings []domain.Holding) error {
	r.replaceCalls++
	r.holdings = holdings
	return nil
}

func (r *stubPersistence) GetHoldings(ctx context.Context) ([]domain.Holding, error) {
	return r.holdings, r.getErr
}

func (r *stubPersistence) InsertSnapshot(ctx context.Context, snap domain.Snapshot) error {
	r.insertCalls++
	r.snapshots = append(r.snapshots, snap)
	return nil
}

func (r *stubPersistence) ClearSnapshots(ctx context.Context) error {
	r.clearCalls++
	r.snapshots = nil
	return nil
}

func (r *stubPersistence) ListSnapshots(ctx context.Context, limit int) ([]domain.Snapshot, error) {
	return r.snapshots, nil
}

func newPortfolioService(prices map[string]float64, repo PortfolioPersistence) *PortfolioService {
	return NewPortfolioService(
		trace.NewNoopTracerProvider().Tracer("test"),
		portfolio.NewStore(),
		&stubPrices{prices: prices},
		repo,
	)
}

func TestCreateThenValuationMatchesPriceMap(t *testing.T) {
	svc := newPortfolioService(map[string]float64{"TCS.NS": 3200}, nil)

	view, err := svc.Create(context.Background(), []domain.Holding{
		{Ticker: "TCS.NS", Quantity: 10, AverageCost: 3000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Valuation.TotalValue != 32000 {
		t.Fatalf("expected total 32000, got %f", view.Valuation.TotalValue)
	}
	if *view.Valuation.Holdings[0].UnrealizedPL != 2000 {
		t.Fatalf("expected unrealized 2000, got %f", *view.Valuation.Holdings[0].UnrealizedPL)
	}
}

func TestValuationAppendsHistorySnapshot(t *testing.T) {
	repo := &stubPersistence{}
	svc := newPortfolioService(map[string]float64{"X": 10}, repo)

	if _, err := svc.Create(context.Background(), []domain.Holding{{Ticker: "X", Quantity: 1, AverageCost: 5}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history := svc.History(context.Background())
	if len(history) != 1 || history[0].TotalValue != 10 {
		t.Fatalf("expected one snapshot worth 10, got %+v", history)
	}
	if repo.insertCalls != 1 {
		t.Fatalf("expected snapshot persisted once, got %d", repo.insertCalls)
	}
}

func TestUpdateReportsRealizedPL(t *testing.T) {
	svc := newPortfolioService(map[string]float64{"X": 12}, nil)
	if _, err := svc.Create(context.Background(), []domain.Holding{{Ticker: "X", Quantity: 10, AverageCost: 10}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.Update(context.Background(), []domain.HoldingDelta{
		{Ticker: "X", QuantityDelta: -4, Price: 12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Realized) != 1 || view.Realized[0].Amount != 8 {
		t.Fatalf("expected realized 4*(12-10)=8, got %+v", view.Realized)
	}
}

func TestUpdateUnknownTickerPropagatesNotFound(t *testing.T) {
	svc := newPortfolioService(nil, nil)
	_, err := svc.Update(context.Background(), []domain.HoldingDelta{
		{Ticker: "GHOST", QuantityDelta: -1, Price: 1},
	})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteWithoutTickersClearsAllHoldings(t *testing.T) {
	repo := &stubPersistence{}
	svc := newPortfolioService(map[string]float64{"X": 1, "Y": 2}, repo)
	if _, err := svc.Create(context.Background(), []domain.Holding{
		{Ticker: "X", Quantity: 1, AverageCost: 1},
		{Ticker: "Y", Quantity: 1, AverageCost: 1},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	view, err := svc.Delete(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Valuation.Holdings) != 0 {
		t.Fatalf("expected empty portfolio, got %+v", view.Valuation.Holdings)
	}
	if len(repo.holdings) != 0 {
		t.Fatal("expected persistence mirrored to empty")
	}
}

func TestMissingPriceSurfacesWarningNotError(t *testing.T) {
	svc := newPortfolioService(map[string]float64{"X": 10}, nil)
	if _, err := svc.Create(context.Background(), []domain.Holding{
		{Ticker: "X", Quantity: 1, AverageCost: 5},
		{Ticker: "DARK.NS", Quantity: 2, AverageCost: 7},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := svc.Valuation(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Warnings) != 1 || v.Warnings[0] != "DARK.NS" {
		t.Fatalf("expected warning for DARK.NS, got %v", v.Warnings)
	}
	if v.TotalValue != 10 {
		t.Fatalf("expected unpriced holding excluded, got %f", v.TotalValue)
	}
}

func TestLoadRestoresFromPersistence(t *testing.T) {
	repo := &stubPersistence{
		holdings:  []domain.Holding{{Ticker: "TCS.NS", Quantity: 3, AverageCost: 3000}},
		snapshots: []domain.Snapshot{{TotalValue: 9000}},
	}
	svc := newPortfolioService(nil, repo)

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.Holdings(); len(got) != 1 || got[0].Ticker != "TCS.NS" {
		t.Fatalf("expected restored holding, got %+v", got)
	}
	if got := svc.History(context.Background()); len(got) != 1 || got[0].TotalValue != 9000 {
		t.Fatalf("expected restored history, got %+v", got)
	}
}
