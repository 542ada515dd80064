package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/provider"
)

type stubMarket struct {
	mu         sync.Mutex
	data       map[string]provider.TickerData
	quotes     map[string]*domain.Quote
	quoteCalls int
}

func (m *stubMarket) FetchAll(ctx context.Context, tickers []string, rng string) map[string]provider.TickerData {
	out := make(map[string]provider.TickerData, len(tickers))
	for _, t := range tickers {
		if d, ok := m.data[t]; ok {
			out[t] = d
		} else {
			out[t] = provider.TickerData{Err: domain.Unavailable(t, errors.New("no data"))}
		}
	}
	return out
}

func (m *stubMarket) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	m.mu.Lock()
	m.quoteCalls++
	m.mu.Unlock()
	q, ok := m.quotes[ticker]
	if !ok {
		return nil, errors.New("no quote")
	}
	return q, nil
}

type stubQuoteCache struct {
	mu     sync.Mutex
	stored map[string]*domain.Quote
	sets   int
}

func (c *stubQuoteCache) Get(ctx context.Context, ticker string) (*domain.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored == nil {
		return nil, nil
	}
	return c.stored[ticker], nil
}

func (c *stubQuoteCache) Set(ctx context.Context, q *domain.Quote) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.stored == nil {
		c.stored = make(map[string]*domain.Quote)
	}
	c.stored[q.Ticker] = q
	return nil
}

func dailyCandles(ticker string, closes []float64) []domain.Candle {
	base := time.Unix(0, 0).UTC()
	out := make([]domain.Candle, len(closes))
	for i, c := range closes {
		out[i] = domain.Candle{Ticker: ticker, Timestamp: base.Add(time.Duration(i) * 24 * time.Hour), Close: c}
	}
	return out
}

func longSeries(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i%9)
	}
	return closes
}

func TestGetStockDataReturnsQuotesAndIndicators(t *testing.T) {
	market := &stubMarket{data: map[string]provider.TickerData{
		"TCS.NS": {
			Quote:   &domain.Quote{Ticker: "TCS.NS", Price: 3200},
			Candles: dailyCandles("TCS.NS", longSeries(80)),
		},
	}}
	cache := &stubQuoteCache{}
	svc := NewStockService(trace.NewNoopTracerProvider().Tracer("test"), market, cache)

	data, err := svc.GetStockData(context.Background(), []string{"tcs.ns"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Quotes["TCS.NS"] == nil || data.Quotes["TCS.NS"].Price != 3200 {
		t.Fatalf("unexpected quote: %+v", data.Quotes)
	}
	set := data.Indicators["TCS.NS"]
	if set == nil || set.RSI == nil || set.MACD == nil {
		t.Fatalf("expected full indicator set for 80-bar series, got %+v", set)
	}
	if cache.sets != 1 {
		t.Fatalf("expected quote to be cached, got %d sets", cache.sets)
	}
}

func TestGetStockDataMarksUnavailableTickers(t *testing.T) {
	market := &stubMarket{data: map[string]provider.TickerData{
		"GOOD.NS": {
			Quote:   &domain.Quote{Ticker: "GOOD.NS", Price: 10},
			Candles: dailyCandles("GOOD.NS", longSeries(80)),
		},
	}}
	svc := NewStockService(trace.NewNoopTracerProvider().Tracer("test"), market, &stubQuoteCache{})

	data, err := svc.GetStockData(context.Background(), []string{"GOOD.NS", "BAD.NS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := data.Unavailable["BAD.NS"]; !ok {
		t.Fatalf("expected BAD.NS marked unavailable, got %+v", data.Unavailable)
	}
	if data.Quotes["GOOD.NS"] == nil {
		t.Fatal("good ticker must not be affected by the bad one")
	}
}

func TestGetStockDataRejectsEmptyTickers(t *testing.T) {
	svc := NewStockService(trace.NewNoopTracerProvider().Tracer("test"), &stubMarket{}, &stubQuoteCache{})
	_, err := svc.GetStockData(context.Background(), []string{"", "  "})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecommendationsHoldOnMissingData(t *testing.T) {
	market := &stubMarket{data: map[string]provider.TickerData{
		"SHORT.NS": {Candles: dailyCandles("SHORT.NS", []float64{1, 2, 3})},
	}}
	svc := NewStockService(trace.NewNoopTracerProvider().Tracer("test"), market, &stubQuoteCache{})

	recs, err := svc.Recommendations(context.Background(), []string{"SHORT.NS", "GONE.NS"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, r := range recs {
		if r.Signal != domain.SignalHold {
			t.Fatalf("expected HOLD for %s, got %s", r.Ticker, r.Signal)
		}
	}
	byTicker := map[string]string{}
	for _, r := range recs {
		byTicker[r.Ticker] = r.Rationale
	}
	if byTicker["SHORT.NS"] != "insufficient data" {
		t.Fatalf("expected insufficient data for short series, got %q", byTicker["SHORT.NS"])
	}
	if byTicker["GONE.NS"] != "market data unavailable" {
		t.Fatalf("expected unavailable rationale, got %q", byTicker["GONE.NS"])
	}
}

func TestPricesPrefersCache(t *testing.T) {
	market := &stubMarket{quotes: map[string]*domain.Quote{
		"FRESH.NS": {Ticker: "FRESH.NS", Price: 42},
	}}
	cache := &stubQuoteCache{stored: map[string]*domain.Quote{
		"CACHED.NS": {Ticker: "CACHED.NS", Price: 100},
	}}
	svc := NewStockService(trace.NewNoopTracerProvider().Tracer("test"), market, cache)

	prices := svc.Prices(context.Background(), []string{"CACHED.NS", "FRESH.NS", "GONE.NS"})
	if prices["CACHED.NS"] != 100 {
		t.Fatalf("expected cached price, got %f", prices["CACHED.NS"])
	}
	if prices["FRESH.NS"] != 42 {
		t.Fatalf("expected provider price, got %f", prices["FRESH.NS"])
	}
	if _, ok := prices["GONE.NS"]; ok {
		t.Fatal("unpriceable ticker must be absent from the map")
	}
	if market.quoteCalls != 2 {
		t.Fatalf("expected 2 provider calls (cache hit skips), got %d", market.quoteCalls)
	}
}
