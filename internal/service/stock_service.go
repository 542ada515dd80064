package service

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/indicator"
	"github.com/bsujalnaik/GoogleHackathon/internal/provider"
	"github.com/bsujalnaik/GoogleHackathon/internal/recommend"
)

const (
	// history window fetched for indicator math; MACD needs the most
	// bars (slow+signal), one year of dailies is plenty
	indicatorRange = "1y"
)

var defaultMAWindows = []int{20, 50}

type MarketData interface {
	FetchAll(ctx context.Context, tickers []string, rng string) map[string]provider.TickerData
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
}

type QuoteCache interface {
	Get(ctx context.Context, ticker string) (*domain.Quote, error)
	Set(ctx context.Context, q *domain.Quote) error
}

// StockService combines the market-data provider, the quote cache and the
// indicator/recommendation engines behind one API-facing surface.
type StockService struct {
	tracer  trace.Tracer
	market  MarketData
	quotes  QuoteCache
	windows []int
}

func NewStockService(tracer trace.Tracer, market MarketData, quotes QuoteCache) *StockService {
	return &StockService{
		tracer:  tracer,
		market:  market,
		quotes:  quotes,
		windows: defaultMAWindows,
	}
}

// StockData is the /api/stocks response body: latest quotes and derived
// indicators per ticker, with unavailable tickers annotated rather than
// failing the request.
type StockData struct {
	Quotes      map[string]*domain.Quote        `json:"data"`
	Indicators  map[string]*domain.IndicatorSet `json:"indicators"`
	Unavailable map[string]string               `json:"unavailable,omitempty"`
}

// GetStockData fetches every ticker concurrently and computes the
// indicator set from its daily series. A failed ticker lands in
// Unavailable; the rest of the response is intact.
func (s *StockService) GetStockData(ctx context.Context, tickers []string) (*StockData, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-stock-data")
	defer span.End()

	tickers = normalizeTickers(tickers)
	if len(tickers) == 0 {
		return nil, domain.Validationf("at least one ticker is required")
	}

	out := &StockData{
		Quotes:     make(map[string]*domain.Quote, len(tickers)),
		Indicators: make(map[string]*domain.IndicatorSet, len(tickers)),
	}
	for ticker, data := range s.market.FetchAll(ctx, tickers, indicatorRange) {
		if data.Err != nil {
			if out.Unavailable == nil {
				out.Unavailable = make(map[string]string)
			}
			out.Unavailable[ticker] = "market data unavailable"
			continue
		}
		out.Quotes[ticker] = data.Quote
		set := indicator.Compute(ticker, data.Candles, s.windows...)
		out.Indicators[ticker] = &set
		s.cacheQuote(ctx, data.Quote)
	}
	return out, nil
}

// Recommendations classifies each ticker's indicators through the rule
// table, ordered by ticker. Tickers without market data hold with an
// explanatory rationale.
func (s *StockService) Recommendations(ctx context.Context, tickers []string) ([]domain.Recommendation, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.recommendations")
	defer span.End()

	tickers = normalizeTickers(tickers)
	if len(tickers) == 0 {
		return []domain.Recommendation{}, nil
	}

	fetched := s.market.FetchAll(ctx, tickers, indicatorRange)
	recs := make([]domain.Recommendation, 0, len(tickers))
	for _, ticker := range tickers {
		data := fetched[ticker]
		if data.Err != nil {
			recs = append(recs, domain.Recommendation{
				Ticker:    ticker,
				Signal:    domain.SignalHold,
				Rationale: "market data unavailable",
			})
			continue
		}
		recs = append(recs, recommend.Classify(indicator.Compute(ticker, data.Candles, s.windows...)))
	}
	return recs, nil
}

// Prices resolves a live price per ticker, cache first. Tickers that
// cannot be priced are simply absent from the map; the valuation layer
// treats absence as a warning, not a failure.
func (s *StockService) Prices(ctx context.Context, tickers []string) map[string]float64 {
	ctx, span := s.tracer.Start(ctx, "stock-service.prices")
	defer span.End()

	tickers = normalizeTickers(tickers)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		prices = make(map[string]float64, len(tickers))
	)
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			if s.quotes != nil {
				if cached, err := s.quotes.Get(ctx, ticker); err != nil {
					log.Printf("quote cache read error for %s: %v", ticker, err)
				} else if cached != nil {
					mu.Lock()
					prices[ticker] = cached.Price
					mu.Unlock()
					return
				}
			}

			quote, err := s.market.GetQuote(ctx, ticker)
			if err != nil {
				log.Printf("price fetch failed for %s: %v", ticker, err)
				return
			}
			s.cacheQuote(ctx, quote)
			mu.Lock()
			prices[ticker] = quote.Price
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()
	return prices
}

func (s *StockService) cacheQuote(ctx context.Context, q *domain.Quote) {
	if s.quotes == nil || q == nil {
		return
	}
	if err := s.quotes.Set(ctx, q); err != nil {
		log.Printf("quote cache write error for %s: %v", q.Ticker, err)
	}
}

func normalizeTickers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		ticker := strings.ToUpper(strings.TrimSpace(t))
		if ticker == "" {
			continue
		}
		if _, dup := seen[ticker]; dup {
			continue
		}
		seen[ticker] = struct{}{}
		out = append(out, ticker)
	}
	sort.Strings(out)
	return out
}
