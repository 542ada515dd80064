package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

const (
	defaultBaseURL      = "https://query1.finance.yahoo.com"
	defaultFetchTimeout = 10 * time.Second
)

// YahooProvider fetches OHLCV series and latest quotes from the Yahoo
// Finance public chart API. It holds no state beyond the HTTP client and
// is safe for concurrent use.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer

	// FetchTimeout bounds each per-ticker call issued by FetchAll.
	FetchTimeout time.Duration
}

func NewYahooProvider(tracer trace.Tracer) *YahooProvider {
	return &YahooProvider{
		client:       &http.Client{Timeout: 30 * time.Second},
		baseURL:      defaultBaseURL,
		tracer:       tracer,
		FetchTimeout: defaultFetchTimeout,
	}
}

// NewYahooProviderWithBaseURL is used by tests to point at a local server.
func NewYahooProviderWithBaseURL(tracer trace.Tracer, baseURL string) *YahooProvider {
	p := NewYahooProvider(tracer)
	p.baseURL = baseURL
	return p
}

// yahooChart mirrors the chart API response shape. OHLCV arrays carry
// nulls for non-trading days, hence the interface{} elements.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (p *YahooProvider) fetchChart(ctx context.Context, ticker, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		p.baseURL, url.PathEscape(ticker), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return &chart, nil
}

// GetCandles returns the daily series for one ticker, ascending by
// timestamp with null bars (holidays) skipped.
func (p *YahooProvider) GetCandles(ctx context.Context, ticker, rng string) ([]domain.Candle, error) {
	_, span := p.tracer.Start(ctx, "yahoo.get-candles")
	defer span.End()

	chart, err := p.fetchChart(ctx, ticker, "1d", rng)
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", ticker)
	}
	quote := result.Indicators.Quote[0]

	// Yahoo can return ragged arrays on partial sessions; only positions
	// present in every array are usable.
	n := len(result.Timestamp)
	for _, arr := range [][]interface{}{quote.Open, quote.High, quote.Low, quote.Close, quote.Volume} {
		if len(arr) < n {
			n = len(arr)
		}
	}

	bars := make([]domain.Candle, 0, n)
	for i := 0; i < n; i++ {
		ts := result.Timestamp[i]
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		bars = append(bars, domain.Candle{
			Ticker:    ticker,
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      o,
			High:      h,
			Low:       l,
			Close:     c,
			Volume:    toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	return bars, nil
}

// GetQuote returns the latest price and day change for one ticker.
func (p *YahooProvider) GetQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	_, span := p.tracer.Start(ctx, "yahoo.get-quote")
	defer span.End()

	chart, err := p.fetchChart(ctx, ticker, "1d", "1d")
	if err != nil {
		return nil, err
	}

	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: no price for %s", ticker)
	}
	q := &domain.Quote{
		Ticker:   ticker,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
		AsOf:     time.Now().UTC(),
	}
	if meta.PreviousClose > 0 {
		q.ChangePct = (meta.RegularMarketPrice - meta.PreviousClose) / meta.PreviousClose * 100
	}
	return q, nil
}

// TickerData is the per-ticker result of a fan-out fetch. Err carries a
// DataUnavailableError when the ticker could not be served; the other
// tickers are unaffected.
type TickerData struct {
	Quote   *domain.Quote
	Candles []domain.Candle
	Err     error
}

// FetchAll retrieves quote and history for every ticker concurrently, one
// goroutine per ticker with its own timeout. A failure or timeout for one
// ticker never aborts the rest.
func (p *YahooProvider) FetchAll(ctx context.Context, tickers []string, rng string) map[string]TickerData {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-all")
	defer span.End()

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out = make(map[string]TickerData, len(tickers))
	)
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, p.FetchTimeout)
			defer cancel()

			data := TickerData{}
			candles, err := p.GetCandles(callCtx, ticker, rng)
			if err != nil {
				data.Err = domain.Unavailable(ticker, err)
			} else {
				data.Candles = candles
				quote, err := p.GetQuote(callCtx, ticker)
				if err != nil {
					data.Err = domain.Unavailable(ticker, err)
				} else {
					data.Quote = quote
				}
			}

			mu.Lock()
			out[ticker] = data
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()
	return out
}
