package recommend

import (
	"testing"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

func set(rsi float64, histogram float64) domain.IndicatorSet {
	return domain.IndicatorSet{
		Ticker: "TCS.NS",
		RSI:    &rsi,
		MACD:   &domain.MACDValue{Histogram: histogram},
	}
}

func TestClassifyBuyOnOversoldBullish(t *testing.T) {
	rec := Classify(set(25, 0.5))
	if rec.Signal != domain.SignalBuy {
		t.Fatalf("expected BUY, got %s", rec.Signal)
	}
}

func TestClassifySellOnOverboughtBearish(t *testing.T) {
	rec := Classify(set(82, -1.2))
	if rec.Signal != domain.SignalSell {
		t.Fatalf("expected SELL, got %s", rec.Signal)
	}
}

func TestClassifyHoldByDefault(t *testing.T) {
	cases := []domain.IndicatorSet{
		set(50, 0.5),  // neutral rsi
		set(25, -0.5), // oversold but bearish momentum
		set(82, 0.5),  // overbought but bullish momentum
	}
	for _, c := range cases {
		if rec := Classify(c); rec.Signal != domain.SignalHold {
			t.Fatalf("expected HOLD for rsi=%f hist=%f, got %s", *c.RSI, c.MACD.Histogram, rec.Signal)
		}
	}
}

func TestClassifyMissingIndicatorsHoldsWithRationale(t *testing.T) {
	rec := Classify(domain.IndicatorSet{Ticker: "NEW.NS"})
	if rec.Signal != domain.SignalHold {
		t.Fatalf("expected HOLD, got %s", rec.Signal)
	}
	if rec.Rationale != "insufficient data" {
		t.Fatalf("expected insufficient data rationale, got %q", rec.Rationale)
	}

	rsi := 20.0
	rec = Classify(domain.IndicatorSet{Ticker: "NEW.NS", RSI: &rsi})
	if rec.Signal != domain.SignalHold || rec.Rationale != "insufficient data" {
		t.Fatalf("expected HOLD/insufficient data with missing macd, got %+v", rec)
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	sets := []domain.IndicatorSet{set(25, 1), set(50, 0), set(75, -1)}
	sets[0].Ticker = "A"
	sets[1].Ticker = "B"
	sets[2].Ticker = "C"

	recs := ClassifyAll(sets)
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(recs))
	}
	if recs[0].Ticker != "A" || recs[1].Ticker != "B" || recs[2].Ticker != "C" {
		t.Fatalf("order not preserved: %v", recs)
	}
	if recs[0].Signal != domain.SignalBuy || recs[2].Signal != domain.SignalSell {
		t.Fatalf("unexpected signals: %v", recs)
	}
}
