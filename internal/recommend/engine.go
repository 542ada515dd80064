package recommend

import "github.com/bsujalnaik/GoogleHackathon/internal/domain"

const (
	oversoldRSI   = 30.0
	overboughtRSI = 70.0
)

// rule is one row of the classification table. Rules are evaluated in
// order and the first match wins, so the table reads top to bottom as the
// decision procedure.
type rule struct {
	matches   func(domain.IndicatorSet) bool
	signal    domain.TradeSignal
	rationale string
}

var rules = []rule{
	{
		matches: func(set domain.IndicatorSet) bool {
			return set.RSI == nil || set.MACD == nil
		},
		signal:    domain.SignalHold,
		rationale: "insufficient data",
	},
	{
		matches: func(set domain.IndicatorSet) bool {
			return *set.RSI < oversoldRSI && set.MACD.Histogram > 0
		},
		signal:    domain.SignalBuy,
		rationale: "oversold with bullish macd momentum",
	},
	{
		matches: func(set domain.IndicatorSet) bool {
			return *set.RSI > overboughtRSI && set.MACD.Histogram < 0
		},
		signal:    domain.SignalSell,
		rationale: "overbought with bearish macd momentum",
	},
}

// Classify maps one ticker's indicators to a buy/hold/sell recommendation.
// Deterministic and stateless: the same indicator set always yields the
// same recommendation.
func Classify(set domain.IndicatorSet) domain.Recommendation {
	for _, r := range rules {
		if r.matches(set) {
			return domain.Recommendation{Ticker: set.Ticker, Signal: r.signal, Rationale: r.rationale}
		}
	}
	return domain.Recommendation{
		Ticker:    set.Ticker,
		Signal:    domain.SignalHold,
		Rationale: "no actionable setup",
	}
}

// ClassifyAll preserves the input order of the indicator sets.
func ClassifyAll(sets []domain.IndicatorSet) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(sets))
	for _, set := range sets {
		out = append(out, Classify(set))
	}
	return out
}
