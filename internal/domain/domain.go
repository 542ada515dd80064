package domain

import "time"

// Candle is one OHLCV bar of a price series, ascending by Timestamp.
type Candle struct {
	Ticker    string    `json:"ticker"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Quote is the latest traded price for a ticker.
type Quote struct {
	Ticker    string    `json:"ticker"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"change_pct"`
	Currency  string    `json:"currency,omitempty"`
	AsOf      time.Time `json:"as_of"`
}

// Holding is one position in the portfolio. Quantity is always positive in
// stored state; a holding that reaches zero is removed, not retained.
type Holding struct {
	Ticker      string  `json:"ticker"`
	Quantity    float64 `json:"quantity"`
	AverageCost float64 `json:"avg_price"`
}

// HoldingDelta is one adjustment applied by a portfolio update. Price is the
// execution price: required on increases (it feeds the weighted-average
// cost) and used on decreases to compute realized P/L.
type HoldingDelta struct {
	Ticker        string  `json:"ticker"`
	QuantityDelta float64 `json:"quantity_delta"`
	Price         float64 `json:"price"`
}

// Snapshot is one point of the portfolio's valuation history.
type Snapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalValue float64   `json:"total_value"`
}

// MAPoint is one value of a moving-average series.
type MAPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MACDValue is the latest MACD line, signal line and histogram.
type MACDValue struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// IndicatorSet holds the derived indicators for one ticker. RSI and MACD are
// nil when the series is too short to compute them; a moving average whose
// window exceeds the series length is simply absent from the map.
type IndicatorSet struct {
	Ticker         string            `json:"ticker"`
	MovingAverages map[int][]MAPoint `json:"moving_averages,omitempty"`
	RSI            *float64          `json:"rsi,omitempty"`
	MACD           *MACDValue        `json:"macd,omitempty"`
}

type TradeSignal string

const (
	SignalBuy  TradeSignal = "BUY"
	SignalHold TradeSignal = "HOLD"
	SignalSell TradeSignal = "SELL"
)

type Recommendation struct {
	Ticker    string      `json:"ticker"`
	Signal    TradeSignal `json:"signal"`
	Rationale string      `json:"rationale"`
}

// HoldingValuation is one holding priced against the market. CurrentValue
// and UnrealizedPL are nil when no price was available for the ticker.
type HoldingValuation struct {
	Ticker       string   `json:"ticker"`
	Quantity     float64  `json:"quantity"`
	AverageCost  float64  `json:"avg_price"`
	Price        *float64 `json:"price,omitempty"`
	CurrentValue *float64 `json:"current_value"`
	UnrealizedPL *float64 `json:"unrealized_pl"`
	Allocation   float64  `json:"allocation"`
}

// Valuation is the portfolio priced at one instant. Warnings lists tickers
// whose prices were unavailable; those holdings carry nil values and are
// excluded from TotalValue and the allocation denominator.
type Valuation struct {
	Holdings     []HoldingValuation `json:"holdings"`
	TotalValue   float64            `json:"total_value"`
	TotalCost    float64            `json:"total_cost"`
	UnrealizedPL float64            `json:"unrealized_pl"`
	AsOf         time.Time          `json:"as_of"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// RealizedPL reports profit booked by a position decrease. It is returned
// to the caller and never stored in the portfolio itself.
type RealizedPL struct {
	Ticker string  `json:"ticker"`
	Amount float64 `json:"amount"`
}

// TaxProfile is the validated input of the tax engine. Investments maps a
// deduction section code (e.g. "80C") to the amount invested under it.
type TaxProfile struct {
	GrossIncome     float64            `json:"income"`
	Investments     map[string]float64 `json:"investments"`
	OtherDeductions float64            `json:"deductions"`
	HasSalary       bool               `json:"has_salary"`
	HasCapitalGains bool               `json:"has_capital_gains"`
	HasBusiness     bool               `json:"has_business_income"`
}

// SlabAmount is one line of a tax breakdown: the portion of taxable income
// that fell into the slab and the tax charged on it. To is 0 for the open
// top slab.
type SlabAmount struct {
	From   float64 `json:"from"`
	To     float64 `json:"to,omitempty"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type TaxResult struct {
	TaxableIncome float64      `json:"taxable_income"`
	TaxPayable    float64      `json:"tax_payable"`
	Breakdown     []SlabAmount `json:"breakdown"`
}

// TaxSuggestion is one deduction section with remaining headroom and the
// tax saved by filling it at the taxpayer's marginal rate.
type TaxSuggestion struct {
	Section   string  `json:"section"`
	Headroom  float64 `json:"headroom"`
	TaxSaved  float64 `json:"tax_saved"`
	Rationale string  `json:"rationale"`
}

type ITRForm string

const (
	ITR1 ITRForm = "ITR-1"
	ITR2 ITRForm = "ITR-2"
	ITR3 ITRForm = "ITR-3"
)
