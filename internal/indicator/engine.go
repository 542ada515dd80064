package indicator

import (
	"math"
	"sort"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
)

const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// Normalize sorts candles ascending by timestamp and drops duplicate bars,
// keeping the last one seen for a timestamp. Every computation in this
// package operates on normalized input.
func Normalize(in []domain.Candle) []domain.Candle {
	out := make([]domain.Candle, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	dedup := out[:0]
	for _, c := range out {
		if len(dedup) > 0 && dedup[len(dedup)-1].Timestamp.Equal(c.Timestamp) {
			dedup[len(dedup)-1] = c
			continue
		}
		dedup = append(dedup, c)
	}
	return dedup
}

// SMA returns the simple moving average of the closes: one point per
// position where at least window closes exist, so the output length is
// len(candles)-window+1. A series shorter than the window yields nil.
func SMA(candles []domain.Candle, window int) []domain.MAPoint {
	if window <= 0 {
		return nil
	}
	candles = Normalize(candles)
	if len(candles) < window {
		return nil
	}

	out := make([]domain.MAPoint, 0, len(candles)-window+1)
	var sum float64
	for i, c := range candles {
		sum += c.Close
		if i >= window {
			sum -= candles[i-window].Close
		}
		if i >= window-1 {
			out = append(out, domain.MAPoint{
				Timestamp: c.Timestamp,
				Value:     sum / float64(window),
			})
		}
	}
	return out
}

// RSI returns the latest Wilder-smoothed RSI, or nil when the series has
// fewer than period+1 bars. A series with no gains and no losses reads as
// neutral 50.
func RSI(candles []domain.Candle, period int) *float64 {
	series := RSISeries(closes(Normalize(candles)), period)
	if len(series) == 0 {
		return nil
	}
	last := series[len(series)-1]
	if math.IsNaN(last) {
		return nil
	}
	return &last
}

// RSISeries computes Wilder's RSI over the closes. Positions before the
// first full period are NaN.
func RSISeries(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) <= period {
		return nil
	}
	series := make([]float64, len(closes))
	for i := range series {
		series[i] = math.NaN()
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	series[period] = rsiFromAvg(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		series[i] = rsiFromAvg(avgGain, avgLoss)
	}
	return series
}

func rsiFromAvg(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// MACD returns the latest MACD line, signal line and histogram, or nil when
// the series is shorter than slow+signal bars.
func MACD(candles []domain.Candle, fast, slow, signal int) *domain.MACDValue {
	candles = Normalize(candles)
	values := closes(candles)
	if fast <= 0 || slow <= fast || signal <= 0 || len(values) < slow+signal {
		return nil
	}
	macdLine, signalLine := macdSeries(values, fast, slow, signal)
	last := len(values) - 1
	return &domain.MACDValue{
		Line:      macdLine[last],
		Signal:    signalLine[last],
		Histogram: macdLine[last] - signalLine[last],
	}
}

func macdSeries(values []float64, fast, slow, signal int) ([]float64, []float64) {
	fastEMA := emaSeries(values, fast)
	slowEMA := emaSeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signal)
	return macdLine, signalLine
}

func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Compute derives the full indicator set for one ticker: a moving average
// per requested window plus RSI and MACD at their default parameters.
// Indicators the series is too short for are left absent.
func Compute(ticker string, candles []domain.Candle, windows ...int) domain.IndicatorSet {
	candles = Normalize(candles)
	set := domain.IndicatorSet{Ticker: ticker}

	for _, w := range windows {
		points := SMA(candles, w)
		if len(points) == 0 {
			continue
		}
		if set.MovingAverages == nil {
			set.MovingAverages = make(map[int][]domain.MAPoint, len(windows))
		}
		set.MovingAverages[w] = points
	}

	set.RSI = RSI(candles, DefaultRSIPeriod)
	set.MACD = MACD(candles, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
	return set
}

func closes(candles []domain.Candle) []float64 {
	values := make([]float64, len(candles))
	for i := range candles {
		values[i] = candles[i].Close
	}
	return values
}
