package tradier

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Documented defaults used when live data cannot be retrieved or derived.
const (
	FallbackPrice        = 100.0
	FallbackVolatility   = 0.2
	FallbackRiskFreeRate = 0.01
)

const tradingDaysPerYear = 252

// HistoricalVolatility annualizes the standard deviation of close-to-close
// log returns over the supplied history. Days with nonpositive closes are
// skipped.
func HistoricalVolatility(history *QuoteHistory) (float64, error) {
	if history == nil || len(history.History.Day) < 2 {
		return 0, fmt.Errorf("not enough history to compute volatility")
	}

	days := history.History.Day
	returns := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		prev := days[i-1].Close
		cur := days[i].Close
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, math.Log(cur/prev))
	}
	if len(returns) < 2 {
		return 0, fmt.Errorf("not enough usable closes to compute volatility")
	}

	return stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear), nil
}

// Snapshot fetches daily history for the symbol and derives the current price
// (last close) and annualized historical volatility. Each field independently
// falls back to its documented default when retrieval or derivation fails.
// The risk-free rate is caller-supplied and left zero here.
func Snapshot(symbol, token string, lookbackYears int) MarketSnapshot {
	end := time.Now().Format("2006-01-02")
	start := time.Now().AddDate(-lookbackYears, 0, 0).Format("2006-01-02")

	history, err := GET_QUOTES(symbol, start, end, "daily", token)
	if err != nil {
		history = nil
	}
	return SnapshotFromHistory(symbol, history)
}

// SnapshotFromHistory derives a snapshot from an already-fetched history,
// applying the same per-field fallbacks as Snapshot.
func SnapshotFromHistory(symbol string, history *QuoteHistory) MarketSnapshot {
	snap := MarketSnapshot{Symbol: symbol}

	if history != nil && len(history.History.Day) > 0 {
		last := history.History.Day[len(history.History.Day)-1].Close
		if last > 0 {
			snap.Price = last
		}
	}
	if snap.Price == 0 {
		snap.Price = FallbackPrice
		snap.PriceIsFallback = true
	}

	vol, err := HistoricalVolatility(history)
	if err != nil || vol <= 0 {
		snap.Volatility = FallbackVolatility
		snap.VolatilityIsFallback = true
	} else {
		snap.Volatility = vol
	}

	return snap
}
