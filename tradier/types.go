package tradier

type QuoteHistory struct {
	History struct {
		Day []struct {
			Date   string  `json:"date"`
			Open   float64 `json:"open"`
			High   float64 `json:"high"`
			Low    float64 `json:"low"`
			Close  float64 `json:"close"`
			Volume int     `json:"volume"`
		} `json:"day"`
	} `json:"history"`
}

// MarketSnapshot is the numeric bundle the pricing layer consumes. The
// fallback flags record which fields could not be derived from live data
// and were substituted with the documented defaults.
type MarketSnapshot struct {
	Symbol       string
	Price        float64
	Volatility   float64
	RiskFreeRate float64

	PriceIsFallback      bool
	VolatilityIsFallback bool
	RateIsFallback       bool
}
