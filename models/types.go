package models

// OptionType identifies the European option variant being priced.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// OptionParams holds the five market inputs the pricing engine needs.
// TimeToExpiry is in years. Inputs are never mutated by the engine.
type OptionParams struct {
	UnderlyingPrice float64
	Strike          float64
	TimeToExpiry    float64
	RiskFreeRate    float64
	Volatility      float64
	Type            OptionType
}

// GreeksResult is the closed-form price plus first and second order
// sensitivities for a single option.
type GreeksResult struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

// SurfaceConfig describes a profitability sweep over spot and volatility
// ranges with strike, expiry and rate held fixed.
type SurfaceConfig struct {
	Strike       float64
	TimeToExpiry float64
	RiskFreeRate float64

	SpotMin float64
	SpotMax float64
	VolMin  float64
	VolMax  float64

	// GridResolution is the number of points per axis, endpoints included.
	// Zero or negative selects the default of 50.
	GridResolution int

	CallPurchasePrice float64
	PutPurchasePrice  float64
}

// SensitivityGrid is one variant's profit/loss matrix over the sweep.
// Profit is indexed [spotIndex][volatilityIndex]; both axes are ascending.
// Cells whose generated spot or volatility cannot be priced hold NaN.
type SensitivityGrid struct {
	SpotAxis       []float64
	VolatilityAxis []float64
	Profit         [][]float64
}
