package pricing

import (
	"fmt"

	"github.com/bcdannyboy/optviz/models"
)

// ShadowGamma measures the delta response to a joint spot and volatility
// bump. priceChange and volChange are relative bumps (0.01 = 1%); the spot
// bump divides the delta difference, so it must be nonzero. Returns the
// up-scenario and down-scenario gammas.
func ShadowGamma(params models.OptionParams, priceChange, volChange float64) (float64, float64, error) {
	if priceChange == 0 {
		return 0, 0, fmt.Errorf("price change must be nonzero")
	}

	base, err := Calculate(params)
	if err != nil {
		return 0, 0, err
	}

	up := params
	up.UnderlyingPrice = params.UnderlyingPrice * (1 + priceChange)
	up.Volatility = params.Volatility * (1 + volChange)
	upResult, err := Calculate(up)
	if err != nil {
		return 0, 0, err
	}
	shadowUpGamma := (upResult.Delta - base.Delta) / (up.UnderlyingPrice - params.UnderlyingPrice)

	down := params
	down.UnderlyingPrice = params.UnderlyingPrice * (1 - priceChange)
	down.Volatility = params.Volatility * (1 - volChange)
	downResult, err := Calculate(down)
	if err != nil {
		return 0, 0, err
	}
	shadowDownGamma := (base.Delta - downResult.Delta) / (params.UnderlyingPrice - down.UnderlyingPrice)

	return shadowUpGamma, shadowDownGamma, nil
}

// SkewGamma calculates the vega sensitivity to volatility (volga) by central
// difference with the given absolute volatility step.
func SkewGamma(params models.OptionParams, volStep float64) (float64, error) {
	up := params
	up.Volatility = params.Volatility + volStep
	upResult, err := Calculate(up)
	if err != nil {
		return 0, err
	}

	down := params
	down.Volatility = params.Volatility - volStep
	downResult, err := Calculate(down)
	if err != nil {
		return 0, err
	}

	return (upResult.Vega - downResult.Vega) / (2 * volStep), nil
}
