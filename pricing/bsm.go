package pricing

import (
	"math"

	"github.com/bcdannyboy/optviz/models"
)

// Calculate computes the Black-Scholes price and Greeks for a European option.
// It validates its own preconditions and returns a typed error instead of
// propagating NaN/Inf; theta and rho are annualized, vega is per unit of
// volatility.
func Calculate(params models.OptionParams) (models.GreeksResult, error) {
	if err := validate(params); err != nil {
		return models.GreeksResult{}, err
	}

	S := params.UnderlyingPrice
	K := params.Strike
	T := params.TimeToExpiry
	r := params.RiskFreeRate
	sigma := params.Volatility

	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	var price, delta, theta, rho float64
	if params.Type == models.Call {
		price = S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
		delta = normCDF(d1)
		rho = K * T * math.Exp(-r*T) * normCDF(d2)
		theta = -(S*normPDF(d1)*sigma)/(2*math.Sqrt(T)) - r*K*math.Exp(-r*T)*normCDF(d2)
	} else {
		price = K*math.Exp(-r*T)*normCDF(-d2) - S*normCDF(-d1)
		delta = -normCDF(-d1)
		rho = -K * T * math.Exp(-r*T) * normCDF(-d2)
		theta = -(S*normPDF(d1)*sigma)/(2*math.Sqrt(T)) - r*K*math.Exp(-r*T)*normCDF(-d2)
	}

	gamma := normPDF(d1) / (S * sigma * math.Sqrt(T))
	vega := S * normPDF(d1) * math.Sqrt(T)

	return models.GreeksResult{
		Price: price,
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}, nil
}

// Price is a convenience wrapper for callers that only need the premium.
func Price(params models.OptionParams) (float64, error) {
	result, err := Calculate(params)
	if err != nil {
		return 0, err
	}
	return result.Price, nil
}

// IntrinsicValue returns the option's exercise value at the current spot.
func IntrinsicValue(params models.OptionParams) (float64, error) {
	switch params.Type {
	case models.Call:
		return math.Max(0, params.UnderlyingPrice-params.Strike), nil
	case models.Put:
		return math.Max(0, params.Strike-params.UnderlyingPrice), nil
	default:
		return 0, models.ErrInvalidOptionType
	}
}

func validate(params models.OptionParams) error {
	if params.Type != models.Call && params.Type != models.Put {
		return models.ErrInvalidOptionType
	}
	if params.UnderlyingPrice <= 0 {
		return &models.DegenerateInputError{Field: "underlying price", Value: params.UnderlyingPrice}
	}
	if params.Strike <= 0 {
		return &models.DegenerateInputError{Field: "strike", Value: params.Strike}
	}
	if params.TimeToExpiry <= 0 {
		return &models.DegenerateInputError{Field: "time to expiry", Value: params.TimeToExpiry}
	}
	if params.Volatility <= 0 {
		return &models.DegenerateInputError{Field: "volatility", Value: params.Volatility}
	}
	return nil
}

// normCDF calculates the cumulative distribution function of the standard normal distribution
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// normPDF calculates the probability density function of the standard normal distribution
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
