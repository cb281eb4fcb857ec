package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/bcdannyboy/optviz/models"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

func referenceParams(typ models.OptionType) models.OptionParams {
	// Classic parameters: S=100, K=100, T=1, r=0.05, sigma=0.2
	return models.OptionParams{
		UnderlyingPrice: 100,
		Strike:          100,
		TimeToExpiry:    1,
		RiskFreeRate:    0.05,
		Volatility:      0.2,
		Type:            typ,
	}
}

func TestCalculateReferenceCase(t *testing.T) {
	call, err := Calculate(referenceParams(models.Call))
	if err != nil {
		t.Fatalf("call err: %v", err)
	}
	put, err := Calculate(referenceParams(models.Put))
	if err != nil {
		t.Fatalf("put err: %v", err)
	}

	if !almostEqual(call.Price, 10.450583572185565, 1e-9) {
		t.Fatalf("call price mismatch: got=%v", call.Price)
	}
	if !almostEqual(put.Price, 5.573526022256971, 1e-9) {
		t.Fatalf("put price mismatch: got=%v", put.Price)
	}
	if !almostEqual(call.Delta, 0.6368306511756191, 1e-9) {
		t.Fatalf("call delta mismatch: got=%v", call.Delta)
	}
	if !almostEqual(put.Delta, -0.3631693488243809, 1e-9) {
		t.Fatalf("put delta mismatch: got=%v", put.Delta)
	}
	if !almostEqual(call.Gamma, 0.018762017, 1e-6) {
		t.Fatalf("call gamma mismatch: got=%v", call.Gamma)
	}
	if !almostEqual(call.Vega, 37.524035, 1e-4) {
		t.Fatalf("call vega mismatch: got=%v", call.Vega)
	}
	if !almostEqual(call.Rho, 53.232482, 1e-4) {
		t.Fatalf("call rho mismatch: got=%v", call.Rho)
	}
	if !almostEqual(put.Rho, -41.890461, 1e-4) {
		t.Fatalf("put rho mismatch: got=%v", put.Rho)
	}
	if !almostEqual(call.Theta, -6.414028, 1e-4) {
		t.Fatalf("call theta mismatch: got=%v", call.Theta)
	}
	// Put theta follows the documented formula, which subtracts the
	// discounting term for both variants (see DESIGN.md).
	if !almostEqual(put.Theta, -5.846927, 1e-4) {
		t.Fatalf("put theta mismatch: got=%v", put.Theta)
	}
}

func TestPutCallParity(t *testing.T) {
	// C - P = S - K*e^{-rT}
	call, _ := Calculate(referenceParams(models.Call))
	put, _ := Calculate(referenceParams(models.Put))

	left := call.Price - put.Price
	right := 100 - 100*math.Exp(-0.05)

	if !almostEqual(left, right, 1e-9) {
		t.Fatalf("parity mismatch: left=%v right=%v", left, right)
	}
}

func TestDeltaParity(t *testing.T) {
	call, _ := Calculate(referenceParams(models.Call))
	put, _ := Calculate(referenceParams(models.Put))

	if !almostEqual(call.Delta-put.Delta, 1.0, 1e-12) {
		t.Fatalf("delta parity mismatch: call=%v put=%v", call.Delta, put.Delta)
	}
}

func TestGammaVegaSharedAcrossVariants(t *testing.T) {
	call, _ := Calculate(referenceParams(models.Call))
	put, _ := Calculate(referenceParams(models.Put))

	if call.Gamma != put.Gamma {
		t.Fatalf("gamma differs: call=%v put=%v", call.Gamma, put.Gamma)
	}
	if call.Vega != put.Vega {
		t.Fatalf("vega differs: call=%v put=%v", call.Vega, put.Vega)
	}
}

func TestIntrinsicValueLimit(t *testing.T) {
	// As T -> 0+ price approaches intrinsic value.
	call := models.OptionParams{
		UnderlyingPrice: 110, Strike: 100, TimeToExpiry: 1e-8,
		RiskFreeRate: 0.05, Volatility: 0.2, Type: models.Call,
	}
	put := models.OptionParams{
		UnderlyingPrice: 90, Strike: 100, TimeToExpiry: 1e-8,
		RiskFreeRate: 0.05, Volatility: 0.2, Type: models.Put,
	}

	callResult, err := Calculate(call)
	if err != nil {
		t.Fatalf("call err: %v", err)
	}
	putResult, err := Calculate(put)
	if err != nil {
		t.Fatalf("put err: %v", err)
	}

	if !almostEqual(callResult.Price, 10, 1e-4) {
		t.Fatalf("call intrinsic limit mismatch: got=%v", callResult.Price)
	}
	if !almostEqual(putResult.Price, 10, 1e-4) {
		t.Fatalf("put intrinsic limit mismatch: got=%v", putResult.Price)
	}

	iv, err := IntrinsicValue(call)
	if err != nil || iv != 10 {
		t.Fatalf("intrinsic value mismatch: got=%v err=%v", iv, err)
	}
}

func TestSmallSigmaDelta(t *testing.T) {
	deepITM := models.OptionParams{
		UnderlyingPrice: 120, Strike: 100, TimeToExpiry: 1,
		RiskFreeRate: 0.05, Volatility: 0.001, Type: models.Call,
	}
	deepOTM := deepITM
	deepOTM.UnderlyingPrice = 80

	itm, _ := Calculate(deepITM)
	otm, _ := Calculate(deepOTM)

	if !almostEqual(itm.Delta, 1, 1e-6) {
		t.Fatalf("deep ITM delta mismatch: got=%v", itm.Delta)
	}
	if !almostEqual(otm.Delta, 0, 1e-6) {
		t.Fatalf("deep OTM delta mismatch: got=%v", otm.Delta)
	}
}

func TestInvalidOptionType(t *testing.T) {
	params := referenceParams("straddle")
	_, err := Calculate(params)
	if !errors.Is(err, models.ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType, got %v", err)
	}

	_, err = IntrinsicValue(params)
	if !errors.Is(err, models.ErrInvalidOptionType) {
		t.Fatalf("expected ErrInvalidOptionType from IntrinsicValue, got %v", err)
	}
}

func TestDegenerateInputs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.OptionParams)
	}{
		{"zero expiry", func(p *models.OptionParams) { p.TimeToExpiry = 0 }},
		{"negative expiry", func(p *models.OptionParams) { p.TimeToExpiry = -1 }},
		{"zero volatility", func(p *models.OptionParams) { p.Volatility = 0 }},
		{"negative volatility", func(p *models.OptionParams) { p.Volatility = -0.2 }},
		{"zero spot", func(p *models.OptionParams) { p.UnderlyingPrice = 0 }},
		{"zero strike", func(p *models.OptionParams) { p.Strike = 0 }},
	}

	for _, tc := range cases {
		params := referenceParams(models.Call)
		tc.mutate(&params)
		_, err := Calculate(params)

		var degenerate *models.DegenerateInputError
		if !errors.As(err, &degenerate) {
			t.Fatalf("%s: expected DegenerateInputError, got %v", tc.name, err)
		}
	}
}

func TestNormCDFMatchesDistuv(t *testing.T) {
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	for x := -6.0; x <= 6.0; x += 0.25 {
		if !almostEqual(normCDF(x), normal.CDF(x), 1e-12) {
			t.Fatalf("normCDF(%v) mismatch: got=%v want=%v", x, normCDF(x), normal.CDF(x))
		}
		if !almostEqual(normPDF(x), normal.Prob(x), 1e-12) {
			t.Fatalf("normPDF(%v) mismatch: got=%v want=%v", x, normPDF(x), normal.Prob(x))
		}
	}
}

func TestPutCallParityRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		params := models.OptionParams{
			UnderlyingPrice: 10 + 190*rng.Float64(),
			Strike:          10 + 190*rng.Float64(),
			TimeToExpiry:    0.05 + 2.95*rng.Float64(),
			RiskFreeRate:    0.1 * rng.Float64(),
			Volatility:      0.05 + 0.75*rng.Float64(),
		}

		params.Type = models.Call
		call, err := Calculate(params)
		if err != nil {
			t.Fatalf("call err: %v", err)
		}
		params.Type = models.Put
		put, err := Calculate(params)
		if err != nil {
			t.Fatalf("put err: %v", err)
		}

		want := params.UnderlyingPrice - params.Strike*math.Exp(-params.RiskFreeRate*params.TimeToExpiry)
		if !almostEqual(call.Price-put.Price, want, 1e-6) {
			t.Fatalf("parity mismatch for %+v: got=%v want=%v", params, call.Price-put.Price, want)
		}
		if !almostEqual(call.Delta-put.Delta, 1.0, 1e-9) {
			t.Fatalf("delta parity mismatch for %+v", params)
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
