package surface

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/bcdannyboy/optviz/models"
	"github.com/bcdannyboy/optviz/pricing"
	mpb "github.com/vbauerster/mpb/v7"
	"gonum.org/v1/gonum/floats"
)

// DefaultGridResolution is the number of points per axis when the config
// leaves GridResolution unset.
const DefaultGridResolution = 50

// Build sweeps the call and put profitability surfaces over the configured
// spot and volatility ranges. Each cell holds theoretical price minus the
// variant's purchase price. A grid point whose spot or volatility cannot be
// priced yields NaN in both matrices rather than aborting the sweep.
func Build(cfg models.SurfaceConfig) (models.SensitivityGrid, models.SensitivityGrid, error) {
	return BuildWithProgress(cfg, nil)
}

// BuildWithProgress is Build with an optional progress bar that advances once
// per completed spot row. A nil bar disables progress reporting.
//
// The sweep is 2*n*n engine calls with no dependencies between cells, so rows
// are fanned out to a worker per CPU; each worker writes only rows it owns.
// Cost grows quadratically with resolution, which stays well under a second
// for the default 50x50 but is worth remembering past a few hundred per axis.
func BuildWithProgress(cfg models.SurfaceConfig, bar *mpb.Bar) (models.SensitivityGrid, models.SensitivityGrid, error) {
	n := cfg.GridResolution
	if n <= 0 {
		n = DefaultGridResolution
	}
	if n < 2 {
		return models.SensitivityGrid{}, models.SensitivityGrid{}, fmt.Errorf("grid resolution must be at least 2, got %d", n)
	}
	if cfg.SpotMax < cfg.SpotMin {
		return models.SensitivityGrid{}, models.SensitivityGrid{}, fmt.Errorf("spot range inverted: min %g > max %g", cfg.SpotMin, cfg.SpotMax)
	}
	if cfg.VolMax < cfg.VolMin {
		return models.SensitivityGrid{}, models.SensitivityGrid{}, fmt.Errorf("volatility range inverted: min %g > max %g", cfg.VolMin, cfg.VolMax)
	}

	spotAxis := floats.Span(make([]float64, n), cfg.SpotMin, cfg.SpotMax)
	volAxis := floats.Span(make([]float64, n), cfg.VolMin, cfg.VolMax)

	callProfit := make([][]float64, n)
	putProfit := make([][]float64, n)

	numWorkers := runtime.NumCPU()
	if numWorkers > n {
		numWorkers = n
	}

	rows := make(chan int, n)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				callRow := make([]float64, n)
				putRow := make([]float64, n)
				for j, vol := range volAxis {
					callRow[j] = cellProfit(spotAxis[i], vol, cfg, models.Call, cfg.CallPurchasePrice)
					putRow[j] = cellProfit(spotAxis[i], vol, cfg, models.Put, cfg.PutPurchasePrice)
				}
				callProfit[i] = callRow
				putProfit[i] = putRow
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	callGrid := models.SensitivityGrid{
		SpotAxis:       spotAxis,
		VolatilityAxis: volAxis,
		Profit:         callProfit,
	}
	putGrid := models.SensitivityGrid{
		SpotAxis:       spotAxis,
		VolatilityAxis: volAxis,
		Profit:         putProfit,
	}
	return callGrid, putGrid, nil
}

func cellProfit(spot, vol float64, cfg models.SurfaceConfig, variant models.OptionType, purchasePrice float64) float64 {
	price, err := pricing.Price(models.OptionParams{
		UnderlyingPrice: spot,
		Strike:          cfg.Strike,
		TimeToExpiry:    cfg.TimeToExpiry,
		RiskFreeRate:    cfg.RiskFreeRate,
		Volatility:      vol,
		Type:            variant,
	})
	if err != nil {
		return math.NaN()
	}
	return price - purchasePrice
}
