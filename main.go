package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/bcdannyboy/optviz/models"
	"github.com/bcdannyboy/optviz/pricing"
	optvizslack "github.com/bcdannyboy/optviz/slack"
	"github.com/bcdannyboy/optviz/surface"
	"github.com/bcdannyboy/optviz/tradier"
	"github.com/joho/godotenv"
	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"
)

const (
	defaultSymbol       = "AAPL"
	defaultTimeToExpiry = 1.0
	lookbackYears       = 1
	gridResolution      = 50

	// Default sweep windows around the snapshot, matching the sidebar
	// defaults of the interactive tool this replaces.
	spotWindow = 10.0
	volWindow  = 0.05
)

type SurfaceReport struct {
	Snapshot     tradier.MarketSnapshot
	Strike       float64
	TimeToExpiry float64
	CallGreeks   models.GreeksResult
	PutGreeks    models.GreeksResult
	CallSurface  models.SensitivityGrid
	PutSurface   models.SensitivityGrid
}

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("No .env file found, using process environment")
	}

	appToken := os.Getenv("SLACK_APP_TOKEN")
	botToken := os.Getenv("SLACK_BOT_TOKEN")
	if appToken != "" && botToken != "" {
		bot := optvizslack.NewSlackBot(appToken, botToken)
		log.Fatal(bot.Start())
	}

	symbol := os.Getenv("SYMBOL")
	if symbol == "" {
		symbol = defaultSymbol
	}
	tradierKey := os.Getenv("TRADIER_KEY")

	snap := tradier.Snapshot(symbol, tradierKey, lookbackYears)
	snap.RiskFreeRate, snap.RateIsFallback = riskFreeRateFromEnv()

	fmt.Printf("Current price for %s: %.2f%s\n", symbol, snap.Price, fallbackTag(snap.PriceIsFallback))
	fmt.Printf("Historical volatility: %.4f%s\n", snap.Volatility, fallbackTag(snap.VolatilityIsFallback))
	fmt.Printf("Risk-free rate: %.4f%s\n", snap.RiskFreeRate, fallbackTag(snap.RateIsFallback))

	T := floatFromEnv("TIME_TO_EXPIRY", defaultTimeToExpiry)

	params := models.OptionParams{
		UnderlyingPrice: snap.Price,
		Strike:          snap.Price, // at the money
		TimeToExpiry:    T,
		RiskFreeRate:    snap.RiskFreeRate,
		Volatility:      snap.Volatility,
		Type:            models.Call,
	}
	callResult, err := pricing.Calculate(params)
	if err != nil {
		log.Fatalf("call pricing failed: %s", err)
	}
	params.Type = models.Put
	putResult, err := pricing.Calculate(params)
	if err != nil {
		log.Fatalf("put pricing failed: %s", err)
	}

	fmt.Printf("Call: price %.2f delta %.4f gamma %.4f theta %.4f vega %.4f rho %.4f\n",
		callResult.Price, callResult.Delta, callResult.Gamma, callResult.Theta, callResult.Vega, callResult.Rho)
	fmt.Printf("Put:  price %.2f delta %.4f gamma %.4f theta %.4f vega %.4f rho %.4f\n",
		putResult.Price, putResult.Delta, putResult.Gamma, putResult.Theta, putResult.Vega, putResult.Rho)

	cfg := models.SurfaceConfig{
		Strike:            params.Strike,
		TimeToExpiry:      T,
		RiskFreeRate:      snap.RiskFreeRate,
		SpotMin:           math.Max(1, snap.Price-spotWindow),
		SpotMax:           snap.Price + spotWindow,
		VolMin:            math.Max(0.01, snap.Volatility-volWindow),
		VolMax:            snap.Volatility + volWindow,
		GridResolution:    gridResolution,
		CallPurchasePrice: math.Round(callResult.Price),
		PutPurchasePrice:  math.Round(putResult.Price),
	}

	start := time.Now()
	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(gridResolution),
		mpb.PrependDecorators(
			decor.Name("Sweep"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	callGrid, putGrid, err := surface.BuildWithProgress(cfg, bar)
	if err != nil {
		log.Fatalf("surface build failed: %s", err)
	}
	p.Wait()

	var cpuUsage float64
	percentage, err := cpu.Percent(time.Second, false)
	if err == nil && len(percentage) > 0 {
		cpuUsage = percentage[0]
	}
	fmt.Printf("Sweep complete in %v, CPU usage: %.2f%%\n", time.Since(start), cpuUsage)

	report := SurfaceReport{
		Snapshot:     snap,
		Strike:       cfg.Strike,
		TimeToExpiry: T,
		CallGreeks:   callResult,
		PutGreeks:    putResult,
		CallSurface:  callGrid,
		PutSurface:   putGrid,
	}

	jreport, err := json.Marshal(report)
	if err != nil {
		fmt.Printf("Error marshalling report: %s\n", err.Error())
		return
	}

	f := "surfaces.json"
	err = ioutil.WriteFile(f, jreport, 0644)
	if err != nil {
		fmt.Printf("Error writing to file %s: %s\n", f, err.Error())
		return
	}

	fmt.Printf("Successfully wrote %dx%d surfaces to %s\n", gridResolution, gridResolution, f)
}

func riskFreeRateFromEnv() (float64, bool) {
	raw := os.Getenv("RISK_FREE_RATE")
	if raw == "" {
		return tradier.FallbackRiskFreeRate, true
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		return tradier.FallbackRiskFreeRate, true
	}
	return rate, false
}

func floatFromEnv(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func fallbackTag(isFallback bool) string {
	if isFallback {
		return " (fallback)"
	}
	return ""
}
