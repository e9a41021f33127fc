package main

import (
	"fmt"
	"log"
	"math"

	greeks "github.com/jwaldner/greeksurface/greeks_lib"
	"github.com/jwaldner/greeksurface/internal/surface"
	"github.com/jwaldner/greeksurface/internal/utils"
)

// Checks the at-the-money one-year call on the demo market against
// hand-computed values.
func main() {
	fmt.Println("🎯 Verifying call greeks at the money")
	fmt.Println("====================================")

	S := 40.0 // stock price
	T := 1.0  // time to expiration, years
	m := surface.DemoMarket

	expectedD1 := 0.460714
	expectedDelta := 0.677500
	expectedGamma := 0.025626

	fmt.Printf("📊 Input Parameters:\n")
	fmt.Printf("   Stock Price (S): $%.2f\n", S)
	fmt.Printf("   Strike Price (K): $%.0f\n", m.Strike)
	fmt.Printf("   Time to Exp (T): %.6f years (%.0f months)\n", T, utils.YearsToMonths(T))
	fmt.Printf("   Risk-free Rate (r): %.2f\n", m.Rate)
	fmt.Printf("   Volatility (σ): %.2f\n", m.Volatility)
	fmt.Println()

	engine := greeks.NewEngine()
	results, err := engine.CalculateGreeks([]greeks.OptionContract{greeks.Call("ATM", S, T, m)})
	if err != nil {
		log.Fatalf("❌ Calculation failed: %v", err)
	}
	result := results[0]
	d1 := greeks.D1(S, m.Strike, m.Rate, T, m.Volatility)

	fmt.Printf("🔬 Calculation Results:\n")
	fmt.Printf("   d1:    %.6f (Expected: %.6f)\n", d1, expectedD1)
	fmt.Printf("   Delta: %.6f (Expected: %.6f)\n", result.Delta, expectedDelta)
	fmt.Printf("   Gamma: %.6f (Expected: %.6f)\n", result.Gamma, expectedGamma)
	fmt.Println()

	checks := []struct {
		name      string
		got, want float64
		tolerance float64
	}{
		{"d1", d1, expectedD1, 1e-6},
		{"delta", result.Delta, expectedDelta, 1e-4},
		{"gamma", result.Gamma, expectedGamma, 1e-6},
	}

	failed := false
	for _, c := range checks {
		if diff := math.Abs(c.got - c.want); diff > c.tolerance {
			fmt.Printf("⚠️  %s differs by %.8f (tolerance %.0e)\n", c.name, diff, c.tolerance)
			failed = true
		}
	}
	if failed {
		log.Fatal("❌ Greeks outside tolerance")
	}
	fmt.Println("✅ All greeks within tolerance")
}
