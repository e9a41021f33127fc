package greeks

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnsupportedOptionType is returned for anything other than a call.
var ErrUnsupportedOptionType = errors.New("only call options are supported")

// OptionContract represents an options contract
type OptionContract struct {
	Symbol           string
	StrikePrice      float64
	UnderlyingPrice  float64
	TimeToExpiration float64 // years
	RiskFreeRate     float64
	Volatility       float64
	OptionType       byte // 'C'

	// Output Greeks
	Delta float64
	Gamma float64
}

// Engine evaluates call greeks for batches of contracts.
type Engine struct {
	calculations atomic.Int64
}

// NewEngine creates a new engine
func NewEngine() *Engine {
	return &Engine{}
}

// Calculations returns how many contracts this engine has evaluated.
func (e *Engine) Calculations() int64 {
	return e.calculations.Load()
}

// CalculateGreeks fills Delta and Gamma on a copy of each contract.
func (e *Engine) CalculateGreeks(contracts []OptionContract) ([]OptionContract, error) {
	if len(contracts) == 0 {
		return contracts, nil
	}

	results := make([]OptionContract, len(contracts))
	for i, contract := range contracts {
		if contract.OptionType != 'C' {
			return nil, fmt.Errorf("contract %d (%s) type %q: %w", i, contract.Symbol, contract.OptionType, ErrUnsupportedOptionType)
		}

		results[i] = contract // Copy input data
		results[i].Delta = Delta(contract.UnderlyingPrice, contract.StrikePrice, contract.RiskFreeRate, contract.TimeToExpiration, contract.Volatility)
		results[i].Gamma = Gamma(contract.UnderlyingPrice, contract.StrikePrice, contract.RiskFreeRate, contract.TimeToExpiration, contract.Volatility)
	}
	e.calculations.Add(int64(len(contracts)))

	return results, nil
}

// Call builds a call contract on market m.
func Call(symbol string, spot, years float64, m Market) OptionContract {
	return OptionContract{
		Symbol:           symbol,
		StrikePrice:      m.Strike,
		UnderlyingPrice:  spot,
		TimeToExpiration: years,
		RiskFreeRate:     m.Rate,
		Volatility:       m.Volatility,
		OptionType:       'C',
	}
}
