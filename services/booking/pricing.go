package booking

import (
	"math"

	"a1care/config"
	"a1care/models"
)

// FeeMode selects how the platform fee is derived.
type FeeMode string

const (
	FeeModeFlat    FeeMode = "flat"
	FeeModePercent FeeMode = "percent"
)

// FeePolicy is the single configurable platform-fee policy for a deployment.
type FeePolicy struct {
	Mode   FeeMode
	Amount float64 // used when Mode is flat
	Rate   float64 // used when Mode is percent, applied to baseFee+itemPrice
}

// PolicyFromConfig builds the fee policy from application configuration.
func PolicyFromConfig() FeePolicy {
	return FeePolicy{
		Mode:   FeeMode(config.AppConfig.PlatformFeeMode),
		Amount: config.AppConfig.PlatformFeeAmount,
		Rate:   config.AppConfig.PlatformFeeRate,
	}
}

// ComputeQuote combines the base fee, the item price and the platform fee
// into a total. Pure and side-effect-free; each component is rounded to the
// currency's minor unit and the total is the exact sum of the rounded
// components, so the quote can be frozen onto a reservation as-is.
func ComputeQuote(baseFee, itemPrice float64, policy FeePolicy) models.PriceQuote {
	base := roundMinorUnit(baseFee)
	item := roundMinorUnit(itemPrice)

	var fee float64
	switch policy.Mode {
	case FeeModePercent:
		fee = roundMinorUnit((base + item) * policy.Rate)
	default:
		fee = roundMinorUnit(policy.Amount)
	}

	return models.PriceQuote{
		BaseFee:     base,
		ItemPrice:   item,
		PlatformFee: fee,
		Total:       roundMinorUnit(base + item + fee),
	}
}

func roundMinorUnit(v float64) float64 {
	return math.Round(v*100) / 100
}
