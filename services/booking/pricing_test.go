package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuoteFlatFee(t *testing.T) {
	policy := FeePolicy{Mode: FeeModeFlat, Amount: 50}

	quote := ComputeQuote(400, 0, policy)

	assert.Equal(t, 400.0, quote.BaseFee)
	assert.Equal(t, 0.0, quote.ItemPrice)
	assert.Equal(t, 50.0, quote.PlatformFee)
	assert.Equal(t, 450.0, quote.Total)
}

func TestComputeQuotePercentFee(t *testing.T) {
	policy := FeePolicy{Mode: FeeModePercent, Rate: 0.10}

	quote := ComputeQuote(0, 1200, policy)

	assert.Equal(t, 120.0, quote.PlatformFee)
	assert.Equal(t, 1320.0, quote.Total)
}

func TestComputeQuoteFreeItemStillCarriesFees(t *testing.T) {
	policy := FeePolicy{Mode: FeeModeFlat, Amount: 50}

	quote := ComputeQuote(0, 0, policy)

	assert.Equal(t, 0.0, quote.ItemPrice)
	assert.Equal(t, 50.0, quote.PlatformFee)
	assert.Equal(t, 50.0, quote.Total)
}

func TestComputeQuoteTotalIsSumOfRoundedComponents(t *testing.T) {
	policy := FeePolicy{Mode: FeeModePercent, Rate: 0.0333}

	quote := ComputeQuote(99.995, 0.005, policy)

	assert.InDelta(t, quote.BaseFee+quote.ItemPrice+quote.PlatformFee, quote.Total, 1e-9)
}

func TestComputeQuoteUnknownModeFallsBackToFlat(t *testing.T) {
	policy := FeePolicy{Mode: "", Amount: 25}

	quote := ComputeQuote(100, 100, policy)

	assert.Equal(t, 25.0, quote.PlatformFee)
}
