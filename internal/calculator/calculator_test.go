package calculator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	r := c.Result()
	assert.Equal(t, "5", r.FeePercent.String())
	assert.True(t, r.TargetPrice.IsZero())
	assert.True(t, c.AutoTarget())
	assert.Equal(t, OutcomeBreakEven, r.Outcome)
	assert.True(t, r.ProfitPercent.IsZero(), "zero total cost yields zero percent")
}

func TestBreakEven_TracksBuyAndFee(t *testing.T) {
	c := New()
	require.NoError(t, c.SetBuyPrice(100))
	assert.Equal(t, "105.26", c.Result().TargetPrice.StringFixed(2))

	require.NoError(t, c.SetFeePercent(10))
	assert.Equal(t, "111.11", c.Result().TargetPrice.StringFixed(2))

	require.NoError(t, c.SetFeePercent(100))
	assert.True(t, c.Result().TargetPrice.IsZero())
}

func TestResult_ProfitFigures(t *testing.T) {
	c := New()
	require.NoError(t, c.SetBuyPrice(100))
	require.NoError(t, c.SetTargetPrice(120))

	r := c.Result()
	assert.Equal(t, "6.00", r.Fee.StringFixed(2))
	assert.Equal(t, "106.00", r.TotalCost.StringFixed(2))
	assert.Equal(t, "14.00", r.Profit.StringFixed(2))
	assert.Equal(t, "13.21", r.ProfitPercent.StringFixed(2))
	assert.Equal(t, OutcomeProfit, r.Outcome)

	require.NoError(t, c.SetTargetPrice(90))
	assert.Equal(t, OutcomeLoss, c.Result().Outcome)
}

func TestSetTargetPrice_StopsTracking(t *testing.T) {
	c := New()
	require.NoError(t, c.SetTargetPrice(50))
	assert.False(t, c.AutoTarget())

	require.NoError(t, c.SetBuyPrice(100))
	assert.Equal(t, "50.00", c.Result().TargetPrice.StringFixed(2))

	c.Reset()
	assert.False(t, c.AutoTarget(), "reset keeps tracking mode")
	r := c.Result()
	assert.True(t, r.BuyPrice.IsZero())
	assert.True(t, r.TargetPrice.IsZero())
	assert.Equal(t, "5", r.FeePercent.String())
}

func TestSetters_RejectNegative(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.SetBuyPrice(-1), ErrNegativePrice)
	assert.ErrorIs(t, c.SetTargetPrice(-1), ErrNegativePrice)
	assert.ErrorIs(t, c.SetFeePercent(-0.5), ErrNegativeFee)
}

func TestApplyClick(t *testing.T) {
	tests := []struct {
		name       string
		buy, sell  float64
		click      float64
		wantBuy    string
		wantTarget string
	}{
		{"empty sets buy", 0, 0, 50, "50.00", "0.00"},
		{"zero ignored", 40, 0, 0, "40.00", "0.00"},
		{"only buy, higher click sets sell", 40, 0, 60, "40.00", "60.00"},
		{"only buy, lower click shifts buy to sell", 40, 0, 30, "30.00", "40.00"},
		{"both set, above sell raises sell", 40, 60, 70, "40.00", "70.00"},
		{"both set, below sell replaces buy", 40, 60, 55, "55.00", "60.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			require.NoError(t, c.SetTargetPrice(tt.sell))
			require.NoError(t, c.SetBuyPrice(tt.buy))

			c.ApplyClick(tt.click)

			r := c.Result()
			assert.Equal(t, tt.wantBuy, r.BuyPrice.StringFixed(2))
			assert.Equal(t, tt.wantTarget, r.TargetPrice.StringFixed(2))
		})
	}
}

func TestApplyClick_DoesNotRecomputeBreakEven(t *testing.T) {
	c := New()
	c.ApplyClick(50)
	assert.True(t, c.AutoTarget())
	assert.Equal(t, "50.00", c.Result().BuyPrice.StringFixed(2))
	assert.True(t, c.Result().TargetPrice.IsZero())
}

func TestResult_JSON(t *testing.T) {
	c := New()
	require.NoError(t, c.SetBuyPrice(100))
	raw, err := json.Marshal(c.Result())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"target_price":"105.26"`)
	assert.Contains(t, string(raw), `"outcome":"break-even"`)
}
