package calculator

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"MarketLens/internal/common"
)

// Outcome classifies a trade result.
type Outcome string

const (
	OutcomeProfit    Outcome = "profit"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakEven Outcome = "break-even"
)

var (
	hundred = decimal.NewFromInt(100)

	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeFee   = errors.New("fee percent must not be negative")
)

// Calculator tracks a buy/sell pair and derives fee, cost and profit. A zero
// price means the field is unset.
type Calculator struct {
	buy    decimal.Decimal
	fee    decimal.Decimal
	target decimal.Decimal
	auto   bool
}

// New returns a calculator with the default fee and break-even tracking on.
func New() *Calculator {
	c := &Calculator{
		fee:  decimal.NewFromFloat(common.DefaultFeePercent),
		auto: true,
	}
	c.updateBreakEven()
	return c
}

// Result is the derived view of the calculator state.
type Result struct {
	BuyPrice      decimal.Decimal
	FeePercent    decimal.Decimal
	TargetPrice   decimal.Decimal
	Fee           decimal.Decimal
	TotalCost     decimal.Decimal
	Profit        decimal.Decimal
	ProfitPercent decimal.Decimal
	Outcome       Outcome
	Auto          bool
}

// MarshalJSON renders every amount with two decimals.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BuyPrice      string  `json:"buy_price"`
		FeePercent    string  `json:"fee_percent"`
		TargetPrice   string  `json:"target_price"`
		Fee           string  `json:"fee"`
		TotalCost     string  `json:"total_cost"`
		Profit        string  `json:"profit"`
		ProfitPercent string  `json:"profit_percent"`
		Outcome       Outcome `json:"outcome"`
		Auto          bool    `json:"auto"`
	}{
		BuyPrice:      r.BuyPrice.StringFixed(2),
		FeePercent:    r.FeePercent.String(),
		TargetPrice:   r.TargetPrice.StringFixed(2),
		Fee:           r.Fee.StringFixed(2),
		TotalCost:     r.TotalCost.StringFixed(2),
		Profit:        r.Profit.StringFixed(2),
		ProfitPercent: r.ProfitPercent.StringFixed(2),
		Outcome:       r.Outcome,
		Auto:          r.Auto,
	})
}

// Result computes fee, total cost and profit for the current prices.
func (c *Calculator) Result() Result {
	fee := c.target.Mul(c.fee).Div(hundred)
	total := c.buy.Add(fee)
	profit := c.target.Sub(total)

	pct := decimal.Zero
	if total.IsPositive() {
		pct = profit.Div(total).Mul(hundred)
	}

	outcome := OutcomeBreakEven
	switch {
	case profit.IsPositive():
		outcome = OutcomeProfit
	case profit.IsNegative():
		outcome = OutcomeLoss
	}

	return Result{
		BuyPrice:      c.buy,
		FeePercent:    c.fee,
		TargetPrice:   c.target,
		Fee:           fee.Round(2),
		TotalCost:     total.Round(2),
		Profit:        profit.Round(2),
		ProfitPercent: pct.Round(2),
		Outcome:       outcome,
		Auto:          c.auto,
	}
}

// BreakEven returns the sell price that exactly covers buy plus fee,
// rounded to cents. A fee of 100% or more has no break-even and yields 0.
func (c *Calculator) BreakEven() decimal.Decimal {
	if c.fee.GreaterThanOrEqual(hundred) {
		return decimal.Zero
	}
	denom := decimal.NewFromInt(1).Sub(c.fee.Div(hundred))
	return c.buy.Div(denom).Round(2)
}

// AutoTarget reports whether the target still follows the break-even price.
func (c *Calculator) AutoTarget() bool { return c.auto }

// SetBuyPrice updates the buy price and, while tracking, the target.
func (c *Calculator) SetBuyPrice(p float64) error {
	if p < 0 {
		return ErrNegativePrice
	}
	c.buy = decimal.NewFromFloat(p)
	c.updateBreakEven()
	return nil
}

// SetFeePercent updates the fee and, while tracking, the target.
func (c *Calculator) SetFeePercent(p float64) error {
	if p < 0 {
		return ErrNegativeFee
	}
	c.fee = decimal.NewFromFloat(p)
	c.updateBreakEven()
	return nil
}

// SetTargetPrice sets the sell price by hand and stops break-even tracking
// for the lifetime of the calculator.
func (c *Calculator) SetTargetPrice(p float64) error {
	if p < 0 {
		return ErrNegativePrice
	}
	c.target = decimal.NewFromFloat(p)
	c.auto = false
	return nil
}

// Reset clears both prices and restores the default fee.
func (c *Calculator) Reset() {
	c.buy = decimal.Zero
	c.target = decimal.Zero
	c.fee = decimal.NewFromFloat(common.DefaultFeePercent)
}

// ApplyClick fills buy or sell from a price picked on the chart. The target
// is written directly and break-even tracking is left untouched.
func (c *Calculator) ApplyClick(price float64) {
	p := decimal.NewFromFloat(price)
	if !p.IsPositive() {
		return
	}

	buySet := c.buy.IsPositive()
	sellSet := c.target.IsPositive()

	switch {
	case buySet && sellSet:
		if p.GreaterThan(c.target) {
			c.target = p
		} else {
			c.buy = p
		}
	case buySet:
		if p.GreaterThan(c.buy) {
			c.target = p
		} else {
			c.target = c.buy
			c.buy = p
		}
	default:
		c.buy = p
	}
}

func (c *Calculator) updateBreakEven() {
	if c.auto {
		c.target = c.BreakEven()
	}
}
