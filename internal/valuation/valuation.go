// Package valuation turns holdings and prices into portfolio values.
//
// All functions are pure. Values are kept at full float precision; rounding is a
// display concern.
package valuation

import (
	"github.com/samber/lo"

	"investrack/internal/models"
)

// Row is the valuation of a single holding.
type Row struct {
	Coin     models.Symbol `json:"coin"`
	Amount   float64       `json:"amount"`
	PriceUSD float64       `json:"price_usd"`
	ValueUSD float64       `json:"value_usd"`
	ValueGHS float64       `json:"value_ghs"`
}

// Valuation is the whole portfolio at one point in time.
type Valuation struct {
	Rows     []Row   `json:"rows"`
	TotalUSD float64 `json:"total_usd"`
	TotalGHS float64 `json:"total_ghs"`
}

// Slice is one entry of the allocation breakdown.
type Slice struct {
	Coin     models.Symbol `json:"coin"`
	ValueGHS float64       `json:"value_ghs"`
	Share    float64       `json:"share"` // fraction of the allocated total, 0..1
}

// Value values every tracked coin in display order. Coins without a price are worth 0.
func Value(holdings models.Holdings, prices models.Prices, fxRate float64) Valuation {
	rows := lo.Map(models.Coins, func(c models.Coin, _ int) Row {
		amount := holdings[c.Symbol]
		price := prices[c.Symbol]
		valueUSD := amount * price
		return Row{
			Coin:     c.Symbol,
			Amount:   amount,
			PriceUSD: price,
			ValueUSD: valueUSD,
			ValueGHS: valueUSD * fxRate,
		}
	})

	totalUSD := lo.SumBy(rows, func(r Row) float64 { return r.ValueUSD })

	return Valuation{
		Rows:     rows,
		TotalUSD: totalUSD,
		TotalGHS: totalUSD * fxRate,
	}
}

// ProfitAndLoss returns the all-time PNL and its percentage of the amount invested.
// The percentage is 0 when nothing has been invested.
func ProfitAndLoss(totalGHS, totalInvested float64) (pnl, pct float64) {
	pnl = totalGHS - totalInvested
	return pnl, Percent(pnl, totalInvested)
}

// Percent returns part as a percentage of base, or 0 unless base is positive.
func Percent(part, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return part / base * 100
}

// Allocation returns the rows with a positive local value and each one's share.
// It is empty when nothing holds value.
func Allocation(rows []Row) []Slice {
	held := lo.Filter(rows, func(r Row, _ int) bool { return r.ValueGHS > 0 })
	total := lo.SumBy(held, func(r Row) float64 { return r.ValueGHS })

	return lo.Map(held, func(r Row, _ int) Slice {
		return Slice{Coin: r.Coin, ValueGHS: r.ValueGHS, Share: r.ValueGHS / total}
	})
}
