package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

// QuoteUnitPrice applies an identity's discount tier to a product's base
// price. The result is rounded to the nearest integer unit and frozen onto
// the order line, so later price or tier changes never touch issued quotes.
func QuoteUnitPrice(basePrice int64, discountTier float64) int64 {
	if discountTier <= 0 {
		discountTier = 1
	}
	quoted := decimal.NewFromInt(basePrice).Mul(decimal.NewFromFloat(discountTier))
	return quoted.Round(0).IntPart()
}

// QuoteTotal sums frozen order lines into the whole-unit order value.
func QuoteTotal(lines []types.OrderItem) int64 {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(
			decimal.NewFromInt(line.UnitPriceAtRequest).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(0).IntPart()
}
