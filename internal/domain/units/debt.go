package units

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/products"
)

// InitialDebt is the sum of the selected products' prices. It is computed once,
// at creation; later edits to the product set leave debt alone.
func InitialDebt(ps []products.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ps {
		total = total.Add(p.Price)
	}
	return total
}
