package products

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID      int64
	Title   string
	Model   string
	Release *time.Time
	Price   decimal.Decimal
}
