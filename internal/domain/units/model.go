package units

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
)

type Type string

const (
	TypeManufacture   Type = "manufacture"
	TypeRetailNetwork Type = "retail_network"
	TypeEntrepreneur  Type = "entrepreneur"
)

func (t Type) Valid() bool {
	switch t {
	case TypeManufacture, TypeRetailNetwork, TypeEntrepreneur:
		return true
	}
	return false
}

// Label is the human-readable form used in read views.
func (t Type) Label() string {
	switch t {
	case TypeManufacture:
		return "Factory"
	case TypeRetailNetwork:
		return "Retail Network"
	case TypeEntrepreneur:
		return "Individual entrepreneur"
	}
	return string(t)
}

type Unit struct {
	ID         int64
	Title      string
	Type       Type
	ProviderID *int64
	ContactID  *int64
	Debt       decimal.Decimal
	Level      int
	CreatedAt  time.Time

	// loaded relations
	Contact  *contacts.Contact
	Products []products.Product
}
