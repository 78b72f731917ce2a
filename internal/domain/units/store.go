package units

import (
	"context"

	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
)

type Filter struct {
	// City filters by the linked contact's city, exact match. Empty means no filter.
	City string
}

// Store is the persistence boundary the engine runs against. Implementations
// must make Atomic a real transaction boundary: every write the service issues
// goes through it so that level resolution and persistence land as one unit.
type Store interface {
	// Atomic runs fn against a transaction-scoped Store and commits iff fn
	// returns nil. Missing rows are (nil, nil), not errors.
	Atomic(ctx context.Context, fn func(Store) error) error

	GetUnit(ctx context.Context, id int64) (*Unit, error)
	ListUnits(ctx context.Context, f Filter) ([]Unit, error)
	SaveUnit(ctx context.Context, u *Unit) (*Unit, error)
	SetUnitProducts(ctx context.Context, unitID int64, productIDs []int64) error
	DeleteUnit(ctx context.Context, id int64) (bool, error)
	ResetDebt(ctx context.Context, ids []int64) (int64, error)

	GetProducts(ctx context.Context, ids []int64) ([]products.Product, error)
	GetContact(ctx context.Context, id int64) (*contacts.Contact, error)
	CreateContact(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error)
}
