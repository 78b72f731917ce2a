package units

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/contacts"
)

// maxChainDepth bounds provider-chain traversal. Real hierarchies are shallow;
// hitting the bound means the stored chain loops back on itself.
const maxChainDepth = 10000

type ProductView struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Model   string          `json:"model"`
	Release string          `json:"release,omitempty"`
	Price   decimal.Decimal `json:"price"`
}

// View is the public read shape of a trade unit. Provider nests the same shape
// up to the root. Level is internal and deliberately absent.
type View struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Contact  *contacts.Contact `json:"contact"`
	Products []ProductView     `json:"products"`
	Provider *View             `json:"provider"`
	UnitType string            `json:"unit_type"`
	Debt     decimal.Decimal   `json:"debt"`
}

func newView(u *Unit) *View {
	ps := make([]ProductView, 0, len(u.Products))
	for _, p := range u.Products {
		pv := ProductView{ID: p.ID, Title: p.Title, Model: p.Model, Price: p.Price}
		if p.Release != nil {
			pv.Release = p.Release.Format(time.DateOnly)
		}
		ps = append(ps, pv)
	}
	return &View{
		ID:       u.ID,
		Title:    u.Title,
		Contact:  u.Contact,
		Products: ps,
		UnitType: u.Type.Label(),
		Debt:     u.Debt,
	}
}

// Project expands u's provider chain through st into a nested view. The walk is
// read-only and fails with ErrCyclicHierarchy instead of looping when the chain
// is corrupt.
func Project(ctx context.Context, st Store, u *Unit) (*View, error) {
	root := newView(u)
	node := root
	cur := u
	for depth := 0; cur.ProviderID != nil; depth++ {
		if depth >= maxChainDepth {
			return nil, ErrCyclicHierarchy
		}
		p, err := st.GetUnit(ctx, *cur.ProviderID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// dangling reference, e.g. provider deleted mid-read; stop at the gap
			break
		}
		node.Provider = newView(p)
		node = node.Provider
		cur = p
	}
	return root, nil
}
