package units

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
)

// MemStore is an in-memory Store. It backs the test suites and local runs that
// have no Postgres at hand; Atomic snapshots the state and rolls it back when
// fn fails, mirroring the transaction semantics of the Postgres Repo.
type MemStore struct {
	mu   sync.Mutex
	data *memData
}

type memData struct {
	seq          int64
	units        map[int64]Unit
	contacts     map[int64]contacts.Contact
	products     map[int64]products.Product
	unitProducts map[int64][]int64
}

func NewMemStore() *MemStore {
	return &MemStore{data: &memData{
		units:        make(map[int64]Unit),
		contacts:     make(map[int64]contacts.Contact),
		products:     make(map[int64]products.Product),
		unitProducts: make(map[int64][]int64),
	}}
}

// AddProduct seeds the product catalog, assigning an id.
func (m *MemStore) AddProduct(p products.Product) products.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.seq++
	p.ID = m.data.seq
	m.data.products[p.ID] = p
	return p
}

func (m *MemStore) Atomic(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.data.clone()
	if err := fn(&memTx{d: m.data}); err != nil {
		m.data = snap
		return err
	}
	return nil
}

func (m *MemStore) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.getUnit(id), nil
}

func (m *MemStore) ListUnits(ctx context.Context, f Filter) ([]Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.listUnits(f), nil
}

func (m *MemStore) SaveUnit(ctx context.Context, u *Unit) (*Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.saveUnit(u), nil
}

func (m *MemStore) SetUnitProducts(ctx context.Context, unitID int64, productIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data.setUnitProducts(unitID, productIDs)
	return nil
}

func (m *MemStore) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.deleteUnit(id), nil
}

func (m *MemStore) ResetDebt(ctx context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.resetDebt(ids), nil
}

func (m *MemStore) GetProducts(ctx context.Context, ids []int64) ([]products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.getProducts(ids), nil
}

func (m *MemStore) GetContact(ctx context.Context, id int64) (*contacts.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.getContact(id), nil
}

func (m *MemStore) CreateContact(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data.createContact(c), nil
}

// memTx is the transaction-scoped view handed to Atomic callbacks. The outer
// MemStore holds the lock for the whole callback.
type memTx struct{ d *memData }

func (t *memTx) Atomic(ctx context.Context, fn func(Store) error) error { return fn(t) }

func (t *memTx) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	return t.d.getUnit(id), nil
}

func (t *memTx) ListUnits(ctx context.Context, f Filter) ([]Unit, error) {
	return t.d.listUnits(f), nil
}

func (t *memTx) SaveUnit(ctx context.Context, u *Unit) (*Unit, error) {
	return t.d.saveUnit(u), nil
}

func (t *memTx) SetUnitProducts(ctx context.Context, unitID int64, productIDs []int64) error {
	t.d.setUnitProducts(unitID, productIDs)
	return nil
}

func (t *memTx) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	return t.d.deleteUnit(id), nil
}

func (t *memTx) ResetDebt(ctx context.Context, ids []int64) (int64, error) {
	return t.d.resetDebt(ids), nil
}

func (t *memTx) GetProducts(ctx context.Context, ids []int64) ([]products.Product, error) {
	return t.d.getProducts(ids), nil
}

func (t *memTx) GetContact(ctx context.Context, id int64) (*contacts.Contact, error) {
	return t.d.getContact(id), nil
}

func (t *memTx) CreateContact(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error) {
	return t.d.createContact(c), nil
}

func (d *memData) clone() *memData {
	out := &memData{
		seq:          d.seq,
		units:        make(map[int64]Unit, len(d.units)),
		contacts:     make(map[int64]contacts.Contact, len(d.contacts)),
		products:     make(map[int64]products.Product, len(d.products)),
		unitProducts: make(map[int64][]int64, len(d.unitProducts)),
	}
	for k, v := range d.units {
		out.units[k] = v
	}
	for k, v := range d.contacts {
		out.contacts[k] = v
	}
	for k, v := range d.products {
		out.products[k] = v
	}
	for k, v := range d.unitProducts {
		out.unitProducts[k] = append([]int64(nil), v...)
	}
	return out
}

func (d *memData) getUnit(id int64) *Unit {
	u, ok := d.units[id]
	if !ok {
		return nil
	}
	return d.attach(u)
}

func (d *memData) attach(u Unit) *Unit {
	if u.ContactID != nil {
		if c, ok := d.contacts[*u.ContactID]; ok {
			u.Contact = &c
		}
	}
	ids := append([]int64(nil), d.unitProducts[u.ID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, pid := range ids {
		if p, ok := d.products[pid]; ok {
			u.Products = append(u.Products, p)
		}
	}
	return &u
}

func (d *memData) listUnits(f Filter) []Unit {
	ids := make([]int64, 0, len(d.units))
	for id := range d.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []Unit
	for _, id := range ids {
		u := d.units[id]
		if f.City != "" {
			if u.ContactID == nil {
				continue
			}
			c, ok := d.contacts[*u.ContactID]
			if !ok || c.City != f.City {
				continue
			}
		}
		out = append(out, *d.attach(u))
	}
	return out
}

func (d *memData) saveUnit(u *Unit) *Unit {
	saved := *u
	saved.Contact = nil
	saved.Products = nil
	if saved.ID == 0 {
		d.seq++
		saved.ID = d.seq
		saved.CreatedAt = time.Now()
	} else if _, ok := d.units[saved.ID]; !ok {
		return nil
	}
	d.units[saved.ID] = saved
	out := saved
	return &out
}

func (d *memData) setUnitProducts(unitID int64, productIDs []int64) {
	d.unitProducts[unitID] = append([]int64(nil), productIDs...)
}

func (d *memData) deleteUnit(id int64) bool {
	if _, ok := d.units[id]; !ok {
		return false
	}
	delete(d.units, id)
	delete(d.unitProducts, id)
	for uid, u := range d.units {
		if u.ProviderID != nil && *u.ProviderID == id {
			u.ProviderID = nil
			d.units[uid] = u
		}
	}
	return true
}

func (d *memData) resetDebt(ids []int64) int64 {
	var n int64
	for _, id := range ids {
		u, ok := d.units[id]
		if !ok {
			continue
		}
		u.Debt = decimal.Zero
		d.units[id] = u
		n++
	}
	return n
}

func (d *memData) getProducts(ids []int64) []products.Product {
	uniq := append([]int64(nil), ids...)
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	var out []products.Product
	seen := make(map[int64]bool)
	for _, id := range uniq {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := d.products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (d *memData) getContact(id int64) *contacts.Contact {
	c, ok := d.contacts[id]
	if !ok {
		return nil
	}
	return &c
}

func (d *memData) createContact(c *contacts.Contact) *contacts.Contact {
	d.seq++
	out := *c
	out.ID = d.seq
	d.contacts[out.ID] = out
	return &out
}
