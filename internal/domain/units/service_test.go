package units

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Spok95/trade-network/internal/domain/products"
)

func newTestService(t *testing.T) (*Service, *MemStore) {
	t.Helper()
	st := NewMemStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(st, log), st
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) *View {
	t.Helper()
	view, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create %q: %v", in.Title, err)
	}
	return view
}

func storedUnit(t *testing.T, st *MemStore, id int64) *Unit {
	t.Helper()
	u, err := st.GetUnit(context.Background(), id)
	if err != nil {
		t.Fatalf("get unit %d: %v", id, err)
	}
	if u == nil {
		t.Fatalf("unit %d not found", id)
	}
	return u
}

func TestCreateManufactureAndChain(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	p1 := st.AddProduct(products.Product{Title: "Phone", Model: "X1", Price: decimal.RequireFromString("10.00")})
	p2 := st.AddProduct(products.Product{Title: "Charger", Model: "C2", Price: decimal.RequireFromString("15.00")})

	m := mustCreate(t, svc, CreateInput{Title: "Acme Plant", UnitType: TypeManufacture})
	if m.UnitType != "Factory" {
		t.Fatalf("expected Factory, got %q", m.UnitType)
	}
	if !m.Debt.IsZero() {
		t.Fatalf("expected zero debt, got %s", m.Debt)
	}
	if storedUnit(t, st, m.ID).Level != 0 {
		t.Fatalf("manufacture level must be 0")
	}

	r1 := mustCreate(t, svc, CreateInput{
		Title:    "Retail One",
		UnitType: TypeRetailNetwork,
		Provider: &m.ID,
		Products: []int64{p1.ID, p2.ID},
		Contact:  &ContactInput{Email: "retail@example.com", City: "Madrid"},
	})
	if r1.Debt.StringFixed(2) != "25.00" {
		t.Fatalf("expected debt 25.00, got %s", r1.Debt.StringFixed(2))
	}
	if storedUnit(t, st, r1.ID).Level != 1 {
		t.Fatalf("unit under manufacture must have level 1")
	}
	if r1.Contact == nil || r1.Contact.Email != "retail@example.com" {
		t.Fatalf("inline contact not attached: %+v", r1.Contact)
	}
	if len(r1.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(r1.Products))
	}
	if r1.Provider == nil || r1.Provider.Title != "Acme Plant" {
		t.Fatalf("provider not nested: %+v", r1.Provider)
	}

	r2 := mustCreate(t, svc, CreateInput{Title: "Corner Shop", UnitType: TypeEntrepreneur, Provider: &r1.ID})
	if !r2.Debt.IsZero() {
		t.Fatalf("expected zero debt for empty product set, got %s", r2.Debt)
	}
	if storedUnit(t, st, r2.ID).Level != 2 {
		t.Fatalf("expected level 2")
	}

	// re-parent R2 directly under the manufacturer
	if _, err := svc.Update(ctx, r2.ID, UpdateInput{Provider: Ref{Set: true, ID: &m.ID}}); err != nil {
		t.Fatalf("re-parent: %v", err)
	}
	if storedUnit(t, st, r2.ID).Level != 1 {
		t.Fatalf("level must recompute to 1 after re-parent")
	}

	// deleting the manufacturer detaches dependents without touching levels
	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	after := storedUnit(t, st, r1.ID)
	if after.ProviderID != nil {
		t.Fatalf("provider reference must become absent")
	}
	if after.Level != 1 {
		t.Fatalf("level must stay 1 after provider deletion, got %d", after.Level)
	}
}

func TestCreateRejectsManufactureWithProvider(t *testing.T) {
	svc, _ := newTestService(t)
	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})
	_, err := svc.Create(context.Background(), CreateInput{Title: "Plant 2", UnitType: TypeManufacture, Provider: &m.ID})
	if !errors.Is(err, ErrInvalidHierarchy) {
		t.Fatalf("expected ErrInvalidHierarchy, got %v", err)
	}
}

func TestCreateRejectsOrphanNonManufacture(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInput{Title: "Retail", UnitType: TypeRetailNetwork})
	if !errors.Is(err, ErrMissingProvider) {
		t.Fatalf("expected ErrMissingProvider, got %v", err)
	}
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	svc, st := newTestService(t)
	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})

	missing := int64(404)
	_, err := svc.Create(context.Background(), CreateInput{Title: "Retail", UnitType: TypeRetailNetwork, Provider: &missing})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown provider: expected ErrNotFound, got %v", err)
	}

	p := st.AddProduct(products.Product{Title: "Phone", Price: decimal.RequireFromString("5.00")})
	_, err = svc.Create(context.Background(), CreateInput{
		Title: "Retail", UnitType: TypeRetailNetwork, Provider: &m.ID,
		Products: []int64{p.ID, missing},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown product: expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ve *ValidationError
	if _, err := svc.Create(ctx, CreateInput{Title: "", UnitType: TypeManufacture}); !errors.As(err, &ve) {
		t.Fatalf("empty title: expected ValidationError, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Title: "Plant", UnitType: Type("franchise")}); !errors.As(err, &ve) {
		t.Fatalf("bad type: expected ValidationError, got %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Title: "Plant", UnitType: TypeManufacture, Contact: &ContactInput{Email: "nope"}}); !errors.As(err, &ve) {
		t.Fatalf("bad email: expected ValidationError, got %v", err)
	}
}

func TestUpdateDoesNotRecomputeDebt(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	p1 := st.AddProduct(products.Product{Title: "Phone", Price: decimal.RequireFromString("10.00")})
	p2 := st.AddProduct(products.Product{Title: "Tablet", Price: decimal.RequireFromString("99.00")})

	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})
	r := mustCreate(t, svc, CreateInput{Title: "Retail", UnitType: TypeRetailNetwork, Provider: &m.ID, Products: []int64{p1.ID}})

	ids := []int64{p1.ID, p2.ID}
	view, err := svc.Update(ctx, r.ID, UpdateInput{Products: &ids})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(view.Products) != 2 {
		t.Fatalf("expected 2 products after update, got %d", len(view.Products))
	}
	if view.Debt.StringFixed(2) != "10.00" {
		t.Fatalf("debt must stay 10.00 after product edit, got %s", view.Debt.StringFixed(2))
	}
}

func TestUpdateTypeChangeRevalidatesHierarchy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})
	r := mustCreate(t, svc, CreateInput{Title: "Retail", UnitType: TypeRetailNetwork, Provider: &m.ID})

	// a unit with a provider cannot become a manufacturer
	typ := TypeManufacture
	_, err := svc.Update(ctx, r.ID, UpdateInput{UnitType: &typ})
	if !errors.Is(err, ErrInvalidHierarchy) {
		t.Fatalf("expected ErrInvalidHierarchy, got %v", err)
	}

	// clearing the provider of a retail unit leaves it orphaned
	_, err = svc.Update(ctx, r.ID, UpdateInput{Provider: Ref{Set: true, ID: nil}})
	if !errors.Is(err, ErrMissingProvider) {
		t.Fatalf("expected ErrMissingProvider, got %v", err)
	}
}

func TestUpdateRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})

	title := "Renamed Plant"
	missing := []int64{777}
	_, err := svc.Update(ctx, m.ID, UpdateInput{Title: &title, Products: &missing})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if storedUnit(t, st, m.ID).Title != "Plant" {
		t.Fatalf("failed update must not leave a partial write")
	}
}

func TestResetDebtZeroesSelectedUnits(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(t)

	p := st.AddProduct(products.Product{Title: "Phone", Price: decimal.RequireFromString("10.00")})
	m := mustCreate(t, svc, CreateInput{Title: "Plant", UnitType: TypeManufacture})
	r := mustCreate(t, svc, CreateInput{Title: "Retail", UnitType: TypeRetailNetwork, Provider: &m.ID, Products: []int64{p.ID}})

	n, err := svc.ResetDebt(ctx, []int64{r.ID, 999})
	if err != nil {
		t.Fatalf("reset debt: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 updated, got %d", n)
	}
	after := storedUnit(t, st, r.ID)
	if !after.Debt.IsZero() {
		t.Fatalf("debt must be zero, got %s", after.Debt)
	}
	if after.Level != 1 || after.ProviderID == nil {
		t.Fatalf("reset must not touch level or provider")
	}

	if _, err := svc.ResetDebt(ctx, nil); err == nil {
		t.Fatalf("empty id set must be rejected")
	}
}

func TestListFiltersByCity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	mustCreate(t, svc, CreateInput{Title: "Plant A", UnitType: TypeManufacture, Contact: &ContactInput{Email: "a@example.com", City: "Madrid"}})
	mustCreate(t, svc, CreateInput{Title: "Plant B", UnitType: TypeManufacture, Contact: &ContactInput{Email: "b@example.com", City: "Lisbon"}})
	mustCreate(t, svc, CreateInput{Title: "Plant C", UnitType: TypeManufacture})

	views, err := svc.List(ctx, Filter{City: "Madrid"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Plant A" {
		t.Fatalf("unexpected filter result: %+v", views)
	}

	all, err := svc.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 units, got %d", len(all))
	}
}

func TestGetUnknownUnit(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
