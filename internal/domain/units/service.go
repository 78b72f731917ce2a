package units

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
)

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

type ContactInput struct {
	Email   string
	Country string
	City    string
	Street  string
	Number  string
}

type CreateInput struct {
	Title    string
	UnitType Type
	Provider *int64
	Products []int64
	Contact  *ContactInput
}

// Ref is a tri-state reference patch: absent, set to null, or set to an id.
type Ref struct {
	Set bool
	ID  *int64
}

type UpdateInput struct {
	Title    *string
	UnitType *Type
	Provider Ref
	Contact  Ref
	Products *[]int64
}

// Create assembles a candidate unit, derives its debt from the selected
// products and its level from the provider, and persists everything in one
// transaction. Level and debt are never taken from the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (*View, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if !in.UnitType.Valid() {
		return nil, validationErr("unit_type", "must be one of manufacture, retail_network, entrepreneur")
	}
	if in.Contact != nil {
		if err := validateEmail(in.Contact.Email); err != nil {
			return nil, err
		}
	}

	var view *View
	err := s.store.Atomic(ctx, func(st Store) error {
		ps, err := fetchProducts(ctx, st, in.Products)
		if err != nil {
			return err
		}

		var provider *Unit
		if in.Provider != nil {
			provider, err = st.GetUnit(ctx, *in.Provider)
			if err != nil {
				return err
			}
			if provider == nil {
				return notFoundErr("trade unit", *in.Provider)
			}
		}

		level, err := ResolveLevel(in.UnitType, provider)
		if err != nil {
			return err
		}

		u := &Unit{
			Title:      in.Title,
			Type:       in.UnitType,
			ProviderID: in.Provider,
			Debt:       InitialDebt(ps),
			Level:      level,
		}
		if in.Contact != nil {
			c, err := st.CreateContact(ctx, &contacts.Contact{
				Email:   in.Contact.Email,
				Country: in.Contact.Country,
				City:    in.Contact.City,
				Street:  in.Contact.Street,
				Number:  in.Contact.Number,
			})
			if err != nil {
				return err
			}
			u.ContactID = &c.ID
		}

		saved, err := st.SaveUnit(ctx, u)
		if err != nil {
			return err
		}
		if len(in.Products) > 0 {
			if err := st.SetUnitProducts(ctx, saved.ID, in.Products); err != nil {
				return err
			}
		}

		full, err := st.GetUnit(ctx, saved.ID)
		if err != nil {
			return err
		}
		view, err = Project(ctx, st, full)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("trade unit created", "id", view.ID, "unit_type", string(in.UnitType))
	return view, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	u, err := s.store.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFoundErr("trade unit", id)
	}
	return Project(ctx, s.store, u)
}

func (s *Service) List(ctx context.Context, f Filter) ([]View, error) {
	us, err := s.store.ListUnits(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(us))
	for i := range us {
		v, err := Project(ctx, s.store, &us[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Units returns raw units without projection, for reporting.
func (s *Service) Units(ctx context.Context, f Filter) ([]Unit, error) {
	return s.store.ListUnits(ctx, f)
}

// Update applies a partial patch. The level is re-resolved only when the patch
// touches unit_type or provider; debt is never recomputed here.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*View, error) {
	if in.Title != nil {
		if err := validateTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.UnitType != nil && !in.UnitType.Valid() {
		return nil, validationErr("unit_type", "must be one of manufacture, retail_network, entrepreneur")
	}

	var view *View
	err := s.store.Atomic(ctx, func(st Store) error {
		u, err := st.GetUnit(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return notFoundErr("trade unit", id)
		}

		if in.Title != nil {
			u.Title = *in.Title
		}
		if in.UnitType != nil {
			u.Type = *in.UnitType
		}
		if in.Provider.Set {
			u.ProviderID = in.Provider.ID
		}

		if in.UnitType != nil || in.Provider.Set {
			var provider *Unit
			if u.ProviderID != nil {
				provider, err = st.GetUnit(ctx, *u.ProviderID)
				if err != nil {
					return err
				}
				if provider == nil {
					return notFoundErr("trade unit", *u.ProviderID)
				}
			}
			level, err := ResolveLevel(u.Type, provider)
			if err != nil {
				return err
			}
			u.Level = level
		}

		if in.Contact.Set {
			if in.Contact.ID != nil {
				c, err := st.GetContact(ctx, *in.Contact.ID)
				if err != nil {
					return err
				}
				if c == nil {
					return notFoundErr("contact", *in.Contact.ID)
				}
			}
			u.ContactID = in.Contact.ID
		}

		saved, err := st.SaveUnit(ctx, u)
		if err != nil {
			return err
		}
		if in.Products != nil {
			if _, err := fetchProducts(ctx, st, *in.Products); err != nil {
				return err
			}
			if err := st.SetUnitProducts(ctx, saved.ID, *in.Products); err != nil {
				return err
			}
		}

		full, err := st.GetUnit(ctx, saved.ID)
		if err != nil {
			return err
		}
		view, err = Project(ctx, st, full)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Delete removes the unit. Dependents keep their levels; their provider
// reference simply goes away.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteUnit(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundErr("trade unit", id)
	}
	return nil
}

// ResetDebt zeroes the debt of every listed unit. Levels and providers are
// untouched; this is the only way debt changes after creation.
func (s *Service) ResetDebt(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, validationErr("ids", "must not be empty")
	}
	n, err := s.store.ResetDebt(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.log.Info("debt reset", "requested", len(ids), "updated", n)
	return n, nil
}

func fetchProducts(ctx context.Context, st Store, ids []int64) ([]products.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ps, err := st.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]bool, len(ps))
	for _, p := range ps {
		found[p.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, notFoundErr("product", id)
		}
	}
	return ps, nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return validationErr("title", "must not be empty")
	}
	if len(title) > 25 {
		return validationErr("title", "must be at most 25 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return validationErr("contact.email", "must not be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return validationErr("contact.email", "must be a valid email address")
	}
	return nil
}
