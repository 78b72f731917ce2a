package units

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/trade-network/internal/domain/contacts"
	"github.com/Spok95/trade-network/internal/domain/products"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same Repo code
// serves plain calls and transaction-scoped ones handed out by Atomic.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repo struct{ db querier }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{db: pool} }

func (r *Repo) Atomic(ctx context.Context, fn func(Store) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&Repo{db: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

const unitColumns = `
	u.id, u.title, u.unit_type, u.provider_id, u.contact_id, u.debt, u.level, u.created_at,
	COALESCE(c.email,''), COALESCE(c.country,''), COALESCE(c.city,''), COALESCE(c.street,''), COALESCE(c.number,'')
`

func scanUnit(row pgx.Row) (*Unit, error) {
	var u Unit
	var email, country, city, street, number string
	if err := row.Scan(
		&u.ID,
		&u.Title,
		&u.Type,
		&u.ProviderID,
		&u.ContactID,
		&u.Debt,
		&u.Level,
		&u.CreatedAt,
		&email,
		&country,
		&city,
		&street,
		&number,
	); err != nil {
		return nil, err
	}
	if u.ContactID != nil {
		u.Contact = &contacts.Contact{
			ID:      *u.ContactID,
			Email:   email,
			Country: country,
			City:    city,
			Street:  street,
			Number:  number,
		}
	}
	return &u, nil
}

func (r *Repo) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+unitColumns+`
		FROM trade_units u
		LEFT JOIN contacts c ON c.id = u.contact_id
		WHERE u.id = $1
	`, id)
	u, err := scanUnit(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadProducts(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *Repo) ListUnits(ctx context.Context, f Filter) ([]Unit, error) {
	q := `
		SELECT ` + unitColumns + `
		FROM trade_units u
		LEFT JOIN contacts c ON c.id = u.contact_id
	`
	var args []any
	if f.City != "" {
		q += ` WHERE c.city = $1`
		args = append(args, f.City)
	}
	q += ` ORDER BY u.id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadProducts(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) loadProducts(ctx context.Context, u *Unit) error {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.title, p.model, p.release, p.price
		FROM products p
		JOIN trade_unit_products tup ON tup.product_id = p.id
		WHERE tup.unit_id = $1
		ORDER BY p.id
	`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Model, &p.Release, &p.Price); err != nil {
			return err
		}
		u.Products = append(u.Products, p)
	}
	return rows.Err()
}

func (r *Repo) SaveUnit(ctx context.Context, u *Unit) (*Unit, error) {
	saved := *u
	saved.Contact = nil
	saved.Products = nil

	if u.ID == 0 {
		row := r.db.QueryRow(ctx, `
			INSERT INTO trade_units (title, unit_type, provider_id, contact_id, debt, level)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, u.Title, u.Type, u.ProviderID, u.ContactID, u.Debt, u.Level)
		if err := row.Scan(&saved.ID, &saved.CreatedAt); err != nil {
			return nil, err
		}
		return &saved, nil
	}

	row := r.db.QueryRow(ctx, `
		UPDATE trade_units
		SET title=$2, unit_type=$3, provider_id=$4, contact_id=$5, debt=$6, level=$7
		WHERE id=$1
		RETURNING created_at
	`, u.ID, u.Title, u.Type, u.ProviderID, u.ContactID, u.Debt, u.Level)
	if err := row.Scan(&saved.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &saved, nil
}

func (r *Repo) SetUnitProducts(ctx context.Context, unitID int64, productIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trade_unit_products WHERE unit_id = $1`, unitID); err != nil {
		return err
	}
	for _, pid := range productIDs {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO trade_unit_products (unit_id, product_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, unitID, pid); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) DeleteUnit(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM trade_units WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ResetDebt(ctx context.Context, ids []int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE trade_units SET debt = 0 WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) GetProducts(ctx context.Context, ids []int64) ([]products.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, title, model, release, price
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []products.Product
	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Model, &p.Release, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetContact(ctx context.Context, id int64) (*contacts.Contact, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, email, COALESCE(country,''), COALESCE(city,''), COALESCE(street,''), COALESCE(number,'')
		FROM contacts
		WHERE id = $1
	`, id)
	var c contacts.Contact
	if err := row.Scan(&c.ID, &c.Email, &c.Country, &c.City, &c.Street, &c.Number); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateContact(ctx context.Context, c *contacts.Contact) (*contacts.Contact, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO contacts (email, country, city, street, number)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,''))
		RETURNING id
	`, c.Email, c.Country, c.City, c.Street, c.Number)
	out := *c
	if err := row.Scan(&out.ID); err != nil {
		return nil, err
	}
	return &out, nil
}
