package contacts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, c *Contact) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (email, country, city, street, number)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,''))
		RETURNING id, email, COALESCE(country,''), COALESCE(city,''), COALESCE(street,''), COALESCE(number,'')
	`, c.Email, c.Country, c.City, c.Street, c.Number)

	var out Contact
	if err := row.Scan(&out.ID, &out.Email, &out.Country, &out.City, &out.Street, &out.Number); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, COALESCE(country,''), COALESCE(city,''), COALESCE(street,''), COALESCE(number,'')
		FROM contacts
		WHERE id = $1
	`, id)
	var c Contact
	if err := row.Scan(&c.ID, &c.Email, &c.Country, &c.City, &c.Street, &c.Number); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, COALESCE(country,''), COALESCE(city,''), COALESCE(street,''), COALESCE(number,'')
		FROM contacts
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.Country, &c.City, &c.Street, &c.Number); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, c *Contact) (*Contact, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET email=$2, country=NULLIF($3,''), city=NULLIF($4,''), street=NULLIF($5,''), number=NULLIF($6,'')
		WHERE id=$1
		RETURNING id, email, COALESCE(country,''), COALESCE(city,''), COALESCE(street,''), COALESCE(number,'')
	`, c.ID, c.Email, c.Country, c.City, c.Street, c.Number)

	var out Contact
	if err := row.Scan(&out.ID, &out.Email, &out.Country, &out.City, &out.Street, &out.Number); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
