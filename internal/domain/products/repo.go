package products

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, p *Product) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, model, release, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, model, release, price
	`, p.Title, p.Model, p.Release, p.Price)

	var out Product
	if err := row.Scan(&out.ID, &out.Title, &out.Model, &out.Release, &out.Price); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, model, release, price
		FROM products
		WHERE id = $1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Title, &p.Model, &p.Release, &p.Price); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, model, release, price
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Model, &p.Release, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, p *Product) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE products
		SET title=$2, model=$3, release=$4, price=$5
		WHERE id=$1
		RETURNING id, title, model, release, price
	`, p.ID, p.Title, p.Model, p.Release, p.Price)

	var out Product
	if err := row.Scan(&out.ID, &out.Title, &out.Model, &out.Release, &out.Price); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
