package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
)

type postgresMenuRepo struct{ db *sql.DB }

// NewPostgresMenuRepository creates a PostgreSQL-backed menu repository.
func NewPostgresMenuRepository(db *sql.DB) MenuRepository {
	return &postgresMenuRepo{db: db}
}

func (r *postgresMenuRepo) Create(ctx context.Context, item *MenuItem) error {
	overrides, err := json.Marshal(item.ChannelPrices)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, category, price, channel_prices, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.Name, item.Category, item.Price, overrides, item.ImageURL)
	return err
}

func (r *postgresMenuRepo) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	return scanMenuItem(r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price, channel_prices, image_url
		FROM menu_items WHERE id = $1`, id))
}

func (r *postgresMenuRepo) List(ctx context.Context) ([]*MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, price, channel_prices, image_url
		FROM menu_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresMenuRepo) Update(ctx context.Context, item *MenuItem) error {
	overrides, err := json.Marshal(item.ChannelPrices)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET name = $1, category = $2, price = $3, channel_prices = $4, image_url = $5
		WHERE id = $6`,
		item.Name, item.Category, item.Price, overrides, item.ImageURL, item.ID)
	return err
}

func (r *postgresMenuRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanMenuItem(row rowScanner) (*MenuItem, error) {
	item := &MenuItem{}
	var overrides []byte
	var imageURL sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &overrides, &imageURL); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := json.Unmarshal(overrides, &item.ChannelPrices); err != nil {
			return nil, err
		}
	}
	if imageURL.Valid {
		item.ImageURL = imageURL.String
	}
	return item, nil
}

type postgresCategoryRepo struct{ db *sql.DB }

// NewPostgresCategoryRepository creates a PostgreSQL-backed category repository.
func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepo{db: db}
}

func (r *postgresCategoryRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	return err
}

func (r *postgresCategoryRepo) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *postgresCategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}
