package repositories

import (
	"context"
	"database/sql"
	"strings"

	"shop-backend/internal/domain"
	"shop-backend/internal/domain/models"
)

type ProductRepository struct {
	DB *sql.DB
}

const productColumns = `id, title, image, category, COALESCE(description, ''), price, created_at`

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var price sql.NullFloat64
	err := row.Scan(&p.ID, &p.Title, &p.Image, &p.Category, &p.Description, &price, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	return p, nil
}

func (r ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByIDs returns the matching products keyed by id; missing ids are
// simply absent so the caller can report which ones.
func (r ProductRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := map[int64]models.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, 0, len(ids))
	placeholders := make([]string, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, "?")
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id IN ("+strings.Join(placeholders, ",")+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r ProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundError{Resource: "product", Err: err}
	}
	return p, err
}

func (r ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	var price any
	if p.Price != nil {
		price = *p.Price
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO products (title, image, category, description, price)
		VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Image, p.Category, p.Description, price)
	if err != nil {
		return p, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return p, err
	}
	return r.GetByID(ctx, id)
}

func (r ProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	var price any
	if p.Price != nil {
		price = *p.Price
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE products SET title = ?, image = ?, category = ?, description = ?, price = ?
		WHERE id = ?`,
		p.Title, p.Image, p.Category, p.Description, price, p.ID)
	if err != nil {
		return p, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r ProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return p, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return p, err
	}
	return p, nil
}
