package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbcommon "ardulimp/internal/adapters/out/db/common"
	productdom "ardulimp/internal/domain/product"
)

// PostgreSQL implementation of product.Repository
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `
  id, name, description, category, unit, image_url,
  price, status, stock_quantity, min_stock_quantity,
  created_at, updated_at`

// ========================
// RepositoryPort impl
// ========================

func (r *ProductRepositoryPG) Insert(ctx context.Context, p *productdom.Product) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO products (
  id, name, description, category, unit, image_url,
  price, status, stock_quantity, min_stock_quantity,
  created_at, updated_at
) VALUES (
  $1, $2, $3, $4, $5, $6,
  $7, $8, $9, $10,
  $11, $12
)`
	_, err := run.ExecContext(ctx, q,
		strings.TrimSpace(p.ID),
		p.Name,
		p.Description,
		p.Category,
		p.Unit,
		p.ImageURL,
		p.Price,
		p.Status,
		p.StockQuantity,
		p.MinStockQuantity,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return fmt.Errorf("product %s already exists: %w", p.ID, err)
		}
		return err
	}
	return nil
}

func (r *ProductRepositoryPG) Update(ctx context.Context, p *productdom.Product) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE products SET
  name               = $2,
  description        = $3,
  category           = $4,
  unit               = $5,
  image_url          = $6,
  price              = $7,
  status             = $8,
  stock_quantity     = $9,
  min_stock_quantity = $10,
  updated_at         = $11
WHERE id = $1`
	res, err := run.ExecContext(ctx, q,
		strings.TrimSpace(p.ID),
		p.Name,
		p.Description,
		p.Category,
		p.Unit,
		p.ImageURL,
		p.Price,
		p.Status,
		p.StockQuantity,
		p.MinStockQuantity,
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return productdom.ErrNotFound
	}
	return nil
}

func (r *ProductRepositoryPG) FindByID(ctx context.Context, id string) (*productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepositoryPG) List(ctx context.Context, f productdom.Filter) ([]*productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	where := []string{}
	args := []any{}
	if f.ActiveOnly {
		where = append(where, "status = TRUE")
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		dbcommon.AppendCond(&where, &args, "category = $%d", v)
	}
	if v := strings.TrimSpace(f.Query); v != "" {
		args = append(args, "%"+v+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	q := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY created_at DESC, id DESC`, productColumns, whereSQL)

	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*productdom.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepositoryPG) Delete(ctx context.Context, id string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return productdom.ErrNotFound
	}
	return nil
}

// AdjustStock applies delta atomically and floors the result at zero, so a
// concurrent approval can never drive the quantity negative or lose a write.
func (r *ProductRepositoryPG) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
UPDATE products SET
  stock_quantity = GREATEST(0, stock_quantity + $2),
  updated_at     = NOW()
WHERE id = $1
RETURNING stock_quantity`
	var qty int
	if err := run.QueryRowContext(ctx, q, strings.TrimSpace(id), delta).Scan(&qty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, productdom.ErrNotFound
		}
		return 0, err
	}
	return qty, nil
}

func (r *ProductRepositoryPG) Stats(ctx context.Context) (*productdom.Stats, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	stats := &productdom.Stats{}
	const countQ = `
SELECT COUNT(*),
       COUNT(DISTINCT category) FILTER (WHERE category <> '')
FROM products`
	if err := run.QueryRowContext(ctx, countQ).Scan(&stats.ProductCount, &stats.CategoryCount); err != nil {
		return nil, err
	}

	row := run.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC LIMIT 1`)
	latest, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats, nil
		}
		return nil, err
	}
	stats.Latest = latest
	return stats, nil
}

// ========================
// Helpers
// ========================

func scanProduct(s dbcommon.RowScanner) (*productdom.Product, error) {
	var (
		p                    productdom.Product
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Unit, &p.ImageURL,
		&p.Price, &p.Status, &p.StockQuantity, &p.MinStockQuantity,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return &p, nil
}
