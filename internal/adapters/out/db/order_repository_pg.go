package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	dbcommon "ardulimp/internal/adapters/out/db/common"
	orderdom "ardulimp/internal/domain/order"
)

// PostgreSQL implementation of order.Repository.
// Items are stored as a jsonb snapshot; they are frozen at checkout and only
// replaced wholesale by admin edits.
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `
  id, customer_name, customer_neighborhood, delivery_type, observations,
  items, total_amount, status, created_at, updated_at`

// ========================
// RepositoryPort impl
// ========================

func (r *OrderRepositoryPG) Insert(ctx context.Context, o *orderdom.Order) error {
	run := dbcommon.GetRunner(ctx, r.DB)

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO orders (
  id, customer_name, customer_neighborhood, delivery_type, observations,
  items, total_amount, status, created_at, updated_at
) VALUES (
  $1, $2, $3, $4, $5,
  $6::jsonb, $7, $8, $9, $10
)`
	_, err = run.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		o.CustomerName,
		o.CustomerNeighborhood,
		string(o.DeliveryType),
		o.Observations,
		string(itemsJSON),
		o.TotalAmount,
		string(o.Status),
		o.CreatedAt.UTC(),
		o.UpdatedAt.UTC(),
	)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return fmt.Errorf("order %s already exists: %w", o.ID, err)
		}
		return err
	}
	return nil
}

func (r *OrderRepositoryPG) Update(ctx context.Context, o *orderdom.Order) error {
	run := dbcommon.GetRunner(ctx, r.DB)

	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	const q = `
UPDATE orders SET
  customer_name         = $2,
  customer_neighborhood = $3,
  delivery_type         = $4,
  observations          = $5,
  items                 = $6::jsonb,
  total_amount          = $7,
  status                = $8,
  updated_at            = $9
WHERE id = $1`
	res, err := run.ExecContext(ctx, q,
		strings.TrimSpace(o.ID),
		o.CustomerName,
		o.CustomerNeighborhood,
		string(o.DeliveryType),
		o.Observations,
		string(itemsJSON),
		o.TotalAmount,
		string(o.Status),
		o.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

// UpdateStatus writes only status and updated_at; callers pair it with the
// stock adjustments inside one transaction.
func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, o *orderdom.Order) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		strings.TrimSpace(o.ID), string(o.Status), o.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

func (r *OrderRepositoryPG) FindByID(ctx context.Context, id string) (*orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, strings.TrimSpace(id))
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OrderRepositoryPG) List(ctx context.Context, f orderdom.Filter) ([]*orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	where := []string{}
	args := []any{}
	if f.Status != nil {
		dbcommon.AppendCond(&where, &args, "status = $%d", string(*f.Status))
	}
	if v := strings.TrimSpace(f.Query); v != "" {
		args = append(args, v, "%"+v+"%")
		where = append(where, fmt.Sprintf("(id = $%d OR customer_name ILIKE $%d)", len(args)-1, len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	q := fmt.Sprintf(`SELECT %s FROM orders %s ORDER BY created_at DESC, id DESC`, orderColumns, whereSQL)

	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*orderdom.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepositoryPG) Delete(ctx context.Context, id string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

// ========================
// Helpers
// ========================

func scanOrder(s dbcommon.RowScanner) (*orderdom.Order, error) {
	var (
		o                    orderdom.Order
		delivery, status     string
		itemsRaw             []byte
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(
		&o.ID, &o.CustomerName, &o.CustomerNeighborhood, &delivery, &o.Observations,
		&itemsRaw, &o.TotalAmount, &status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
			return nil, fmt.Errorf("order %s: decode items: %w", o.ID, err)
		}
	}

	o.DeliveryType = orderdom.DeliveryType(delivery)
	o.Status = orderdom.Status(status)
	o.CreatedAt = createdAt.UTC()
	o.UpdatedAt = updatedAt.UTC()
	return &o, nil
}
