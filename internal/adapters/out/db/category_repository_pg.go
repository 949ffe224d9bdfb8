package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbcommon "ardulimp/internal/adapters/out/db/common"
	categorydom "ardulimp/internal/domain/category"
)

// PostgreSQL implementation of category.Repository
type CategoryRepositoryPG struct {
	DB *sql.DB
}

func NewCategoryRepositoryPG(db *sql.DB) *CategoryRepositoryPG {
	return &CategoryRepositoryPG{DB: db}
}

func (r *CategoryRepositoryPG) Insert(ctx context.Context, c *categorydom.Category) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		strings.TrimSpace(c.ID), c.Name, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return fmt.Errorf("category %q already exists: %w", c.Name, err)
		}
		return err
	}
	return nil
}

func (r *CategoryRepositoryPG) Update(ctx context.Context, c *categorydom.Category) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx,
		`UPDATE categories SET name = $2, updated_at = $3 WHERE id = $1`,
		strings.TrimSpace(c.ID), c.Name, c.UpdatedAt.UTC())
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return categorydom.ErrNotFound
	}
	return nil
}

func (r *CategoryRepositoryPG) FindByID(ctx context.Context, id string) (*categorydom.Category, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, strings.TrimSpace(id))
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepositoryPG) List(ctx context.Context) ([]*categorydom.Category, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*categorydom.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepositoryPG) Delete(ctx context.Context, id string) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return categorydom.ErrNotFound
	}
	return nil
}

func scanCategory(s dbcommon.RowScanner) (*categorydom.Category, error) {
	var (
		c                    categorydom.Category
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(&c.ID, &c.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return &c, nil
}
