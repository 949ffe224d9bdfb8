// internal/application/usecase/category_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	categorydom "ardulimp/internal/domain/category"
)

var (
	ErrCategoryInvalidArgument = errors.New("category_usecase: invalid argument")
	ErrCategoryNotFound        = errors.New("category_usecase: not found")
)

// CategoryUsecase covers the admin category CRUD.
type CategoryUsecase struct {
	categories categorydom.Repository
	clock      Clock
	newID      func() string
}

func NewCategoryUsecase(categories categorydom.Repository) *CategoryUsecase {
	return &CategoryUsecase{
		categories: categories,
		clock:      systemClock{},
		newID:      uuid.NewString,
	}
}

// NewCategoryUsecaseWithClock is useful for tests.
func NewCategoryUsecaseWithClock(categories categorydom.Repository, clock Clock, newID func() string) *CategoryUsecase {
	uc := NewCategoryUsecase(categories)
	if clock != nil {
		uc.clock = clock
	}
	if newID != nil {
		uc.newID = newID
	}
	return uc
}

// List returns all categories ordered by name.
func (uc *CategoryUsecase) List(ctx context.Context) ([]*categorydom.Category, error) {
	return uc.categories.List(ctx)
}

// Create persists a new category; the name is trimmed and must be non-empty.
func (uc *CategoryUsecase) Create(ctx context.Context, name string) (*categorydom.Category, error) {
	c, err := categorydom.New(uc.newID(), name, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename changes the category name.
func (uc *CategoryUsecase) Rename(ctx context.Context, id, name string) (*categorydom.Category, error) {
	cid := strings.TrimSpace(id)
	if cid == "" {
		return nil, ErrCategoryInvalidArgument
	}
	c, err := uc.categories.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	if err := c.Rename(name, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the category permanently.
func (uc *CategoryUsecase) Delete(ctx context.Context, id string) error {
	cid := strings.TrimSpace(id)
	if cid == "" {
		return ErrCategoryInvalidArgument
	}
	if err := uc.categories.Delete(ctx, cid); err != nil {
		if errors.Is(err, categorydom.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
