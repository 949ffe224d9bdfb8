// internal/domain/category/entity.go
package category

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("category: not found")
	ErrInvalidCategory = errors.New("category: invalid")
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(id, name string, now time.Time) (*Category, error) {
	c := &Category{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename trims and re-validates the new name.
func (c *Category) Rename(name string, now time.Time) error {
	if c == nil {
		return ErrInvalidCategory
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = now
	return c.validate()
}

func (c *Category) validate() error {
	if c == nil || strings.TrimSpace(c.ID) == "" || c.Name == "" {
		return ErrInvalidCategory
	}
	return nil
}
