package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdom "ardulimp/internal/domain/product"
)

type fakeImageStore struct {
	uploads []string
	err     error
}

func (s *fakeImageStore) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	_, _ = io.Copy(io.Discard, r)
	s.uploads = append(s.uploads, objectName)
	return "https://storage.googleapis.com/ardulimp/" + objectName, nil
}

func (s *fakeImageStore) Remove(_ context.Context, _ string) error { return nil }

func TestProductCreate(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUsecaseWithClock(repo, nil, fixedClock{testNow}, staticID("p-1"))

	p, err := uc.Create(context.Background(), CreateProductInput{
		Name: " Detergente ", Category: "Limpeza", Unit: "500ml", Price: 1099, StockQuantity: 10, MinStockQuantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Detergente", p.Name)
	assert.True(t, p.Status)
	assert.NotNil(t, repo.products["p-1"])

	_, err = uc.Create(context.Background(), CreateProductInput{Name: "  ", Price: 100})
	assert.ErrorIs(t, err, productdom.ErrInvalidProduct)

	_, err = uc.Create(context.Background(), CreateProductInput{Name: "Sabão", Price: -1})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)
}

func TestProductUpdate(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p-1", 1000))
	uc := NewProductUsecaseWithClock(repo, nil, fixedClock{testNow}, nil)

	price := int64(1299)
	p, err := uc.Update(context.Background(), "p-1", productdom.Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1299), p.Price)
	assert.Equal(t, int64(1299), repo.products["p-1"].Price)

	_, err = uc.Update(context.Background(), "ghost", productdom.Patch{})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductListCatalogFiltersInactive(t *testing.T) {
	active := testProduct("p-1", 1000)
	inactive := testProduct("p-2", 500)
	inactive.Status = false
	repo := newFakeProductRepo(active, inactive)
	uc := NewProductUsecaseWithClock(repo, nil, fixedClock{testNow}, nil)

	list, err := uc.ListCatalog(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "p-1", list[0].ID)

	all, err := uc.ListAdmin(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductUploadImage(t *testing.T) {
	repo := newFakeProductRepo(testProduct("p-1", 1000))
	images := &fakeImageStore{}
	uc := NewProductUsecaseWithClock(repo, images, fixedClock{testNow}, nil)

	p, err := uc.UploadImage(context.Background(), "p-1", "foto.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Equal(t, []string{"products/p-1/foto.png"}, images.uploads)
	assert.Contains(t, p.ImageURL, "products/p-1/foto.png")
	assert.Equal(t, p.ImageURL, repo.products["p-1"].ImageURL)
}

func TestProductStats(t *testing.T) {
	older := testProduct("p-1", 1000)
	newer := testProduct("p-2", 500)
	newer.CreatedAt = testNow.Add(time.Hour)
	newer.Category = "Higiene"
	repo := newFakeProductRepo(older, newer)
	uc := NewProductUsecaseWithClock(repo, nil, fixedClock{testNow}, nil)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ProductCount)
	assert.Equal(t, 2, stats.CategoryCount)
	require.NotNil(t, stats.Latest)
	assert.Equal(t, "p-2", stats.Latest.ID)
}
