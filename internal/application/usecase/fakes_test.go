package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	cartdom "ardulimp/internal/domain/cart"
	categorydom "ardulimp/internal/domain/category"
	orderdom "ardulimp/internal/domain/order"
	productdom "ardulimp/internal/domain/product"
)

// ---------------------------------------------------------------------
// shared test doubles
// ---------------------------------------------------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeCartStore keeps carts in a map.
type fakeCartStore struct {
	carts   map[string]*cartdom.Cart
	getErr  error
	saveErr error
	delErr  error
	deleted []string
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*cartdom.Cart{}}
}

func (s *fakeCartStore) Get(_ context.Context, id string) (*cartdom.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.carts[id], nil
}

func (s *fakeCartStore) Save(_ context.Context, c *cartdom.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.carts[c.ID] = c
	return nil
}

func (s *fakeCartStore) Delete(_ context.Context, id string) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.deleted = append(s.deleted, id)
	delete(s.carts, id)
	return nil
}

// fakeProductRepo keeps products in a map; AdjustStock floors at zero like
// the Postgres implementation.
type fakeProductRepo struct {
	products    map[string]*productdom.Product
	adjustFail  map[string]error
	adjustCalls []string
	statsErr    error
}

func newFakeProductRepo(ps ...*productdom.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*productdom.Product{}, adjustFail: map[string]error{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Insert(_ context.Context, p *productdom.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *productdom.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return productdom.ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

// FindByID returns a copy, mirroring a row rehydrated from the database.
func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*productdom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(_ context.Context, f productdom.Filter) ([]*productdom.Product, error) {
	out := []*productdom.Product{}
	for _, p := range r.products {
		if f.ActiveOnly && !p.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	r.adjustCalls = append(r.adjustCalls, id)
	if err := r.adjustFail[id]; err != nil {
		return 0, err
	}
	p, ok := r.products[id]
	if !ok {
		return 0, productdom.ErrNotFound
	}
	q := p.StockQuantity + delta
	if q < 0 {
		q = 0
	}
	p.StockQuantity = q
	return q, nil
}

func (r *fakeProductRepo) Stats(_ context.Context) (*productdom.Stats, error) {
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	cats := map[string]struct{}{}
	var latest *productdom.Product
	for _, p := range r.products {
		if p.Category != "" {
			cats[p.Category] = struct{}{}
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return &productdom.Stats{ProductCount: len(r.products), CategoryCount: len(cats), Latest: latest}, nil
}

// fakeOrderRepo keeps orders in a map and records status writes.
type fakeOrderRepo struct {
	orders       map[string]*orderdom.Order
	insertErr    error
	statusWrites int
	statusErr    error
}

func newFakeOrderRepo(os ...*orderdom.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*orderdom.Order{}}
	for _, o := range os {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) Insert(_ context.Context, o *orderdom.Order) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *orderdom.Order) error {
	if _, ok := r.orders[o.ID]; !ok {
		return orderdom.ErrNotFound
	}
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, o *orderdom.Order) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statusWrites++
	r.orders[o.ID] = o
	return nil
}

// FindByID returns a copy, mirroring a row rehydrated from the database.
func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*orderdom.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f orderdom.Filter) ([]*orderdom.Order, error) {
	out := []*orderdom.Order{}
	for _, o := range r.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if q := strings.TrimSpace(f.Query); q != "" {
			if o.ID != q && !strings.Contains(strings.ToLower(o.CustomerName), strings.ToLower(q)) {
				continue
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return orderdom.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// fakeCategoryRepo keeps categories in a map.
type fakeCategoryRepo struct {
	categories map[string]*categorydom.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*categorydom.Category{}}
}

func (r *fakeCategoryRepo) Insert(_ context.Context, c *categorydom.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *categorydom.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return categorydom.ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*categorydom.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*categorydom.Category, error) {
	out := []*categorydom.Category{}
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return categorydom.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

// fakeTx runs fn directly. When fn fails it restores the snapshot taken by
// the test (rollback stand-in for the fakes, which mutate in place).
type fakeTx struct {
	rollback func()
	calls    int
}

func (t *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if err := fn(ctx); err != nil {
		if t.rollback != nil {
			t.rollback()
		}
		return err
	}
	return nil
}

// fakeLinks renders a recognizable link.
type fakeLinks struct{}

func (fakeLinks) Link(o *orderdom.Order) string { return "wa://" + o.ID }

// fakeNotifier records notifications and can fail.
type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) NotifyNewOrder(_ context.Context, o *orderdom.Order) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, o.ID)
	return nil
}

var errBoom = errors.New("boom")
