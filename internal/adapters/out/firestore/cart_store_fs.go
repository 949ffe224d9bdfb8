// internal/adapters/out/firestore/cart_store_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "ardulimp/internal/domain/cart"
)

// CartStoreFS implements cart.Store on Firestore.
//
// Collection design:
// - collection: carts
// - docId: cartId (docId is the source of truth)
// - fields: lines(array), createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartStoreFS struct {
	Client *firestore.Client
}

func NewCartStoreFS(client *firestore.Client) *CartStoreFS {
	return &CartStoreFS{Client: client}
}

func (s *CartStoreFS) col() *firestore.CollectionRef {
	return s.Client.Collection("carts")
}

// Get returns (nil, nil) when the doc is missing or its shape is unreadable;
// both degrade to an empty cart upstream.
func (s *CartStoreFS) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_store_fs: firestore client is nil")
	}
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, errors.New("cart_store_fs: cartID is empty")
	}

	snap, err := s.col().Doc(cid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		log.Printf("[cart_store_fs] unreadable cart doc %s: %v", cid, err)
		return nil, nil
	}

	c := doc.toDomain()
	// docId is the source of truth even when the doc carries no id field
	c.ID = cid
	return c, nil
}

// Save overwrites the full doc (simple and predictable).
func (s *CartStoreFS) Save(ctx context.Context, c *cartdom.Cart) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_store_fs: cart is nil")
	}
	cid := strings.TrimSpace(c.ID)
	if cid == "" {
		return errors.New("cart_store_fs: Save requires cart.ID as docId")
	}

	_, err := s.col().Doc(cid).Set(ctx, cartDocFromDomain(c))
	return err
}

func (s *CartStoreFS) Delete(ctx context.Context, cartID string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_fs: firestore client is nil")
	}
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return errors.New("cart_store_fs: cartID is empty")
	}

	_, err := s.col().Doc(cid).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	Lines []cartLineDoc `firestore:"lines"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

type cartLineDoc struct {
	ProductID string `firestore:"productId"`
	Name      string `firestore:"name"`
	Category  string `firestore:"category"`
	Unit      string `firestore:"unit"`
	ImageURL  string `firestore:"imageUrl"`
	UnitPrice int64  `firestore:"unitPrice"`
	Qty       int    `firestore:"qty"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	lines := make([]cartLineDoc, 0, len(c.Lines))
	for _, l := range c.Lines {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Qty <= 0 {
			continue
		}
		lines = append(lines, cartLineDoc{
			ProductID: pid,
			Name:      l.Name,
			Category:  l.Category,
			Unit:      l.Unit,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
		})
	}
	return cartDoc{
		Lines:     lines,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (d cartDoc) toDomain() *cartdom.Cart {
	lines := make([]cartdom.Line, 0, len(d.Lines))
	seen := map[string]int{}
	for _, l := range d.Lines {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Qty <= 0 {
			continue
		}
		// duplicated ids in a stored doc collapse into one line
		if i, ok := seen[pid]; ok {
			lines[i].Qty += l.Qty
			continue
		}
		seen[pid] = len(lines)
		lines = append(lines, cartdom.Line{
			ProductID: pid,
			Name:      l.Name,
			Category:  l.Category,
			Unit:      l.Unit,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
		})
	}
	return &cartdom.Cart{
		Lines:     lines,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}
