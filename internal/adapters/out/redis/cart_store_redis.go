// internal/adapters/out/redis/cart_store_redis.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	cartdom "ardulimp/internal/domain/cart"
)

// CartStoreRedis implements cart.Store on Redis. Carts are stored as JSON
// under cart:<cartId> with an EXPIRE matching the cart TTL, so expiry is
// handled by Redis the way Firestore TTL handles expiresAt.
type CartStoreRedis struct {
	Client *redis.Client
}

func NewCartStoreRedis(client *redis.Client) *CartStoreRedis {
	return &CartStoreRedis{Client: client}
}

func key(cartID string) string { return "cart:" + cartID }

// Get returns (nil, nil) when the key is missing or the payload is
// unreadable; both degrade to an empty cart upstream.
func (s *CartStoreRedis) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_store_redis: redis client is nil")
	}
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, errors.New("cart_store_redis: cartID is empty")
	}

	raw, err := s.Client.Get(ctx, key(cid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c cartdom.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		log.Printf("[cart_store_redis] unreadable cart payload %s: %v", cid, err)
		return nil, nil
	}
	c.ID = cid
	return &c, nil
}

func (s *CartStoreRedis) Save(ctx context.Context, c *cartdom.Cart) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_redis: redis client is nil")
	}
	if c == nil {
		return errors.New("cart_store_redis: cart is nil")
	}
	cid := strings.TrimSpace(c.ID)
	if cid == "" {
		return errors.New("cart_store_redis: Save requires cart.ID")
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}

	ttl := time.Until(c.ExpiresAt)
	if ttl <= 0 {
		ttl = cartdom.DefaultCartTTL
	}
	return s.Client.Set(ctx, key(cid), raw, ttl).Err()
}

func (s *CartStoreRedis) Delete(ctx context.Context, cartID string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_redis: redis client is nil")
	}
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return errors.New("cart_store_redis: cartID is empty")
	}
	return s.Client.Del(ctx, key(cid)).Err()
}
