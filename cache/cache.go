package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "cache").Logger()

// View TTLs. Keys and TTLs are a contract with the invalidation rules below:
// changing a key shape means changing the matching invalidation pattern.
const (
	TTLCartSnapshot = 5 * time.Minute
	TTLCartCount    = time.Hour
	TTLOrderList    = time.Hour
	TTLOrderDetail  = time.Hour
	TTLAddresses    = time.Hour
	TTLShippingCost = time.Hour
)

// Store wraps the shared redis client. The cache is a read optimization
// only: every method tolerates a nil client or a redis failure by logging
// and reporting a miss, so callers always fall back to the database.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) enabled() bool {
	return s != nil && s.rdb != nil
}

// Key builders.

func CartKey(customerID string, page, limit int) string {
	return fmt.Sprintf("cart:%s:%d:%d", customerID, page, limit)
}

func CartCountKey(customerID string) string {
	return fmt.Sprintf("carts:%s", customerID)
}

func OrderListKey(customerID string, page, limit int) string {
	return fmt.Sprintf("orders:%s:%d:%d", customerID, page, limit)
}

func OrderDetailKey(customerID, orderID string) string {
	return fmt.Sprintf("order:%s:%s", customerID, orderID)
}

func AddressListKey(customerID string, page, limit int) string {
	return fmt.Sprintf("origin_address:%s:%d:%d", customerID, page, limit)
}

// ShippingCostKey hashes the quote inputs so unrelated quotes never collide.
func ShippingCostKey(origin, destination string, weight int, courier string) string {
	h := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d|%s", origin, destination, weight, courier)))
	return "shipping_cost:" + hex.EncodeToString(h[:])
}

// GetJSON loads a cached view into dest. The second return is false on miss
// or on any cache failure.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !s.enabled() {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to database")
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache payload corrupt, dropping key")
		s.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a view with its TTL. Failures are logged and swallowed.
func (s *Store) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if !s.enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// deletePattern removes all keys matching a glob pattern via SCAN; KEYS is
// avoided on the shared client.
func (s *Store) deletePattern(ctx context.Context, pattern string) {
	if !s.enabled() {
		return
	}
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("cache delete failed")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Str("pattern", pattern).Msg("cache scan failed")
	}
}

func (s *Store) delete(ctx context.Context, keys ...string) {
	if !s.enabled() || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}

// InvalidateCart drops the cart views of one customer. Called on every cart
// mutation.
func (s *Store) InvalidateCart(ctx context.Context, customerID string) {
	s.deletePattern(ctx, fmt.Sprintf("cart:%s:*", customerID))
	s.delete(ctx, CartCountKey(customerID))
}

// InvalidateCustomerOrders drops the cart and order views of one customer.
// Called when order creation or a payment state change commits.
func (s *Store) InvalidateCustomerOrders(ctx context.Context, customerID string) {
	s.InvalidateCart(ctx, customerID)
	s.deletePattern(ctx, fmt.Sprintf("order:%s:*", customerID))
	s.deletePattern(ctx, fmt.Sprintf("orders:%s:*", customerID))
}

// InvalidateUser drops profile-derived views after a profile or photo update.
func (s *Store) InvalidateUser(ctx context.Context, customerID string) {
	s.deletePattern(ctx, fmt.Sprintf("user:%s:*", customerID))
}

// InvalidateCatalog drops catalog-wide views after a product or production
// mutation in the catalog subsystem.
func (s *Store) InvalidateCatalog(ctx context.Context) {
	for _, p := range []string{"products:*", "product:*", "productions:*", "production:*"} {
		s.deletePattern(ctx, p)
	}
}
