package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyShapes(t *testing.T) {
	assert.Equal(t, "cart:u1:1:10", CartKey("u1", 1, 10))
	assert.Equal(t, "carts:u1", CartCountKey("u1"))
	assert.Equal(t, "orders:u1:2:20", OrderListKey("u1", 2, 20))
	assert.Equal(t, "order:u1:o1", OrderDetailKey("u1", "o1"))
	assert.Equal(t, "origin_address:u1:1:10", AddressListKey("u1", 1, 10))
}

func TestShippingCostKey(t *testing.T) {
	k1 := ShippingCostKey("JKT", "BDG", 1000, "jne")
	k2 := ShippingCostKey("JKT", "BDG", 1000, "jne")
	k3 := ShippingCostKey("JKT", "BDG", 1001, "jne")

	assert.Equal(t, k1, k2, "same inputs hash to the same key")
	assert.NotEqual(t, k1, k3, "different inputs must not collide")
	assert.Contains(t, k1, "shipping_cost:")
}

func TestNilStoreDegrades(t *testing.T) {
	// A store without a redis client reports misses and swallows writes:
	// every caller falls back to the database.
	store := NewStore(nil)
	ctx := context.Background()

	var out int
	assert.False(t, store.GetJSON(ctx, "cart:u1:1:10", &out))
	store.SetJSON(ctx, "cart:u1:1:10", 42, TTLCartSnapshot)
	store.InvalidateCart(ctx, "u1")
	store.InvalidateCustomerOrders(ctx, "u1")
	store.InvalidateUser(ctx, "u1")
	store.InvalidateCatalog(ctx)

	var nilStore *Store
	assert.False(t, nilStore.GetJSON(ctx, "carts:u1", &out))
	nilStore.InvalidateCustomerOrders(ctx, "u1")
}
