package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusNew.IsValid())
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.True(t, OrderStatusCanceled.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusNew.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusNew.CanTransitionTo(OrderStatusCanceled))

	// Terminal states stay terminal.
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusNew))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCanceled))
	assert.False(t, OrderStatusCanceled.CanTransitionTo(OrderStatusNew))
	assert.False(t, OrderStatusCanceled.CanTransitionTo(OrderStatusCompleted))

	assert.False(t, OrderStatusNew.CanTransitionTo(OrderStatusNew))
}

func TestProduct_EffectivePrice(t *testing.T) {
	product := &Product{Price: 100}
	assert.Equal(t, int64(100), product.EffectivePrice())

	discounted := int64(80)
	product.NewPrice = &discounted
	assert.Equal(t, int64(80), product.EffectivePrice())
}
