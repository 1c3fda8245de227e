package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmpty(t *testing.T) {
	assert.True(t, CartSnapshot{}.Empty())
	assert.True(t, CartSnapshot{ItemCount: 0, Items: []CartLine{{ID: 1}}}.Empty())
	assert.True(t, CartSnapshot{ItemCount: 2}.Empty())
	assert.False(t, CartSnapshot{ItemCount: 2, Items: []CartLine{{ID: 1}}}.Empty())
}

func TestMoneyDisplay(t *testing.T) {
	m := NewMoney(decimal.NewFromInt(500))
	assert.Equal(t, "500 ₽", m.Display())

	var zero Money
	assert.Equal(t, "0 ₽", zero.Display())
}

func TestSnapshotDecode(t *testing.T) {
	payload := `{"item_count":2,"total":500,"items":[{"id":7,"product_id":3,"name":"Mug","quantity":2,"subtotal":500}]}`

	var snap CartSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))

	assert.Equal(t, 2, snap.ItemCount)
	assert.True(t, snap.Total.Amount.Equal(decimal.NewFromInt(500)))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(7), snap.Items[0].ID)
	assert.Equal(t, int64(3), snap.Items[0].ProductID)
	assert.Equal(t, "Mug", snap.Items[0].Name)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, "500 ₽", snap.Items[0].Subtotal.Display())
}

func TestSnapshotDecode_QuotedAmount(t *testing.T) {
	payload := `{"item_count":1,"total":"1200.50","items":[]}`

	var snap CartSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))
	assert.Equal(t, "1200.5 ₽", snap.Total.Display())
}
