package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrder_Counts(t *testing.T) {
	require.True(t, (&Order{Status: OrderStatusPaid}).Counts())
	require.False(t, (&Order{Status: OrderStatusCancelled}).Counts())
	require.False(t, (*Order)(nil).Counts())
}

func TestProduct_InStock(t *testing.T) {
	p := &Product{Stock: 2}
	require.True(t, p.InStock(2))
	require.False(t, p.InStock(3))
	require.False(t, p.InStock(0))
}

func TestAll_UniqueCollectionNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range All() {
		require.False(t, seen[c.CollectionName()], c.CollectionName())
		seen[c.CollectionName()] = true
		require.NotEmpty(t, c.Indexes())
	}
}
