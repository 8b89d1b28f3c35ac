package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/tryonce/internal/app/service/catalog"
	"github.com/fatflowers/tryonce/internal/models"
)

var now = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func catalogSnapshot() map[string]*models.Product {
	return map[string]*models.Product{
		"p1": {ID: "p1", Name: "Sneaker", Price: 4999, Currency: "INR", Stock: 5, Sizes: []string{"8", "9"}},
		"p2": {ID: "p2", Name: "Tee", Price: 999, Currency: "INR", Stock: 1},
		"p3": {ID: "p3", Name: "Import", Price: 100, Currency: "USD", Stock: 1},
	}
}

func TestBuildOrder_PricesAndMergesLines(t *testing.T) {
	o, err := BuildOrder("u1", &CreateRequest{Items: []ItemRequest{
		{ProductID: "p1", Size: "9", Quantity: 1},
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p1", Size: "9", Quantity: 2},
	}}, catalogSnapshot(), now)
	require.NoError(t, err)
	require.Equal(t, "u1", o.UserID)
	require.Equal(t, models.OrderStatusPending, o.Status)
	require.Len(t, o.Items, 2)
	require.Equal(t, 3, o.Items[0].Quantity)
	require.Equal(t, int64(3*4999+999), o.Total)
	require.Equal(t, "INR", o.Currency)
	require.Equal(t, now, o.CreatedAt)
}

func TestBuildOrder_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		items []ItemRequest
		want  error
	}{
		{"empty", nil, ErrEmptyOrder},
		{"zero quantity", []ItemRequest{{ProductID: "p1", Quantity: 0}}, ErrInvalidItem},
		{"unknown product", []ItemRequest{{ProductID: "nope", Quantity: 1}}, catalog.ErrProductNotFound},
		{"bad size", []ItemRequest{{ProductID: "p1", Size: "12", Quantity: 1}}, ErrInvalidItem},
		{"stock", []ItemRequest{{ProductID: "p2", Quantity: 2}}, ErrOutOfStock},
		{"currency", []ItemRequest{{ProductID: "p2", Quantity: 1}, {ProductID: "p3", Quantity: 1}}, ErrMixedCurrency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildOrder("u1", &CreateRequest{Items: tc.items}, catalogSnapshot(), now)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestGet_NonUUIDIsNotFound(t *testing.T) {
	_, err := (&Service{}).Get(context.Background(), "u1", "../../etc")
	require.ErrorIs(t, err, ErrOrderNotFound)
}
