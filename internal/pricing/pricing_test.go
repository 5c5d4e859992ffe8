package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute_ShippingBoundary(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		shipping string
		total    string
	}{
		{"exactly 100 pays shipping", []Line{{Price: 50, Quantity: 2}}, "9.99", "109.99"},
		{"just above 100 ships free", []Line{{Price: 100.01, Quantity: 1}}, "0", "100.01"},
		{"small cart", []Line{{Price: 10.5, Quantity: 1}, {Price: 2.25, Quantity: 2}}, "9.99", "24.99"},
		{"thirds do not drift", []Line{{Price: 33.33, Quantity: 3}}, "9.99", "109.98"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.lines)
			require.Equal(t, tc.shipping, got.Shipping.String())
			require.Equal(t, tc.total, got.Total.String())
		})
	}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil)
	require.True(t, got.Subtotal.IsZero())
	require.Equal(t, "9.99", got.Shipping.String())
}

func TestView_Rounds(t *testing.T) {
	v := Compute([]Line{{Price: 100.01, Quantity: 1}}).View()
	require.Equal(t, View{Subtotal: 100.01, Shipping: 0, Total: 100.01}, v)
}
