// Package pricing computes cart and order totals in decimal arithmetic.
package pricing

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is exclusive: a subtotal must be strictly above it to ship free.
	FreeShippingThreshold = decimal.NewFromInt(100)
	// ShippingFee is charged when the subtotal does not exceed FreeShippingThreshold.
	ShippingFee = decimal.RequireFromString("9.99")
)

// Line is one priced line: unit price times quantity.
type Line struct {
	Price    float64
	Quantity int
}

// Totals is the breakdown of a set of lines.
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal returns price * quantity.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// Shipping returns the shipping charge for subtotal.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

// Compute sums the lines and applies shipping.
func Compute(lines []Line) Totals {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(LineTotal(l.Price, l.Quantity))
	}
	ship := Shipping(sub)
	return Totals{Subtotal: sub, Shipping: ship, Total: sub.Add(ship)}
}

// View is the JSON-friendly form of Totals, rounded to cents.
type View struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// View rounds each amount to two places.
func (t Totals) View() View {
	return View{
		Subtotal: t.Subtotal.Round(2).InexactFloat64(),
		Shipping: t.Shipping.Round(2).InexactFloat64(),
		Total:    t.Total.Round(2).InexactFloat64(),
	}
}
