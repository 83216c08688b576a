package checkout

import "github.com/shopspring/decimal"

var (
	ShippingFee = decimal.RequireFromString("5.99")
	TaxRate     = decimal.RequireFromString("0.08")
)

type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Price derives the order totals for a cart subtotal. Tax is rounded to the
// cent before it is added.
func Price(subtotal decimal.Decimal) Breakdown {
	tax := subtotal.Mul(TaxRate).Round(2)
	return Breakdown{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFee).Add(tax),
	}
}
