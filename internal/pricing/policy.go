// Package pricing derives cart totals from line items.
//
// Amounts are never rounded while summing. Only the tax is rounded to cents,
// and Format renders two decimals for display.
package pricing

import (
	"github.com/Yash24242424/cloneverse-express/internal/domain/model"

	"github.com/shopspring/decimal"
)

// Policy holds the deployment-specific pricing constants.
type Policy struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// DefaultPolicy matches the storefront defaults: 8% tax, free shipping over 999, otherwise 99.
func DefaultPolicy() Policy {
	return Policy{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(999),
		FlatShippingFee:       decimal.NewFromInt(99),
	}
}

// ComputeTotals is pure: the same items and policy always give the same totals.
func ComputeTotals(items []model.LineItem, p Policy) model.Totals {
	subtotal := decimal.Zero
	var count int64
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Quantity
	}

	tax := Round2(subtotal.Mul(p.TaxRate))
	shipping := Shipping(subtotal, p)

	return model.Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		Total:          subtotal.Add(tax).Add(shipping),
		TotalItemCount: count,
	}
}

// Shipping is free only when the subtotal is strictly above the threshold.
// An empty cart (subtotal 0) pays the flat fee unless the threshold is negative.
func Shipping(subtotal decimal.Decimal, p Policy) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders an amount for display, e.g. "216.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
