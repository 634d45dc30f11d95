package pricing_test

import (
	"testing"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func testPolicy() pricing.Policy {
	return pricing.Policy{
		TaxRate:               dec("0.08"),
		FreeShippingThreshold: dec("100"),
		FlatShippingFee:       dec("9.99"),
	}
}

func TestComputeTotals_FreeShippingAboveThreshold(t *testing.T) {
	items := []model.LineItem{
		{ProductID: "A", UnitPrice: dec("50"), Quantity: 2},
		{ProductID: "B", UnitPrice: dec("25"), Quantity: 4},
	}

	got := pricing.ComputeTotals(items, testPolicy())

	assertAmount(t, "200", got.Subtotal)
	assertAmount(t, "16.00", got.Tax)
	assertAmount(t, "0", got.Shipping)
	assertAmount(t, "216.00", got.Total)
	assert.Equal(t, int64(6), got.TotalItemCount)
}

func TestComputeTotals_ThresholdIsStrict(t *testing.T) {
	items := []model.LineItem{{ProductID: "A", UnitPrice: dec("100"), Quantity: 1}}

	got := pricing.ComputeTotals(items, testPolicy())

	assertAmount(t, "100", got.Subtotal)
	assertAmount(t, "8", got.Tax)
	assertAmount(t, "9.99", got.Shipping)
	assertAmount(t, "117.99", got.Total)
}

func TestComputeTotals_Empty(t *testing.T) {
	got := pricing.ComputeTotals(nil, testPolicy())

	assertAmount(t, "0", got.Subtotal)
	assertAmount(t, "0", got.Tax)
	assertAmount(t, "9.99", got.Shipping)
	assertAmount(t, "9.99", got.Total)
	assert.Equal(t, int64(0), got.TotalItemCount)
}

func TestComputeTotals_Empty_NegativeThresholdShipsFree(t *testing.T) {
	p := testPolicy()
	p.FreeShippingThreshold = dec("-1")

	got := pricing.ComputeTotals([]model.LineItem{}, p)

	assertAmount(t, "0", got.Shipping)
	assertAmount(t, "0", got.Total)
}

func TestComputeTotals_CountIsSumOfQuantities(t *testing.T) {
	items := []model.LineItem{
		{ProductID: "A", UnitPrice: dec("1"), Quantity: 3},
		{ProductID: "B", UnitPrice: dec("1"), Quantity: 7},
	}

	got := pricing.ComputeTotals(items, testPolicy())

	assert.Equal(t, int64(10), got.TotalItemCount)
}

func TestComputeTotals_SubtotalIsNotRoundedPerLine(t *testing.T) {
	items := []model.LineItem{
		{ProductID: "A", UnitPrice: dec("0.333"), Quantity: 3},
		{ProductID: "B", UnitPrice: dec("0.335"), Quantity: 1},
	}

	got := pricing.ComputeTotals(items, testPolicy())

	assertAmount(t, "1.334", got.Subtotal)
	assertAmount(t, "0.11", got.Tax)
}

func TestComputeTotals_TaxRoundedToCents(t *testing.T) {
	p := testPolicy()
	p.TaxRate = dec("0.07")

	got := pricing.ComputeTotals([]model.LineItem{{ProductID: "A", UnitPrice: dec("10.05"), Quantity: 1}}, p)
	assertAmount(t, "0.70", got.Tax)

	got = pricing.ComputeTotals([]model.LineItem{{ProductID: "A", UnitPrice: dec("19.99"), Quantity: 1}}, testPolicy())
	assertAmount(t, "1.60", got.Tax)
}

func TestDefaultPolicy(t *testing.T) {
	p := pricing.DefaultPolicy()

	assertAmount(t, "0.08", p.TaxRate)
	assertAmount(t, "999", p.FreeShippingThreshold)
	assertAmount(t, "99", p.FlatShippingFee)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "216.00", pricing.Format(dec("216")))
	assert.Equal(t, "9.99", pricing.Format(dec("9.99")))
	assert.Equal(t, "1.33", pricing.Format(dec("1.334")))
}
