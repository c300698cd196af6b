// Package billing computes invoice line amounts and invoice totals. All
// arithmetic runs on decimals and every intermediate result is rounded to
// two places immediately, so summing stored line totals by hand always
// matches the computed invoice total to the cent.
package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrInvalidTaxRate  = errors.New("tax rate must be between 0 and 1")
)

// ItemAmounts are the derived monetary fields of one invoice line, each
// rounded to 2dp.
type ItemAmounts struct {
	Amount        float64 `json:"amount"`         // quantity * unit_price
	TaxAmount     float64 `json:"tax_amount"`     // amount * tax_rate
	RateInclusive float64 `json:"rate_inclusive"` // unit_price * (1 + tax_rate)
	LineTotal     float64 `json:"line_total"`     // amount + tax_amount
}

// round2 rounds half away from zero at two decimal places, the discrete
// step applied after every arithmetic operation.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateItemAmounts derives the monetary fields of a line item from
// quantity, tax-exclusive unit price and fractional tax rate.
func CalculateItemAmounts(quantity, unitPrice, taxRate float64) (ItemAmounts, error) {
	if quantity <= 0 {
		return ItemAmounts{}, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return ItemAmounts{}, ErrInvalidPrice
	}
	if taxRate < 0 || taxRate > 1 {
		return ItemAmounts{}, ErrInvalidTaxRate
	}

	qty := decimal.NewFromFloat(quantity)
	price := decimal.NewFromFloat(unitPrice)
	rate := decimal.NewFromFloat(taxRate)

	rateInclusive := round2(price.Mul(decimal.NewFromInt(1).Add(rate)))
	amount := round2(qty.Mul(price))
	taxAmount := round2(amount.Mul(rate))
	lineTotal := round2(amount.Add(taxAmount))

	return ItemAmounts{
		Amount:        amount.InexactFloat64(),
		TaxAmount:     taxAmount.InexactFloat64(),
		RateInclusive: rateInclusive.InexactFloat64(),
		LineTotal:     lineTotal.InexactFloat64(),
	}, nil
}

// InvoiceTotals aggregates an invoice's non-deleted items.
type InvoiceTotals struct {
	Subtotal    float64 `json:"subtotal"`
	TaxTotal    float64 `json:"tax_total"`
	TotalAmount float64 `json:"total_amount"`
}

// CalculateInvoiceTotals sums amount and tax_amount across non-deleted
// items. The running accumulators are rounded after every addition, not
// once at the end, so the stored total always equals the sum of the printed
// line values.
func CalculateInvoiceTotals(items []models.InvoiceItem) InvoiceTotals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for i := range items {
		if items[i].IsDeleted() {
			continue
		}
		subtotal = round2(subtotal.Add(decimal.NewFromFloat(items[i].Amount)))
		taxTotal = round2(taxTotal.Add(decimal.NewFromFloat(items[i].TaxAmount)))
	}
	total := round2(subtotal.Add(taxTotal))

	return InvoiceTotals{
		Subtotal:    subtotal.InexactFloat64(),
		TaxTotal:    taxTotal.InexactFloat64(),
		TotalAmount: total.InexactFloat64(),
	}
}

// Round2 exposes the engine's rounding step for callers that derive other
// money values (e.g. flight-time charges) and must stay drift-free.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v)).InexactFloat64()
}
