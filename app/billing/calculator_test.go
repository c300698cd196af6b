package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/callumsoutar/fluffy-enigma-sub007/app/models"
)

func TestCalculateItemAmounts(t *testing.T) {
	got, err := CalculateItemAmounts(2, 150.00, 0.15)
	if err != nil {
		t.Fatalf("CalculateItemAmounts: %v", err)
	}
	want := ItemAmounts{Amount: 300.00, TaxAmount: 45.00, RateInclusive: 172.50, LineTotal: 345.00}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCalculateItemAmountsRounding(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		unitPrice float64
		taxRate   float64
		want      ItemAmounts
	}{
		{
			name: "fractional quantity", quantity: 1.3, unitPrice: 215.00, taxRate: 0.15,
			// amount = round(279.50) ; tax = round(41.925) -> 41.93
			want: ItemAmounts{Amount: 279.50, TaxAmount: 41.93, RateInclusive: 247.25, LineTotal: 321.43},
		},
		{
			name: "half cent rounds away from zero", quantity: 1, unitPrice: 0.05, taxRate: 0.5,
			// tax = round(0.025) -> 0.03, not 0.02
			want: ItemAmounts{Amount: 0.05, TaxAmount: 0.03, RateInclusive: 0.08, LineTotal: 0.08},
		},
		{
			name: "zero tax", quantity: 3, unitPrice: 99.99, taxRate: 0,
			want: ItemAmounts{Amount: 299.97, TaxAmount: 0, RateInclusive: 99.99, LineTotal: 299.97},
		},
		{
			name: "free item", quantity: 1, unitPrice: 0, taxRate: 0.15,
			want: ItemAmounts{Amount: 0, TaxAmount: 0, RateInclusive: 0, LineTotal: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateItemAmounts(tt.quantity, tt.unitPrice, tt.taxRate)
			if err != nil {
				t.Fatalf("CalculateItemAmounts: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateItemAmountsIsStable(t *testing.T) {
	first, err := CalculateItemAmounts(1.7, 183.33, 0.15)
	if err != nil {
		t.Fatalf("CalculateItemAmounts: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := CalculateItemAmounts(1.7, 183.33, 0.15)
		if err != nil {
			t.Fatalf("CalculateItemAmounts: %v", err)
		}
		if again != first {
			t.Fatalf("output drifted on call %d: %+v vs %+v", i, again, first)
		}
	}
}

func TestCalculateItemAmountsPreconditions(t *testing.T) {
	tests := []struct {
		name      string
		quantity  float64
		unitPrice float64
		taxRate   float64
		wantErr   error
	}{
		{name: "zero quantity", quantity: 0, unitPrice: 10, taxRate: 0.15, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", quantity: -1, unitPrice: 10, taxRate: 0.15, wantErr: ErrInvalidQuantity},
		{name: "negative price", quantity: 1, unitPrice: -0.01, taxRate: 0.15, wantErr: ErrInvalidPrice},
		{name: "negative tax rate", quantity: 1, unitPrice: 10, taxRate: -0.1, wantErr: ErrInvalidTaxRate},
		{name: "tax rate above one", quantity: 1, unitPrice: 10, taxRate: 1.01, wantErr: ErrInvalidTaxRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CalculateItemAmounts(tt.quantity, tt.unitPrice, tt.taxRate); !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCalculateInvoiceTotals(t *testing.T) {
	items := []models.InvoiceItem{
		{Amount: 300.00, TaxAmount: 45.00},
		{Amount: 45.50, TaxAmount: 6.83},
	}
	got := CalculateInvoiceTotals(items)
	want := InvoiceTotals{Subtotal: 345.50, TaxTotal: 51.83, TotalAmount: 397.33}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCalculateInvoiceTotalsSkipsDeletedItems(t *testing.T) {
	now := time.Now()
	items := []models.InvoiceItem{
		{Amount: 300.00, TaxAmount: 45.00},
		{Amount: 999.99, TaxAmount: 150.00, DeletedAt: &now},
		{Amount: 45.50, TaxAmount: 6.83},
	}
	got := CalculateInvoiceTotals(items)
	want := InvoiceTotals{Subtotal: 345.50, TaxTotal: 51.83, TotalAmount: 397.33}
	if got != want {
		t.Errorf("soft-deleted item leaked into totals: got %+v, want %+v", got, want)
	}
}

func TestCalculateInvoiceTotalsEmpty(t *testing.T) {
	got := CalculateInvoiceTotals(nil)
	if got.Subtotal != 0 || got.TaxTotal != 0 || got.TotalAmount != 0 {
		t.Errorf("empty invoice should total zero, got %+v", got)
	}
}

func TestRound2Idempotent(t *testing.T) {
	values := []float64{0, 0.005, 1.005, 2.675, -1.005, 123.4567, 99999.999}
	for _, v := range values {
		once := Round2(v)
		twice := Round2(once)
		if once != twice {
			t.Errorf("Round2 not idempotent for %v: %v vs %v", v, once, twice)
		}
	}
}
