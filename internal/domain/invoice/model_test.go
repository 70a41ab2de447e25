package invoice

import (
	"testing"

	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecomputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []*InvoiceLine
		tax          string
		discount     string
		wantSubtotal string
		wantTotal    string
	}{
		{
			name: "tax and discount applied",
			lines: []*InvoiceLine{
				{Quantity: 2, UnitPrice: d("100")},
				{Quantity: 1, UnitPrice: d("50")},
			},
			tax:          "10",
			discount:     "5",
			wantSubtotal: "250",
			wantTotal:    "255",
		},
		{
			name: "discount larger than subtotal clamps to zero",
			lines: []*InvoiceLine{
				{Quantity: 1, UnitPrice: d("40")},
			},
			tax:          "0",
			discount:     "100",
			wantSubtotal: "40",
			wantTotal:    "0",
		},
		{
			name:         "no lines",
			lines:        nil,
			tax:          "0",
			discount:     "0",
			wantSubtotal: "0",
			wantTotal:    "0",
		},
		{
			name: "fractional prices round to cents",
			lines: []*InvoiceLine{
				{Quantity: 3, UnitPrice: d("33.335")},
			},
			tax:          "0",
			discount:     "0",
			wantSubtotal: "100.01",
			wantTotal:    "100.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{
				Lines:    tt.lines,
				Tax:      d(tt.tax),
				Discount: d(tt.discount),
			}
			inv.RecomputeTotals()

			assert.True(t, inv.Subtotal.Equal(d(tt.wantSubtotal)), "subtotal = %s, want %s", inv.Subtotal, tt.wantSubtotal)
			assert.True(t, inv.Total.Equal(d(tt.wantTotal)), "total = %s, want %s", inv.Total, tt.wantTotal)
		})
	}
}

func TestRecomputeTotalsSetsLineTotals(t *testing.T) {
	inv := &Invoice{
		Lines: []*InvoiceLine{
			{Quantity: 4, UnitPrice: d("12.50")},
		},
	}
	inv.RecomputeTotals()

	assert.True(t, inv.Lines[0].LineTotal.Equal(d("50")))
}

func TestIsEditable(t *testing.T) {
	assert.True(t, (&Invoice{InvoiceStatus: types.InvoiceStatusDraft}).IsEditable())
	assert.True(t, (&Invoice{InvoiceStatus: types.InvoiceStatusSent}).IsEditable())
	assert.True(t, (&Invoice{InvoiceStatus: types.InvoiceStatusVoid}).IsEditable())
	assert.False(t, (&Invoice{InvoiceStatus: types.InvoiceStatusPaid}).IsEditable())
}

func TestEnsureTransition(t *testing.T) {
	paid := &Invoice{InvoiceNumber: "INV-20260115-0001", InvoiceStatus: types.InvoiceStatusPaid}
	assert.Error(t, paid.EnsureTransition(types.InvoiceStatusVoid))

	draft := &Invoice{InvoiceNumber: "INV-20260115-0002", InvoiceStatus: types.InvoiceStatusDraft}
	assert.NoError(t, draft.EnsureTransition(types.InvoiceStatusSent))
	assert.Error(t, draft.EnsureTransition(types.InvoiceStatusPaid))
}
