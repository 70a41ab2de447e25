package invoice

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a single line on an invoice. Description is denormalized
// from the catalog item at creation time so later catalog edits do not
// rewrite history.
type InvoiceLine struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
	ItemID      *string         `db:"item_id" json:"item_id,omitempty"`
	Description string          `db:"description" json:"description"`
	Quantity    int64           `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal   decimal.Decimal `db:"line_total" json:"line_total"`
	types.BaseModel
}

func (l *InvoiceLine) Validate() error {
	if l.Description == "" {
		return ierr.NewError("invoice line validation failed").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}

	if l.Quantity <= 0 {
		return ierr.NewError("invoice line validation failed").
			WithHintf("Quantity must be positive, got %d", l.Quantity).
			Mark(ierr.ErrValidation)
	}

	if l.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line validation failed").
			WithHint("Unit price must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}
