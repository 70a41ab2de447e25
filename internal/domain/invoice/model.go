package invoice

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. The invoice number is
// assigned once at first persistence and never reassigned.
type Invoice struct {
	ID                string              `db:"id" json:"id"`
	InvoiceNumber     string              `db:"invoice_number" json:"invoice_number"`
	CustomerID        *string             `db:"customer_id" json:"customer_id,omitempty"`
	InvoiceStatus     types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	Currency          string              `db:"currency" json:"currency"`
	Subtotal          decimal.Decimal     `db:"subtotal" json:"subtotal"`
	Tax               decimal.Decimal     `db:"tax" json:"tax"`
	Discount          decimal.Decimal     `db:"discount" json:"discount"`
	Total             decimal.Decimal     `db:"total" json:"total"`
	Notes             string              `db:"notes" json:"notes,omitempty"`
	Metadata          types.Metadata      `db:"metadata" json:"metadata,omitempty"`
	CheckoutSessionID *string             `db:"checkout_session_id" json:"checkout_session_id,omitempty"`
	PaymentIntentID   *string             `db:"payment_intent_id" json:"payment_intent_id,omitempty"`
	Lines             []*InvoiceLine      `db:"-" json:"lines,omitempty"`
	types.BaseModel
}

// RecomputeTotals derives subtotal and total from the current line set and
// the tax/discount fields. It is deterministic and has no side effects
// beyond the aggregate itself; callers invoke it after any line mutation and
// again before persisting money-affecting changes.
//
// total = max(0, subtotal + tax - discount); a discount larger than
// subtotal+tax clamps to zero rather than failing.
func (i *Invoice) RecomputeTotals() {
	subtotal := decimal.Zero
	for _, line := range i.Lines {
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)).Round(2)
		subtotal = subtotal.Add(line.LineTotal)
	}
	i.Subtotal = subtotal.Round(2)

	total := i.Subtotal.Add(i.Tax).Sub(i.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	i.Total = total.Round(2)
}

// Validate checks the aggregate's monetary invariants.
func (i *Invoice) Validate() error {
	if err := types.ValidateCurrencyCode(i.Currency); err != nil {
		return err
	}

	if i.Tax.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Tax must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.Discount.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Discount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.Total.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Total must be non negative").
			Mark(ierr.ErrValidation)
	}

	for _, line := range i.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// IsEditable reports whether the aggregate still accepts ordinary edits.
// Once paid, the invoice and its lines are immutable.
func (i *Invoice) IsEditable() bool {
	return i.InvoiceStatus != types.InvoiceStatusPaid
}

// EnsureTransition returns a conflict error when the status machine forbids
// moving to target.
func (i *Invoice) EnsureTransition(target types.InvoiceStatus) error {
	if i.InvoiceStatus == target {
		return nil
	}
	if !i.InvoiceStatus.CanTransitionTo(target) {
		return ierr.NewError("invalid invoice status transition").
			WithHintf("Invoice %s cannot move from %s to %s", i.InvoiceNumber, i.InvoiceStatus, target).
			WithReportableDetails(map[string]any{
				"invoice_number": i.InvoiceNumber,
				"from":           i.InvoiceStatus,
				"to":             target,
			}).
			Mark(ierr.ErrConflict)
	}
	return nil
}
