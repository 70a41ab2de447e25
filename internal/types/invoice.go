package types

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
//
// Allowed transitions:
//
//	draft -> sent  (checkout session created or invoice email dispatched)
//	sent  -> paid  (verified payment notification only)
//	draft -> void, sent -> void (manual cancellation)
//
// paid is terminal. Invoices can only be deleted while not paid.
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice can still be modified or deleted
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates a checkout session exists and payment is awaited
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPaid indicates settlement completed; the invoice is immutable
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusVoid indicates the invoice was cancelled before payment
	InvoiceStatusVoid InvoiceStatus = "void"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusVoid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether no further status transition is allowed.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid
}

// CanTransitionTo reports whether the status machine allows moving to target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent || target == InvoiceStatusVoid
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid || target == InvoiceStatusVoid
	default:
		return false
	}
}
