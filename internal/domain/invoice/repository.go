package invoice

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

// Repository handles invoice persistence. Implementations run the
// settlement and stock paths inside the caller's transaction when one is
// present on the context.
type Repository interface {
	// CreateWithLines persists the invoice and its lines atomically and
	// assigns the invoice number.
	CreateWithLines(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	// ReplaceLines swaps the full line set of a draft or sent invoice.
	ReplaceLines(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error
	// MarkPaid transitions the invoice to paid and records the payment
	// intent in a single conditional update. It returns false when the
	// invoice was already paid, which callers use as the at-most-once
	// settlement guard.
	MarkPaid(ctx context.Context, id string, paymentIntentID string) (bool, error)
	SetCheckoutSession(ctx context.Context, id string, sessionID string) error
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
	Delete(ctx context.Context, id string) error
	// NextInvoiceNumber reserves the next per-day sequence value and
	// returns the formatted number, e.g. INV-20260831-0001.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
