package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/michaello/backoffice/internal/domain/invoice"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	CustomerID *string                    `json:"customer_id"`
	Currency   string                     `json:"currency" validate:"required"`
	Tax        decimal.Decimal            `json:"tax"`
	Discount   decimal.Decimal            `json:"discount"`
	Notes      string                     `json:"notes"`
	Metadata   types.Metadata             `json:"metadata"`
	Lines      []CreateInvoiceLineRequest `json:"lines"`
}

type CreateInvoiceLineRequest struct {
	ItemID      *string         `json:"item_id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type UpdateInvoiceRequest struct {
	CustomerID *string                     `json:"customer_id"`
	Tax        *decimal.Decimal            `json:"tax"`
	Discount   *decimal.Decimal            `json:"discount"`
	Notes      *string                     `json:"notes"`
	Metadata   types.Metadata              `json:"metadata"`
	Lines      *[]CreateInvoiceLineRequest `json:"lines"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// CheckoutSessionResponse carries the hosted payment page details back to
// the caller.
type CheckoutSessionResponse struct {
	SessionID  string `json:"session_id"`
	PaymentURL string `json:"payment_url"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid invoice payload").
			Mark(ierr.ErrValidation)
	}

	if err := types.ValidateCurrencyCode(r.Currency); err != nil {
		return err
	}

	if r.Tax.IsNegative() || r.Discount.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Tax and discount must be non negative").
			Mark(ierr.ErrValidation)
	}

	for _, line := range r.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateInvoiceLineRequest) Validate() error {
	if r.Quantity <= 0 {
		return ierr.NewError("invoice line validation failed").
			WithHintf("Quantity must be positive, got %d", r.Quantity).
			Mark(ierr.ErrValidation)
	}
	if r.UnitPrice.IsNegative() {
		return ierr.NewError("invoice line validation failed").
			WithHint("Unit price must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateInvoiceRequest) Validate() error {
	if r.Tax != nil && r.Tax.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Tax must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		return ierr.NewError("invoice validation failed").
			WithHint("Discount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.Lines != nil {
		for _, line := range *r.Lines {
			if err := line.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoice),
		CustomerID:    r.CustomerID,
		InvoiceStatus: types.InvoiceStatusDraft,
		Currency:      r.Currency,
		Tax:           r.Tax,
		Discount:      r.Discount,
		Notes:         r.Notes,
		Metadata:      r.Metadata,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	for _, line := range r.Lines {
		inv.Lines = append(inv.Lines, line.ToInvoiceLine(ctx, inv.ID))
	}

	inv.RecomputeTotals()
	return inv
}

func (r *CreateInvoiceLineRequest) ToInvoiceLine(ctx context.Context, invoiceID string) *invoice.InvoiceLine {
	return &invoice.InvoiceLine{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLine),
		InvoiceID:   invoiceID,
		ItemID:      r.ItemID,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
