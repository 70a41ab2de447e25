package types

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/samber/lo"
)

const (
	FilterDefaultLimit = 50
	FilterMaxLimit     = 200

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int    `form:"limit" json:"limit,omitempty"`
	Offset *int    `form:"offset" json:"offset,omitempty"`
	Order  *string `form:"order" json:"order,omitempty"`
}

// GetDefaultQueryFilter returns the filter applied when a request carries none.
func GetDefaultQueryFilter() QueryFilter {
	return QueryFilter{
		Limit:  lo.ToPtr(FilterDefaultLimit),
		Offset: lo.ToPtr(0),
		Order:  lo.ToPtr(OrderDesc),
	}
}

// GetLimit returns the limit value or the default if not set
func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return FilterDefaultLimit
	}
	return *f.Limit
}

// GetOffset returns the offset value or zero if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// GetOrder returns the sort order or the default if not set
func (f QueryFilter) GetOrder() string {
	if f.Order == nil {
		return OrderDesc
	}
	return *f.Order
}

func (f QueryFilter) Validate() error {
	if f.GetLimit() < 1 || f.GetLimit() > FilterMaxLimit {
		return ierr.NewError("limit out of range").
			WithHintf("Limit must be between 1 and %d", FilterMaxLimit).
			Mark(ierr.ErrValidation)
	}
	if f.GetOffset() < 0 {
		return ierr.NewError("offset must be non negative").
			WithHint("Offset must be non negative").
			Mark(ierr.ErrValidation)
	}
	if order := f.GetOrder(); order != OrderAsc && order != OrderDesc {
		return ierr.NewError("invalid order").
			WithHint("Order must be asc or desc").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	QueryFilter
	InvoiceStatus *InvoiceStatus `form:"invoice_status" json:"invoice_status,omitempty"`
	CustomerID    *string        `form:"customer_id" json:"customer_id,omitempty"`
}

func (f InvoiceFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.InvoiceStatus != nil {
		return f.InvoiceStatus.Validate()
	}
	return nil
}

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	QueryFilter
	CategoryID *string `form:"category_id" json:"category_id,omitempty"`
	SupplierID *string `form:"supplier_id" json:"supplier_id,omitempty"`
	ActiveOnly bool    `form:"active_only" json:"active_only,omitempty"`
	Search     *string `form:"q" json:"q,omitempty"`
}

// ContactFilter narrows customer and supplier listings.
type ContactFilter struct {
	QueryFilter
	Search *string `form:"q" json:"q,omitempty"`
}

// CertificateFilter narrows certificate listings.
type CertificateFilter struct {
	QueryFilter
	ItemID    *string `form:"item_id" json:"item_id,omitempty"`
	InvoiceID *string `form:"invoice_id" json:"invoice_id,omitempty"`
}
