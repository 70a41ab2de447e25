package certificate

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// Certificate is an authenticity certificate issued for a catalog item.
// The invoice link is optional; when present it must be a paid invoice
// that contains the item.
type Certificate struct {
	ID                string  `db:"id" json:"id"`
	CertificateNumber string  `db:"certificate_number" json:"certificate_number"`
	ItemID            string  `db:"item_id" json:"item_id"`
	InvoiceID         *string `db:"invoice_id" json:"invoice_id,omitempty"`
	Notes             string  `db:"notes" json:"notes,omitempty"`
	types.BaseModel
}

func (c *Certificate) Validate() error {
	if c.ItemID == "" {
		return ierr.NewError("certificate validation failed").
			WithHint("Item is required").
			Mark(ierr.ErrValidation)
	}

	if c.InvoiceID != nil && *c.InvoiceID == "" {
		return ierr.NewError("certificate validation failed").
			WithHint("Invoice reference must not be empty").
			Mark(ierr.ErrValidation)
	}

	return nil
}
