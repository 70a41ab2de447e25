package customer

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// Customer is a CRM contact invoices are billed to.
type Customer struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email,omitempty"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	AddressLine1 string `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 string `db:"address_line2" json:"address_line2,omitempty"`
	City         string `db:"city" json:"city,omitempty"`
	PostalCode   string `db:"postal_code" json:"postal_code,omitempty"`
	Country      string `db:"country" json:"country,omitempty"`
	Notes        string `db:"notes" json:"notes,omitempty"`
	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer validation failed").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
