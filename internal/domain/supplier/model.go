package supplier

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// Supplier is a sourcing contact catalog items are purchased from.
type Supplier struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	VATNumber string `db:"vat_number" json:"vat_number,omitempty"`
	Email       string `db:"email" json:"email,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Address     string `db:"address" json:"address,omitempty"`
	Notes       string `db:"notes" json:"notes,omitempty"`
	types.BaseModel
}

func (s *Supplier) Validate() error {
	if s.Name == "" {
		return ierr.NewError("supplier validation failed").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
