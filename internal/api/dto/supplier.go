package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/michaello/backoffice/internal/domain/supplier"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	VATNumber string `json:"vat_number" validate:"omitempty,max=255"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Address     string `json:"address" validate:"omitempty,max=512"`
	Notes       string `json:"notes"`
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	VATNumber *string `json:"vat_number" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Address     *string `json:"address" validate:"omitempty,max=512"`
	Notes       *string `json:"notes"`
}

type SupplierResponse struct {
	*supplier.Supplier
}

// ListSuppliersResponse represents the response for listing suppliers
type ListSuppliersResponse = types.ListResponse[*SupplierResponse]

func (r *CreateSupplierRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid supplier payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateSupplierRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid supplier payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateSupplierRequest) ToSupplier(ctx context.Context) *supplier.Supplier {
	return &supplier.Supplier{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixSupplier),
		Name:        r.Name,
		VATNumber: r.VATNumber,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Notes:       r.Notes,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
