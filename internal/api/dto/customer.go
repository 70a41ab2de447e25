package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/michaello/backoffice/internal/domain/customer"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	AddressLine1 string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=255"`
	City         string `json:"city" validate:"omitempty,max=100"`
	PostalCode   string `json:"postal_code" validate:"omitempty,max=20"`
	Country      string `json:"country" validate:"omitempty,len=2,iso3166_1_alpha2"`
	Notes        string `json:"notes"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	AddressLine1 *string `json:"address_line1" validate:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line2" validate:"omitempty,max=255"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" validate:"omitempty,max=20"`
	Country      *string `json:"country" validate:"omitempty,len=2,iso3166_1_alpha2"`
	Notes        *string `json:"notes"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid customer payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateCustomerRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid customer payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:           types.GenerateUUIDWithPrefix(types.UUIDPrefixCustomer),
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
		Notes:        r.Notes,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}
