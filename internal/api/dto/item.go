package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/michaello/backoffice/internal/domain/item"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	SKU          string          `json:"sku" validate:"required,max=64"`
	Name         string          `json:"name" validate:"required,max=255"`
	Description  string          `json:"description"`
	CategoryID   *string         `json:"category_id"`
	SupplierID   *string         `json:"supplier_id"`
	Metal        types.Metal     `json:"metal" validate:"required"`
	Purity       types.Purity    `json:"purity" validate:"required"`
	StoneDetails string          `json:"stone_details"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock" validate:"gte=0"`
}

type UpdateItemRequest struct {
	SKU          *string          `json:"sku" validate:"omitempty,max=64"`
	Name         *string          `json:"name" validate:"omitempty,max=255"`
	Description  *string          `json:"description"`
	CategoryID   *string          `json:"category_id"`
	SupplierID   *string          `json:"supplier_id"`
	Metal        *types.Metal     `json:"metal"`
	Purity       *types.Purity    `json:"purity"`
	StoneDetails *string          `json:"stone_details"`
	WeightGrams  *decimal.Decimal `json:"weight_grams"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int64           `json:"stock" validate:"omitempty,gte=0"`
	Active       *bool            `json:"active"`
}

type ItemResponse struct {
	*item.Item
	ProfitMargin decimal.Decimal `json:"profit_margin"`
}

func NewItemResponse(i *item.Item) *ItemResponse {
	return &ItemResponse{Item: i, ProfitMargin: i.ProfitMargin()}
}

// ListItemsResponse represents the response for listing catalog items
type ListItemsResponse = types.ListResponse[*ItemResponse]

func (r *CreateItemRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid item payload").
			Mark(ierr.ErrValidation)
	}

	if err := r.Metal.Validate(); err != nil {
		return err
	}
	if err := r.Purity.Validate(); err != nil {
		return err
	}

	if r.Price.IsNegative() || r.CostPrice.IsNegative() || r.WeightGrams.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Prices and weight must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateItemRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid item payload").
			Mark(ierr.ErrValidation)
	}

	if r.Metal != nil {
		if err := r.Metal.Validate(); err != nil {
			return err
		}
	}
	if r.Purity != nil {
		if err := r.Purity.Validate(); err != nil {
			return err
		}
	}
	if r.Price != nil && r.Price.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Price must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.CostPrice != nil && r.CostPrice.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Cost price must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.WeightGrams != nil && r.WeightGrams.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Weight must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateItemRequest) ToItem(ctx context.Context) *item.Item {
	return &item.Item{
		ID:           types.GenerateUUIDWithPrefix(types.UUIDPrefixItem),
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		CategoryID:   r.CategoryID,
		SupplierID:   r.SupplierID,
		Metal:        r.Metal,
		Purity:       r.Purity,
		StoneDetails: r.StoneDetails,
		WeightGrams:  r.WeightGrams,
		CostPrice:    r.CostPrice,
		Price:        r.Price,
		Stock:        r.Stock,
		Active:       true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	*item.Category
}

func (r *CreateCategoryRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid category payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateCategoryRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid category payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateCategoryRequest) ToCategory(ctx context.Context) *item.Category {
	return &item.Category{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixCategory),
		Name:        r.Name,
		Description: r.Description,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
