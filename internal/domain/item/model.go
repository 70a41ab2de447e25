package item

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry for a piece of jewelry held in stock.
type Item struct {
	ID           string          `db:"id" json:"id"`
	SKU          string          `db:"sku" json:"sku"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description,omitempty"`
	CategoryID   *string         `db:"category_id" json:"category_id,omitempty"`
	SupplierID   *string         `db:"supplier_id" json:"supplier_id,omitempty"`
	Metal        types.Metal     `db:"metal" json:"metal"`
	Purity       types.Purity    `db:"purity" json:"purity"`
	StoneDetails string          `db:"stone_details" json:"stone_details,omitempty"`
	WeightGrams  decimal.Decimal `db:"weight_grams" json:"weight_grams"`
	CostPrice    decimal.Decimal `db:"cost_price" json:"cost_price"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Stock        int64           `db:"stock" json:"stock"`
	Active       bool            `db:"active" json:"active"`
	types.BaseModel
}

func (i *Item) Validate() error {
	if i.Name == "" {
		return ierr.NewError("item validation failed").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}

	if i.SKU == "" {
		return ierr.NewError("item validation failed").
			WithHint("SKU is required").
			Mark(ierr.ErrValidation)
	}

	if err := i.Metal.Validate(); err != nil {
		return err
	}

	if err := i.Purity.Validate(); err != nil {
		return err
	}

	if i.Price.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.CostPrice.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Cost price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.WeightGrams.IsNegative() {
		return ierr.NewError("item validation failed").
			WithHint("Weight must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.Stock < 0 {
		return ierr.NewError("item validation failed").
			WithHint("Stock must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ProfitMargin returns the markup over cost price as a percentage.
// It is zero when no cost price is recorded.
func (i *Item) ProfitMargin() decimal.Decimal {
	if !i.CostPrice.IsPositive() {
		return decimal.Zero
	}
	return i.Price.Sub(i.CostPrice).
		Div(i.CostPrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Category groups catalog items.
type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	types.BaseModel
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ierr.NewError("category validation failed").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}
