package item

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

type Repository interface {
	Create(ctx context.Context, i *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	GetBySKU(ctx context.Context, sku string) (*Item, error)
	Update(ctx context.Context, i *Item) error
	List(ctx context.Context, filter *types.ItemFilter) ([]*Item, error)
	Count(ctx context.Context, filter *types.ItemFilter) (int, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock reduces stock by quantity, flooring at zero, and
	// returns the resulting level. The row is locked for the duration of
	// the surrounding transaction.
	DecrementStock(ctx context.Context, id string, quantity int64) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	List(ctx context.Context, filter *types.QueryFilter) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}
