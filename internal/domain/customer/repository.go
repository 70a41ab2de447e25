package customer

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context, filter *types.ContactFilter) ([]*Customer, error)
	Count(ctx context.Context, filter *types.ContactFilter) (int, error)
	Delete(ctx context.Context, id string) error
}
