package supplier

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	Get(ctx context.Context, id string) (*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	List(ctx context.Context, filter *types.ContactFilter) ([]*Supplier, error)
	Count(ctx context.Context, filter *types.ContactFilter) (int, error)
	Delete(ctx context.Context, id string) error
}
