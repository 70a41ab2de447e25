package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/michaello/backoffice/internal/domain/supplier"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemorySupplierStore implements supplier.Repository
type InMemorySupplierStore struct {
	*InMemoryStore[*supplier.Supplier]
}

// NewInMemorySupplierStore creates a new in-memory supplier store
func NewInMemorySupplierStore() *InMemorySupplierStore {
	return &InMemorySupplierStore{
		InMemoryStore: NewInMemoryStore[*supplier.Supplier](),
	}
}

func copySupplier(sp *supplier.Supplier) *supplier.Supplier {
	if sp == nil {
		return nil
	}
	clone := *sp
	return &clone
}

func (s *InMemorySupplierStore) Create(ctx context.Context, sp *supplier.Supplier) error {
	return s.InMemoryStore.Create(ctx, sp.ID, copySupplier(sp))
}

func (s *InMemorySupplierStore) Get(ctx context.Context, id string) (*supplier.Supplier, error) {
	sp, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || sp == nil || sp.Status != types.StatusPublished {
		return nil, ierr.NewError("supplier not found").
			WithHintf("Supplier %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copySupplier(sp), nil
}

func (s *InMemorySupplierStore) Update(ctx context.Context, sp *supplier.Supplier) error {
	if _, err := s.Get(ctx, sp.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, sp.ID, copySupplier(sp))
}

func (s *InMemorySupplierStore) List(ctx context.Context, filter *types.ContactFilter) ([]*supplier.Supplier, error) {
	suppliers, err := s.InMemoryStore.List(ctx, filter, supplierFilterFn, func(i, j *supplier.Supplier) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	suppliers = paginate(suppliers, filter.QueryFilter)
	return lo.Map(suppliers, func(sp *supplier.Supplier, _ int) *supplier.Supplier {
		return copySupplier(sp)
	}), nil
}

func (s *InMemorySupplierStore) Count(ctx context.Context, filter *types.ContactFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, supplierFilterFn)
}

func (s *InMemorySupplierStore) Delete(ctx context.Context, id string) error {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sp.Status = types.StatusDeleted
	sp.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, sp)
}

func supplierFilterFn(_ context.Context, sp *supplier.Supplier, filter interface{}) bool {
	if sp.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.ContactFilter)
	if !ok || f == nil || f.Search == nil {
		return true
	}
	q := strings.ToLower(*f.Search)
	return strings.Contains(strings.ToLower(sp.Name), q) ||
		strings.Contains(strings.ToLower(sp.Email), q)
}

var _ supplier.Repository = (*InMemorySupplierStore)(nil)
