package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/michaello/backoffice/internal/domain/item"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemoryItemStore implements item.Repository
type InMemoryItemStore struct {
	*InMemoryStore[*item.Item]
}

// NewInMemoryItemStore creates a new in-memory item store
func NewInMemoryItemStore() *InMemoryItemStore {
	return &InMemoryItemStore{
		InMemoryStore: NewInMemoryStore[*item.Item](),
	}
}

func copyItem(i *item.Item) *item.Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (s *InMemoryItemStore) Create(ctx context.Context, i *item.Item) error {
	if existing, _ := s.GetBySKU(ctx, i.SKU); existing != nil {
		return ierr.NewError("item already exists").
			WithHintf("An item with SKU %s already exists", i.SKU).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, i.ID, copyItem(i))
}

func (s *InMemoryItemStore) Get(ctx context.Context, id string) (*item.Item, error) {
	i, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || i == nil || i.Status != types.StatusPublished {
		return nil, ierr.NewError("item not found").
			WithHintf("Item %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyItem(i), nil
}

func (s *InMemoryItemStore) GetBySKU(ctx context.Context, sku string) (*item.Item, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, i *item.Item, _ interface{}) bool {
		return i.SKU == sku && i.Status == types.StatusPublished
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with SKU %s was not found", sku).
			Mark(ierr.ErrNotFound)
	}
	return copyItem(items[0]), nil
}

func (s *InMemoryItemStore) Update(ctx context.Context, i *item.Item) error {
	if _, err := s.Get(ctx, i.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, i.ID, copyItem(i))
}

func (s *InMemoryItemStore) List(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	items, err := s.InMemoryStore.List(ctx, filter, itemFilterFn, itemSortFn)
	if err != nil {
		return nil, err
	}
	items = paginate(items, filter.QueryFilter)
	return lo.Map(items, func(i *item.Item, _ int) *item.Item {
		return copyItem(i)
	}), nil
}

func (s *InMemoryItemStore) Count(ctx context.Context, filter *types.ItemFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, itemFilterFn)
}

func (s *InMemoryItemStore) Delete(ctx context.Context, id string) error {
	i, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	i.Status = types.StatusDeleted
	i.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, i)
}

// DecrementStock floors at zero like the postgres repository does.
func (s *InMemoryItemStore) DecrementStock(ctx context.Context, id string, quantity int64) (int64, error) {
	i, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	remaining := i.Stock - quantity
	if remaining < 0 {
		remaining = 0
	}
	i.Stock = remaining
	i.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, id, i); err != nil {
		return 0, err
	}
	return remaining, nil
}

func itemFilterFn(_ context.Context, i *item.Item, filter interface{}) bool {
	if i.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.ItemFilter)
	if !ok || f == nil {
		return true
	}
	if f.CategoryID != nil && (i.CategoryID == nil || *i.CategoryID != *f.CategoryID) {
		return false
	}
	if f.SupplierID != nil && (i.SupplierID == nil || *i.SupplierID != *f.SupplierID) {
		return false
	}
	if f.ActiveOnly && !i.Active {
		return false
	}
	if f.Search != nil {
		q := strings.ToLower(*f.Search)
		if !strings.Contains(strings.ToLower(i.Name), q) && !strings.Contains(strings.ToLower(i.SKU), q) {
			return false
		}
	}
	return true
}

func itemSortFn(i, j *item.Item) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID > j.ID
	}
	return i.CreatedAt.After(j.CreatedAt)
}

var _ item.Repository = (*InMemoryItemStore)(nil)

// InMemoryCategoryStore implements item.CategoryRepository
type InMemoryCategoryStore struct {
	*InMemoryStore[*item.Category]
}

func NewInMemoryCategoryStore() *InMemoryCategoryStore {
	return &InMemoryCategoryStore{
		InMemoryStore: NewInMemoryStore[*item.Category](),
	}
}

func copyCategory(c *item.Category) *item.Category {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (s *InMemoryCategoryStore) Create(ctx context.Context, c *item.Category) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCategory(c))
}

func (s *InMemoryCategoryStore) Get(ctx context.Context, id string) (*item.Category, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c == nil || c.Status != types.StatusPublished {
		return nil, ierr.NewError("category not found").
			WithHintf("Category %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCategory(c), nil
}

func (s *InMemoryCategoryStore) Update(ctx context.Context, c *item.Category) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCategory(c))
}

func (s *InMemoryCategoryStore) List(ctx context.Context, filter *types.QueryFilter) ([]*item.Category, error) {
	categories, err := s.InMemoryStore.List(ctx, filter, func(_ context.Context, c *item.Category, _ interface{}) bool {
		return c.Status == types.StatusPublished
	}, func(i, j *item.Category) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	if filter != nil {
		categories = paginate(categories, *filter)
	}
	return lo.Map(categories, func(c *item.Category, _ int) *item.Category {
		return copyCategory(c)
	}), nil
}

func (s *InMemoryCategoryStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	c.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, c)
}

var _ item.CategoryRepository = (*InMemoryCategoryStore)(nil)
