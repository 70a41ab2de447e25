package postgres

import (
	"context"
	"time"

	"github.com/michaello/backoffice/internal/cache"
	"github.com/michaello/backoffice/internal/domain/item"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
)

type itemRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewItemRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) item.Repository {
	return &itemRepository{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (r *itemRepository) Create(ctx context.Context, i *item.Item) error {
	query := `
		INSERT INTO items (
			id, sku, name, description, category_id, supplier_id,
			metal, purity, stone_details, weight_grams, cost_price, price,
			stock, active, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :sku, :name, :description, :category_id, :supplier_id,
			:metal, :purity, :stone_details, :weight_grams, :cost_price, :price,
			:stock, :active, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, i); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Item with SKU %s already exists", i.SKU).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create item").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *itemRepository) Get(ctx context.Context, id string) (*item.Item, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixItem, id)); found {
		if i, ok := cached.(*item.Item); ok {
			return i, nil
		}
	}

	query := `
		SELECT * FROM items
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query item").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var i item.Item
	if err := rows.StructScan(&i); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan item").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixItem, id), &i, 5*time.Minute)
	return &i, nil
}

func (r *itemRepository) GetBySKU(ctx context.Context, sku string) (*item.Item, error) {
	query := `
		SELECT * FROM items
		WHERE sku = :sku
		AND status = :status`

	params := map[string]interface{}{
		"sku":    sku,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query item").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("item not found").
			WithHintf("Item with SKU %s was not found", sku).
			Mark(ierr.ErrNotFound)
	}

	var i item.Item
	if err := rows.StructScan(&i); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan item").
			Mark(ierr.ErrDatabase)
	}
	return &i, nil
}

func (r *itemRepository) Update(ctx context.Context, i *item.Item) error {
	i.UpdatedAt = time.Now().UTC()
	i.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE items
		SET
			sku = :sku,
			name = :name,
			description = :description,
			category_id = :category_id,
			supplier_id = :supplier_id,
			metal = :metal,
			purity = :purity,
			stone_details = :stone_details,
			weight_grams = :weight_grams,
			cost_price = :cost_price,
			price = :price,
			stock = :stock,
			active = :active,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, i)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update item").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", i.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixItem, i.ID))
	return nil
}

// DecrementStock locks the row, floors the new level at zero and writes it
// back. Callers run it inside the settlement transaction so the lock holds
// until commit.
func (r *itemRepository) DecrementStock(ctx context.Context, id string, quantity int64) (int64, error) {
	q := r.db.GetQuerier(ctx)

	var stock int64
	lockQuery := `
		SELECT stock FROM items
		WHERE id = $1
		AND status = $2
		FOR UPDATE`

	if err := q.GetContext(ctx, &stock, lockQuery, id, types.StatusPublished); err != nil {
		return 0, ierr.WithError(err).
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	newStock := stock - quantity
	if newStock < 0 {
		r.logger.Warnw("stock decrement floored at zero",
			"item_id", id,
			"stock", stock,
			"quantity", quantity,
		)
		newStock = 0
	}

	updateQuery := `
		UPDATE items
		SET stock = $1, updated_at = NOW(), updated_by = $2
		WHERE id = $3`

	if _, err := q.ExecContext(ctx, updateQuery, newStock, types.GetUserID(ctx), id); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to update item stock").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixItem, id))
	return newStock, nil
}

func (r *itemRepository) List(ctx context.Context, filter *types.ItemFilter) ([]*item.Item, error) {
	query := `
		SELECT * FROM items
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}

	query = applyItemFilter(query, params, filter)
	query += ` ORDER BY created_at ` + filter.GetOrder() + ` LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var items []*item.Item
	for rows.Next() {
		var i item.Item
		if err := rows.StructScan(&i); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan item").
				Mark(ierr.ErrDatabase)
		}
		items = append(items, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating item rows").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *itemRepository) Count(ctx context.Context, filter *types.ItemFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM items
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
	}

	query = applyItemFilter(query, params, filter)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan item count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func applyItemFilter(query string, params map[string]interface{}, filter *types.ItemFilter) string {
	if filter.CategoryID != nil {
		query += ` AND category_id = :category_id`
		params["category_id"] = *filter.CategoryID
	}
	if filter.SupplierID != nil {
		query += ` AND supplier_id = :supplier_id`
		params["supplier_id"] = *filter.SupplierID
	}
	if filter.ActiveOnly {
		query += ` AND active = TRUE`
	}
	if filter.Search != nil {
		query += ` AND (name ILIKE :search OR sku ILIKE :search)`
		params["search"] = "%" + *filter.Search + "%"
	}
	return query
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE items
		SET status = :deleted, updated_at = NOW(), updated_by = :updated_by
		WHERE id = :id
		AND status = :published`

	params := map[string]interface{}{
		"id":         id,
		"deleted":    types.StatusDeleted,
		"published":  types.StatusPublished,
		"updated_by": types.GetUserID(ctx),
	}

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete item").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("item not found").
			WithHintf("Item with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixItem, id))
	return nil
}
