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

type categoryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewCategoryRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) item.CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *item.Category) error {
	query := `
		INSERT INTO categories (
			id, name, description,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :description,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("Category %s already exists", c.Name).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create category").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*item.Category, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixCategory, id)); found {
		if c, ok := cached.(*item.Category); ok {
			return c, nil
		}
	}

	query := `
		SELECT * FROM categories
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query category").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("category not found").
			WithHintf("Category with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var c item.Category
	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan category").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixCategory, id), &c, 5*time.Minute)
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *item.Category) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE categories
		SET
			name = :name,
			description = :description,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update category").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("category not found").
			WithHintf("Category with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCategory, c.ID))
	return nil
}

func (r *categoryRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*item.Category, error) {
	query := `
		SELECT * FROM categories
		WHERE status = :status
		ORDER BY name ASC
		LIMIT :limit OFFSET :offset`

	params := map[string]interface{}{
		"status": types.StatusPublished,
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list categories").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var categories []*item.Category
	for rows.Next() {
		var c item.Category
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan category").
				Mark(ierr.ErrDatabase)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating category rows").
			Mark(ierr.ErrDatabase)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE categories
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
			WithHint("Failed to delete category").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("category not found").
			WithHintf("Category with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCategory, id))
	return nil
}
