package postgres

import (
	"context"
	"time"

	"github.com/michaello/backoffice/internal/cache"
	"github.com/michaello/backoffice/internal/domain/supplier"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
)

type supplierRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewSupplierRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) supplier.Repository {
	return &supplierRepository{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (r *supplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (
			id, name, vat_number, email, phone, address, notes,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :vat_number, :email, :phone, :address, :notes,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create supplier").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *supplierRepository) Get(ctx context.Context, id string) (*supplier.Supplier, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixSupplier, id)); found {
		if s, ok := cached.(*supplier.Supplier); ok {
			return s, nil
		}
	}

	query := `
		SELECT * FROM suppliers
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query supplier").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("supplier not found").
			WithHintf("Supplier with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var s supplier.Supplier
	if err := rows.StructScan(&s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan supplier").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixSupplier, id), &s, 5*time.Minute)
	return &s, nil
}

func (r *supplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE suppliers
		SET
			name = :name,
			vat_number = :vat_number,
			email = :email,
			phone = :phone,
			address = :address,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update supplier").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("supplier not found").
			WithHintf("Supplier with ID %s was not found", s.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixSupplier, s.ID))
	return nil
}

func (r *supplierRepository) List(ctx context.Context, filter *types.ContactFilter) ([]*supplier.Supplier, error) {
	query := `
		SELECT * FROM suppliers
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}

	if filter.Search != nil {
		query += ` AND (name ILIKE :search OR email ILIKE :search)`
		params["search"] = "%" + *filter.Search + "%"
	}

	query += ` ORDER BY name ASC LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list suppliers").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var suppliers []*supplier.Supplier
	for rows.Next() {
		var s supplier.Supplier
		if err := rows.StructScan(&s); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan supplier").
				Mark(ierr.ErrDatabase)
		}
		suppliers = append(suppliers, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating supplier rows").
			Mark(ierr.ErrDatabase)
	}
	return suppliers, nil
}

func (r *supplierRepository) Count(ctx context.Context, filter *types.ContactFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM suppliers
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
	}

	if filter.Search != nil {
		query += ` AND (name ILIKE :search OR email ILIKE :search)`
		params["search"] = "%" + *filter.Search + "%"
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count suppliers").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan supplier count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE suppliers
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
			WithHint("Failed to delete supplier").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("supplier not found").
			WithHintf("Supplier with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixSupplier, id))
	return nil
}
