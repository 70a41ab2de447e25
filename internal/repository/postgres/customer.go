package postgres

import (
	"context"
	"time"

	"github.com/michaello/backoffice/internal/cache"
	"github.com/michaello/backoffice/internal/domain/customer"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
)

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger, cache cache.Cache) customer.Repository {
	return &customerRepository{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			id, name, email, phone, address_line1, address_line2,
			city, postal_code, country, notes,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :email, :phone, :address_line1, :address_line2,
			:city, :postal_code, :country, :notes,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	if cached, found := r.cache.Get(ctx, cache.GenerateKey(cache.PrefixCustomer, id)); found {
		if c, ok := cached.(*customer.Customer); ok {
			return c, nil
		}
	}

	query := `
		SELECT * FROM customers
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query customer").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var c customer.Customer
	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan customer").
			Mark(ierr.ErrDatabase)
	}

	r.cache.Set(ctx, cache.GenerateKey(cache.PrefixCustomer, id), &c, 5*time.Minute)
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE customers
		SET
			name = :name,
			email = :email,
			phone = :phone,
			address_line1 = :address_line1,
			address_line2 = :address_line2,
			city = :city,
			postal_code = :postal_code,
			country = :country,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update customer").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", c.ID).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCustomer, c.ID))
	return nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.ContactFilter) ([]*customer.Customer, error) {
	query := `
		SELECT * FROM customers
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
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan customer").
				Mark(ierr.ErrDatabase)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating customer rows").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.ContactFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM customers
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
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan customer count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
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
			WithHint("Failed to delete customer").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	r.cache.Delete(ctx, cache.GenerateKey(cache.PrefixCustomer, id))
	return nil
}
