package postgres

import (
	"context"
	"time"

	"github.com/michaello/backoffice/internal/domain/certificate"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
)

type certificateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCertificateRepository(db *postgres.DB, logger *logger.Logger) certificate.Repository {
	return &certificateRepository{
		db:     db,
		logger: logger,
	}
}

// NextCertificateNumber mirrors the invoice numbering scheme with its own
// sequence table, so certificate and invoice counters advance independently.
func (r *certificateRepository) NextCertificateNumber(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("20060102")

	query := `
		INSERT INTO certificate_sequences (day, last_value)
		VALUES ($1, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_value = certificate_sequences.last_value + 1
		RETURNING last_value`

	var seq int64
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &seq, query, day); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to reserve certificate number").
			Mark(ierr.ErrDatabase)
	}

	return types.FormatSequenceNumber("CERT", day, seq), nil
}

func (r *certificateRepository) Create(ctx context.Context, c *certificate.Certificate) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if c.CertificateNumber == "" {
			number, err := r.NextCertificateNumber(ctx)
			if err != nil {
				return err
			}
			c.CertificateNumber = number
		}

		query := `
			INSERT INTO certificates (
				id, certificate_number, item_id, invoice_id, notes,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :certificate_number, :item_id, :invoice_id, :notes,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create certificate").
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
}

func (r *certificateRepository) Get(ctx context.Context, id string) (*certificate.Certificate, error) {
	query := `
		SELECT * FROM certificates
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query certificate").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("certificate not found").
			WithHintf("Certificate with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var c certificate.Certificate
	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan certificate").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *certificateRepository) List(ctx context.Context, filter *types.CertificateFilter) ([]*certificate.Certificate, error) {
	query := `
		SELECT * FROM certificates
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}

	if filter.ItemID != nil {
		query += ` AND item_id = :item_id`
		params["item_id"] = *filter.ItemID
	}
	if filter.InvoiceID != nil {
		query += ` AND invoice_id = :invoice_id`
		params["invoice_id"] = *filter.InvoiceID
	}

	query += ` ORDER BY created_at ` + filter.GetOrder() + ` LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list certificates").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var certificates []*certificate.Certificate
	for rows.Next() {
		var c certificate.Certificate
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan certificate").
				Mark(ierr.ErrDatabase)
		}
		certificates = append(certificates, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating certificate rows").
			Mark(ierr.ErrDatabase)
	}
	return certificates, nil
}

func (r *certificateRepository) Count(ctx context.Context, filter *types.CertificateFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM certificates
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
	}

	if filter.ItemID != nil {
		query += ` AND item_id = :item_id`
		params["item_id"] = *filter.ItemID
	}
	if filter.InvoiceID != nil {
		query += ` AND invoice_id = :invoice_id`
		params["invoice_id"] = *filter.InvoiceID
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count certificates").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan certificate count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *certificateRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE certificates
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
			WithHint("Failed to delete certificate").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("certificate not found").
			WithHintf("Certificate with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
