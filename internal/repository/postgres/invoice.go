package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/michaello/backoffice/internal/domain/invoice"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/postgres"
	"github.com/michaello/backoffice/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{
		db:     db,
		logger: logger,
	}
}

// NextInvoiceNumber reserves the next per-day counter value using an upsert
// on the sequence row. The RETURNING clause makes the read-and-increment a
// single statement, so concurrent callers never observe the same value.
func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("20060102")

	query := `
		INSERT INTO invoice_sequences (day, last_value)
		VALUES ($1, 1)
		ON CONFLICT (day)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`

	var seq int64
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &seq, query, day); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to reserve invoice number").
			Mark(ierr.ErrDatabase)
	}

	return types.FormatSequenceNumber("INV", day, seq), nil
}

func (r *invoiceRepository) CreateWithLines(ctx context.Context, inv *invoice.Invoice) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if inv.InvoiceNumber == "" {
			number, err := r.NextInvoiceNumber(ctx)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
		}

		r.logger.Debugw("creating invoice",
			"invoice_id", inv.ID,
			"invoice_number", inv.InvoiceNumber,
		)

		query := `
			INSERT INTO invoices (
				id, invoice_number, customer_id, invoice_status, currency,
				subtotal, tax, discount, total, notes, metadata,
				checkout_session_id, payment_intent_id,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :invoice_number, :customer_id, :invoice_status, :currency,
				:subtotal, :tax, :discount, :total, :notes, :metadata,
				:checkout_session_id, :payment_intent_id,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice").
				Mark(ierr.ErrDatabase)
		}

		return r.insertLines(ctx, inv)
	})
}

func (r *invoiceRepository) insertLines(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoice_lines (
			id, invoice_id, item_id, description, quantity, unit_price, line_total,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :invoice_id, :item_id, :description, :quantity, :unit_price, :line_total,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	for _, line := range inv.Lines {
		line.InvoiceID = inv.ID
		if _, err := r.db.NamedExecContext(ctx, query, line); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice line").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
		SELECT * FROM invoices
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":     id,
		"status": types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	var inv invoice.Invoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLines(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	query := `
		SELECT * FROM invoices
		WHERE invoice_number = :invoice_number
		AND status = :status`

	params := map[string]interface{}{
		"invoice_number": invoiceNumber,
		"status":         types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to query invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", invoiceNumber).
			Mark(ierr.ErrNotFound)
	}

	var inv invoice.Invoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLines(ctx, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) loadLines(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		SELECT * FROM invoice_lines
		WHERE invoice_id = :invoice_id
		AND status = :status
		ORDER BY created_at ASC, id ASC`

	params := map[string]interface{}{
		"invoice_id": inv.ID,
		"status":     types.StatusPublished,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to query invoice lines").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var lines []*invoice.InvoiceLine
	for rows.Next() {
		var line invoice.InvoiceLine
		if err := rows.StructScan(&line); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to scan invoice line").
				Mark(ierr.ErrDatabase)
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return ierr.WithError(err).
			WithHint("Error iterating invoice lines").
			Mark(ierr.ErrDatabase)
	}

	inv.Lines = lines
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE invoices
		SET
			customer_id = :customer_id,
			invoice_status = :invoice_status,
			currency = :currency,
			subtotal = :subtotal,
			tax = :tax,
			discount = :discount,
			total = :total,
			notes = :notes,
			metadata = :metadata,
			checkout_session_id = :checkout_session_id,
			payment_intent_id = :payment_intent_id,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	result, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	return r.ensureAffected(result, inv.ID)
}

// ReplaceLines soft deletes the current line set and inserts the new one in
// a single transaction, then rewrites the recomputed totals.
func (r *invoiceRepository) ReplaceLines(ctx context.Context, inv *invoice.Invoice) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
			UPDATE invoice_lines
			SET status = :deleted, updated_at = NOW(), updated_by = :updated_by
			WHERE invoice_id = :invoice_id
			AND status = :published`

		params := map[string]interface{}{
			"invoice_id": inv.ID,
			"deleted":    types.StatusDeleted,
			"published":  types.StatusPublished,
			"updated_by": types.GetUserID(ctx),
		}

		if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to clear invoice lines").
				Mark(ierr.ErrDatabase)
		}

		if err := r.insertLines(ctx, inv); err != nil {
			return err
		}

		return r.Update(ctx, inv)
	})
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error {
	query := `
		UPDATE invoices
		SET
			invoice_status = :invoice_status,
			updated_at = NOW(),
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":             id,
		"invoice_status": status,
		"updated_by":     types.GetUserID(ctx),
		"status":         types.StatusPublished,
	}

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			Mark(ierr.ErrDatabase)
	}

	return r.ensureAffected(result, id)
}

// MarkPaid is the settlement write. The status guard in the WHERE clause
// makes the transition conditional, so only the first caller for a given
// invoice observes an affected row. Everyone else gets false back and must
// treat the event as already handled. Void invoices never match the guard;
// there is no path from void to paid.
func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paymentIntentID string) (bool, error) {
	query := `
		UPDATE invoices
		SET
			invoice_status = :paid,
			payment_intent_id = :payment_intent_id,
			updated_at = NOW(),
			updated_by = :updated_by
		WHERE id = :id
		AND invoice_status IN (:draft, :sent)
		AND status = :status`

	params := map[string]interface{}{
		"id":                id,
		"paid":              types.InvoiceStatusPaid,
		"draft":             types.InvoiceStatusDraft,
		"sent":              types.InvoiceStatusSent,
		"payment_intent_id": paymentIntentID,
		"updated_by":        types.GetUserID(ctx),
		"status":            types.StatusPublished,
	}

	r.logger.Debugw("marking invoice paid",
		"invoice_id", id,
		"payment_intent_id", paymentIntentID,
	)

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to mark invoice paid").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}

	return rows > 0, nil
}

func (r *invoiceRepository) SetCheckoutSession(ctx context.Context, id string, sessionID string) error {
	query := `
		UPDATE invoices
		SET
			checkout_session_id = :checkout_session_id,
			updated_at = NOW(),
			updated_by = :updated_by
		WHERE id = :id
		AND status = :status`

	params := map[string]interface{}{
		"id":                  id,
		"checkout_session_id": sessionID,
		"updated_by":          types.GetUserID(ctx),
		"status":              types.StatusPublished,
	}

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store checkout session").
			Mark(ierr.ErrDatabase)
	}

	return r.ensureAffected(result, id)
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query := `
		SELECT * FROM invoices
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}

	if filter.InvoiceStatus != nil {
		query += ` AND invoice_status = :invoice_status`
		params["invoice_status"] = *filter.InvoiceStatus
	}
	if filter.CustomerID != nil {
		query += ` AND customer_id = :customer_id`
		params["customer_id"] = *filter.CustomerID
	}

	query += ` ORDER BY created_at ` + filter.GetOrder() + ` LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.StructScan(&inv); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan invoice").
				Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Error iterating invoice rows").
			Mark(ierr.ErrDatabase)
	}

	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query := `
		SELECT COUNT(*) FROM invoices
		WHERE status = :status`

	params := map[string]interface{}{
		"status": types.StatusPublished,
	}

	if filter.InvoiceStatus != nil {
		query += ` AND invoice_status = :invoice_status`
		params["invoice_status"] = *filter.InvoiceStatus
	}
	if filter.CustomerID != nil {
		query += ` AND customer_id = :customer_id`
		params["customer_id"] = *filter.CustomerID
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan invoice count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
			UPDATE invoices
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
				WithHint("Failed to delete invoice").
				Mark(ierr.ErrDatabase)
		}

		if err := r.ensureAffected(result, id); err != nil {
			return err
		}

		lineQuery := `
			UPDATE invoice_lines
			SET status = :deleted, updated_at = NOW(), updated_by = :updated_by
			WHERE invoice_id = :invoice_id
			AND status = :published`

		params["invoice_id"] = id
		if _, err := r.db.NamedExecContext(ctx, lineQuery, params); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete invoice lines").
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
}

func (r *invoiceRepository) ensureAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to get rows affected").
			Mark(ierr.ErrDatabase)
	}

	if rows == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
