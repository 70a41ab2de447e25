package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/michaello/backoffice/internal/domain/invoice"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	seqMu     sync.Mutex
	sequences map[string]int64
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		sequences:     make(map[string]int64),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	clone := *inv
	clone.Lines = lo.Map(inv.Lines, func(l *invoice.InvoiceLine, _ int) *invoice.InvoiceLine {
		lc := *l
		return &lc
	})
	if inv.Metadata != nil {
		clone.Metadata = lo.Assign(types.Metadata{}, inv.Metadata)
	}
	return &clone
}

func (s *InMemoryInvoiceStore) CreateWithLines(ctx context.Context, inv *invoice.Invoice) error {
	if inv.InvoiceNumber == "" {
		number, err := s.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv == nil || inv.Status != types.StatusPublished {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.InvoiceNumber == invoiceNumber && inv.Status == types.StatusPublished
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", invoiceNumber).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(invoices[0]), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	existing, err := s.Get(ctx, inv.ID)
	if err != nil {
		return err
	}
	clone := copyInvoice(inv)
	if len(clone.Lines) == 0 {
		clone.Lines = existing.Lines
	}
	return s.InMemoryStore.Update(ctx, inv.ID, clone)
}

func (s *InMemoryInvoiceStore) ReplaceLines(ctx context.Context, inv *invoice.Invoice) error {
	if _, err := s.Get(ctx, inv.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	inv.InvoiceStatus = status
	inv.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, inv)
}

// MarkPaid mirrors the conditional update in the postgres repository: the
// first caller wins and every later caller gets false. Void invoices never
// match, so a late webhook cannot resurrect a cancelled invoice.
func (s *InMemoryInvoiceStore) MarkPaid(ctx context.Context, id string, paymentIntentID string) (bool, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if inv.InvoiceStatus != types.InvoiceStatusDraft && inv.InvoiceStatus != types.InvoiceStatusSent {
		return false, nil
	}
	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaymentIntentID = lo.ToPtr(paymentIntentID)
	inv.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, id, inv); err != nil {
		return false, err
	}
	return true, nil
}

func (s *InMemoryInvoiceStore) SetCheckoutSession(ctx context.Context, id string, sessionID string) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	inv.CheckoutSessionID = lo.ToPtr(sessionID)
	inv.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, inv)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	invoices = paginate(invoices, filter.QueryFilter)
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	inv.Status = types.StatusDeleted
	inv.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, inv)
}

func (s *InMemoryInvoiceStore) NextInvoiceNumber(ctx context.Context) (string, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	day := time.Now().UTC().Format("20060102")
	s.sequences[day]++
	return types.FormatSequenceNumber("INV", day, s.sequences[day]), nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.InMemoryStore.Clear()
	s.seqMu.Lock()
	s.sequences = make(map[string]int64)
	s.seqMu.Unlock()
}

func invoiceFilterFn(_ context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}
	if f.InvoiceStatus != nil && inv.InvoiceStatus != *f.InvoiceStatus {
		return false
	}
	if f.CustomerID != nil && (inv.CustomerID == nil || *inv.CustomerID != *f.CustomerID) {
		return false
	}
	return true
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID > j.ID
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func paginate[T any](items []T, f types.QueryFilter) []T {
	start := f.GetOffset()
	if start >= len(items) {
		return []T{}
	}
	end := start + f.GetLimit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)
