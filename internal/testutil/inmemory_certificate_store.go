package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/michaello/backoffice/internal/domain/certificate"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemoryCertificateStore implements certificate.Repository
type InMemoryCertificateStore struct {
	*InMemoryStore[*certificate.Certificate]

	seqMu     sync.Mutex
	sequences map[string]int64
}

// NewInMemoryCertificateStore creates a new in-memory certificate store
func NewInMemoryCertificateStore() *InMemoryCertificateStore {
	return &InMemoryCertificateStore{
		InMemoryStore: NewInMemoryStore[*certificate.Certificate](),
		sequences:     make(map[string]int64),
	}
}

func copyCertificate(c *certificate.Certificate) *certificate.Certificate {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (s *InMemoryCertificateStore) Create(ctx context.Context, c *certificate.Certificate) error {
	if c.CertificateNumber == "" {
		number, err := s.NextCertificateNumber(ctx)
		if err != nil {
			return err
		}
		c.CertificateNumber = number
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCertificate(c))
}

func (s *InMemoryCertificateStore) Get(ctx context.Context, id string) (*certificate.Certificate, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c == nil || c.Status != types.StatusPublished {
		return nil, ierr.NewError("certificate not found").
			WithHintf("Certificate %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCertificate(c), nil
}

func (s *InMemoryCertificateStore) List(ctx context.Context, filter *types.CertificateFilter) ([]*certificate.Certificate, error) {
	certificates, err := s.InMemoryStore.List(ctx, filter, certificateFilterFn, func(i, j *certificate.Certificate) bool {
		if i.CreatedAt.Equal(j.CreatedAt) {
			return i.ID > j.ID
		}
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	certificates = paginate(certificates, filter.QueryFilter)
	return lo.Map(certificates, func(c *certificate.Certificate, _ int) *certificate.Certificate {
		return copyCertificate(c)
	}), nil
}

func (s *InMemoryCertificateStore) Count(ctx context.Context, filter *types.CertificateFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, certificateFilterFn)
}

func (s *InMemoryCertificateStore) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Status = types.StatusDeleted
	c.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, c)
}

func (s *InMemoryCertificateStore) NextCertificateNumber(ctx context.Context) (string, error) {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()

	day := time.Now().UTC().Format("20060102")
	s.sequences[day]++
	return types.FormatSequenceNumber("CERT", day, s.sequences[day]), nil
}

func (s *InMemoryCertificateStore) Clear() {
	s.InMemoryStore.Clear()
	s.seqMu.Lock()
	s.sequences = make(map[string]int64)
	s.seqMu.Unlock()
}

func certificateFilterFn(_ context.Context, c *certificate.Certificate, filter interface{}) bool {
	if c.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.CertificateFilter)
	if !ok || f == nil {
		return true
	}
	if f.ItemID != nil && c.ItemID != *f.ItemID {
		return false
	}
	if f.InvoiceID != nil && (c.InvoiceID == nil || *c.InvoiceID != *f.InvoiceID) {
		return false
	}
	return true
}

var _ certificate.Repository = (*InMemoryCertificateStore)(nil)
