package testutil

import (
	"context"
	"sync"

	"github.com/michaello/backoffice/internal/email"
)

var _ email.Sender = (*MockEmailSender)(nil)

// MockEmailSender records every delivery so tests can assert on what was
// sent. Set Err to make all sends fail.
type MockEmailSender struct {
	mu sync.Mutex

	InvoiceIssued        []*email.InvoiceIssuedRequest
	PaymentConfirmations []*email.PaymentConfirmationRequest
	CertificatesIssued   []*email.CertificateIssuedRequest
	Err                  error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, req *email.InvoiceIssuedRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.InvoiceIssued = append(m.InvoiceIssued, req)
	return nil
}

func (m *MockEmailSender) SendPaymentConfirmation(ctx context.Context, req *email.PaymentConfirmationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.PaymentConfirmations = append(m.PaymentConfirmations, req)
	return nil
}

func (m *MockEmailSender) SendCertificateIssued(ctx context.Context, req *email.CertificateIssuedRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.CertificatesIssued = append(m.CertificatesIssued, req)
	return nil
}

func (m *MockEmailSender) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvoiceIssued = nil
	m.PaymentConfirmations = nil
	m.CertificatesIssued = nil
	m.Err = nil
}
