package testutil

import (
	domain "github.com/michaello/backoffice/internal/domain/pdfgen"
	"github.com/michaello/backoffice/internal/pdfgen"
)

var _ pdfgen.CertificateRenderer = (*MockCertificateRenderer)(nil)

// MockCertificateRenderer skips typst entirely and returns a canned PDF
// payload so certificate delivery can be tested without the binary.
type MockCertificateRenderer struct {
	Prepared []*domain.CertificateData
	PDF      []byte
	Err      error
}

func NewMockCertificateRenderer() *MockCertificateRenderer {
	return &MockCertificateRenderer{
		PDF: []byte("%PDF-1.7 test"),
	}
}

func (m *MockCertificateRenderer) PrepareTemplate(templatePath string, data *domain.CertificateData) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Prepared = append(m.Prepared, data)
	return templatePath, nil
}

func (m *MockCertificateRenderer) CompileTemplate(id, templatePath, fontDir string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PDF, nil
}
