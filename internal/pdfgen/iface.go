package pdfgen

import (
	domain "github.com/michaello/backoffice/internal/domain/pdfgen"
)

type CertificateRenderer interface {
	PrepareTemplate(templatePath string, data *domain.CertificateData) (string, error)
	CompileTemplate(id, templatePath, fontDir string) ([]byte, error)
}
