package pdfgen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	domain "github.com/michaello/backoffice/internal/domain/pdfgen"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
)

// TypstRenderer handles rendering Typst templates
type TypstRenderer struct {
	log *logger.Logger
}

// NewTypstRenderer creates a new Typst renderer
func NewTypstRenderer(log *logger.Logger) CertificateRenderer {
	return &TypstRenderer{log: log}
}

// PrepareTemplate renders the certificate data into a .typ file next to the
// template and returns its path.
func (r *TypstRenderer) PrepareTemplate(templatePath string, data *domain.CertificateData) (string, error) {
	templateContent, err := os.ReadFile(templatePath)
	if err != nil {
		return "", ierr.WithError(err).WithMessage("failed to read template file").Mark(ierr.ErrSystem)
	}

	templateDir := filepath.Dir(templatePath)
	typPath := filepath.Join(templateDir, fmt.Sprintf("certificate-%s.typ", data.ID))

	tmpl, err := template.New("certificate").Parse(string(templateContent))
	if err != nil {
		return "", ierr.WithError(err).WithMessage("failed to parse template").Mark(ierr.ErrSystem)
	}

	f, err := os.Create(typPath)
	if err != nil {
		return "", ierr.WithError(err).WithMessage("failed to create temp file").Mark(ierr.ErrSystem)
	}
	defer f.Close()

	typstData := convertToTypstFormat(data)

	if err := tmpl.Execute(f, typstData); err != nil {
		return "", ierr.WithError(err).WithMessage("failed to render template").Mark(ierr.ErrSystem)
	}

	return typPath, nil
}

// CompileTemplate compiles a Typst template into a PDF
func (r *TypstRenderer) CompileTemplate(id, templatePath string, fontDir string) ([]byte, error) {
	dir := filepath.Dir(templatePath)
	defer func() {
		os.Remove(filepath.Join(dir, fmt.Sprintf("certificate-%s.pdf", id)))
	}()

	args := []string{
		"compile",
		templatePath,
	}

	if fontDir != "" {
		args = append(args, "--font-path", fontDir)
	}

	typstBinaryPath, err := exec.LookPath("typst")
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to find typst binary").Mark(ierr.ErrSystem)
	}

	cmd := exec.Command(typstBinaryPath, args...)
	r.log.Debugf("typst command: %s", cmd.String())
	if _, err := cmd.CombinedOutput(); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to compile typst template").Mark(ierr.ErrSystem)
	}

	pdfBytes, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("certificate-%s.pdf", id)))
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to read compiled PDF").Mark(ierr.ErrSystem)
	}

	return pdfBytes, nil
}

// TypstData represents certificate data in a format suitable for Typst
// templates.
type TypstData struct {
	Title             string  `json:"Title"`
	CertificateNumber string  `json:"CertificateNumber"`
	IssuedAt          string  `json:"IssuedAt"`
	ItemName          string  `json:"ItemName"`
	ItemSKU           string  `json:"ItemSKU"`
	Metal             string  `json:"Metal"`
	Purity            string  `json:"Purity"`
	StoneDetails      string  `json:"StoneDetails"`
	WeightGrams       float64 `json:"WeightGrams"`
	InvoiceNumber     string  `json:"InvoiceNumber"`
	CustomerName      string  `json:"CustomerName"`
	Notes             string  `json:"Notes"`
}

func convertToTypstFormat(data *domain.CertificateData) TypstData {
	weight, _ := data.WeightGrams.Float64()

	return TypstData{
		Title:             "Certificate " + data.CertificateNumber,
		CertificateNumber: data.CertificateNumber,
		IssuedAt:          data.IssuedAt.Format("2006-01-02"),
		ItemName:          data.ItemName,
		ItemSKU:           data.ItemSKU,
		Metal:             data.Metal,
		Purity:            data.Purity,
		StoneDetails:      data.StoneDetails,
		WeightGrams:       weight,
		InvoiceNumber:     data.InvoiceNumber,
		CustomerName:      data.CustomerName,
		Notes:             data.Notes,
	}
}
