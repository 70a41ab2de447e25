package service

import (
	"context"
	"path/filepath"

	"github.com/michaello/backoffice/internal/api/dto"
	"github.com/michaello/backoffice/internal/domain/certificate"
	"github.com/michaello/backoffice/internal/domain/invoice"
	pdfdomain "github.com/michaello/backoffice/internal/domain/pdfgen"
	"github.com/michaello/backoffice/internal/email"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// CertificateService issues authenticity certificates for catalog items.
// Linking an invoice is optional, but a linked invoice must be paid and
// must actually contain the item.
type CertificateService interface {
	CreateCertificate(ctx context.Context, req dto.CreateCertificateRequest) (*dto.CertificateResponse, error)
	GetCertificate(ctx context.Context, id string) (*dto.CertificateResponse, error)
	ListCertificates(ctx context.Context, filter *types.CertificateFilter) (*dto.ListCertificatesResponse, error)
	DeleteCertificate(ctx context.Context, id string) error
	// RenderCertificatePDF compiles the certificate into a PDF document.
	RenderCertificatePDF(ctx context.Context, id string) ([]byte, error)
}

type certificateService struct {
	ServiceParams
}

func NewCertificateService(params ServiceParams) CertificateService {
	return &certificateService{
		ServiceParams: params,
	}
}

func (s *certificateService) CreateCertificate(ctx context.Context, req dto.CreateCertificateRequest) (*dto.CertificateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ItemRepo.Get(ctx, req.ItemID); err != nil {
		return nil, err
	}

	if req.InvoiceID != nil {
		inv, err := s.InvoiceRepo.Get(ctx, *req.InvoiceID)
		if err != nil {
			return nil, err
		}

		if inv.InvoiceStatus != types.InvoiceStatusPaid {
			return nil, ierr.NewError("invoice is not paid").
				WithHintf("Certificates require a paid invoice; %s is %s", inv.InvoiceNumber, inv.InvoiceStatus).
				Mark(ierr.ErrConflict)
		}

		if !invoiceContainsItem(inv.Lines, req.ItemID) {
			return nil, ierr.NewError("item not on invoice").
				WithHintf("Invoice %s has no line for the requested item", inv.InvoiceNumber).
				Mark(ierr.ErrValidation)
		}
	}

	cert := req.ToCertificate(ctx)
	if err := cert.Validate(); err != nil {
		return nil, err
	}

	if err := s.CertificateRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	s.Logger.Infow("certificate issued",
		"certificate_id", cert.ID,
		"certificate_number", cert.CertificateNumber,
		"item_id", cert.ItemID,
	)

	if req.SendEmail && cert.InvoiceID != nil {
		s.deliverCertificate(ctx, cert)
	}

	return &dto.CertificateResponse{Certificate: cert}, nil
}

func invoiceContainsItem(lines []*invoice.InvoiceLine, itemID string) bool {
	for _, line := range lines {
		if line.ItemID != nil && *line.ItemID == itemID {
			return true
		}
	}
	return false
}

func (s *certificateService) GetCertificate(ctx context.Context, id string) (*dto.CertificateResponse, error) {
	cert, err := s.CertificateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CertificateResponse{Certificate: cert}, nil
}

func (s *certificateService) ListCertificates(ctx context.Context, filter *types.CertificateFilter) (*dto.ListCertificatesResponse, error) {
	if filter == nil {
		filter = &types.CertificateFilter{QueryFilter: types.GetDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	certificates, err := s.CertificateRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.CertificateRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CertificateResponse, len(certificates))
	for i, cert := range certificates {
		responses[i] = &dto.CertificateResponse{Certificate: cert}
	}

	response := types.NewListResponse(responses, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *certificateService) DeleteCertificate(ctx context.Context, id string) error {
	if _, err := s.CertificateRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.CertificateRepo.Delete(ctx, id)
}

// RenderCertificatePDF assembles the template data from the certificate,
// item and invoice records and compiles it with typst.
func (s *certificateService) RenderCertificatePDF(ctx context.Context, id string) ([]byte, error) {
	cert, err := s.CertificateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.buildCertificateData(ctx, cert)
	if err != nil {
		return nil, err
	}

	templatePath := filepath.Join(s.Config.Documents.TemplateDir, "certificate.typ.tmpl")
	typPath, err := s.PDFRenderer.PrepareTemplate(templatePath, data)
	if err != nil {
		return nil, err
	}

	return s.PDFRenderer.CompileTemplate(cert.ID, typPath, s.Config.Documents.FontDir)
}

func (s *certificateService) buildCertificateData(ctx context.Context, cert *certificate.Certificate) (*pdfdomain.CertificateData, error) {
	catalogItem, err := s.ItemRepo.Get(ctx, cert.ItemID)
	if err != nil {
		return nil, err
	}

	invoiceNumber := ""
	customerName := ""
	if cert.InvoiceID != nil {
		inv, err := s.InvoiceRepo.Get(ctx, *cert.InvoiceID)
		if err != nil {
			return nil, err
		}
		invoiceNumber = inv.InvoiceNumber
		if inv.CustomerID != nil {
			if cust, err := s.CustomerRepo.Get(ctx, *inv.CustomerID); err == nil {
				customerName = cust.Name
			}
		}
	}

	return &pdfdomain.CertificateData{
		ID:                cert.ID,
		CertificateNumber: cert.CertificateNumber,
		IssuedAt:          cert.CreatedAt,
		ItemName:          catalogItem.Name,
		ItemSKU:           catalogItem.SKU,
		Metal:             string(catalogItem.Metal),
		Purity:            string(catalogItem.Purity),
		StoneDetails:      catalogItem.StoneDetails,
		WeightGrams:       catalogItem.WeightGrams,
		InvoiceNumber:     invoiceNumber,
		CustomerName:      customerName,
		Notes:             cert.Notes,
	}, nil
}

// deliverCertificate renders the PDF and emails it to the invoice
// customer. Failures are logged; the certificate record already exists and
// the document can be re-sent later.
func (s *certificateService) deliverCertificate(ctx context.Context, cert *certificate.Certificate) {
	if cert.InvoiceID == nil {
		return
	}

	inv, err := s.InvoiceRepo.Get(ctx, *cert.InvoiceID)
	if err != nil || inv.CustomerID == nil {
		return
	}

	cust, err := s.CustomerRepo.Get(ctx, *inv.CustomerID)
	if err != nil || cust.Email == "" {
		return
	}

	pdf, err := s.RenderCertificatePDF(ctx, cert.ID)
	if err != nil {
		s.Logger.Errorw("failed to render certificate PDF",
			"error", err,
			"certificate_id", cert.ID,
		)
		return
	}

	catalogItem, err := s.ItemRepo.Get(ctx, cert.ItemID)
	if err != nil {
		return
	}

	if err := s.EmailSender.SendCertificateIssued(ctx, &email.CertificateIssuedRequest{
		ToAddress:         cust.Email,
		CustomerName:      cust.Name,
		CertificateNumber: cert.CertificateNumber,
		ItemName:          catalogItem.Name,
		PDF:               pdf,
	}); err != nil {
		s.Logger.Errorw("failed to send certificate email",
			"error", err,
			"certificate_id", cert.ID,
		)
	}
}
