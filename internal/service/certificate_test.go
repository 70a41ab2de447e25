package service

import (
	"testing"
	"time"

	"github.com/michaello/backoffice/internal/api/dto"
	"github.com/michaello/backoffice/internal/domain/customer"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/domain/item"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/testutil"
	"github.com/michaello/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CertificateServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CertificateService

	item    *item.Item
	invoice *invoice.Invoice
}

func TestCertificateService(t *testing.T) {
	suite.Run(t, new(CertificateServiceSuite))
}

func (s *CertificateServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewCertificateService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		PDFRenderer:     s.GetPDFRenderer(),
		PaymentGateway:  s.GetPaymentGateway(),
		EmailSender:     s.GetEmailSender(),
		InvoiceRepo:     stores.InvoiceRepo,
		ItemRepo:        stores.ItemRepo,
		CategoryRepo:    stores.CategoryRepo,
		CustomerRepo:    stores.CustomerRepo,
		SupplierRepo:    stores.SupplierRepo,
		CertificateRepo: stores.CertificateRepo,
	})

	s.seedPaidInvoiceWithItem()
}

func (s *CertificateServiceSuite) seedPaidInvoiceWithItem() {
	ctx := s.GetContext()

	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixCustomer),
		Name:      "Maria Silva",
		Email:     "maria@example.com",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(ctx, cust))

	s.item = &item.Item{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixItem),
		SKU:         "RING-001",
		Name:        "Emerald Ring",
		Metal:       types.MetalGold,
		Purity:      types.Purity18K,
		WeightGrams: decimal.RequireFromString("4.200"),
		Price:       decimal.NewFromInt(900),
		Stock:       1,
		Active:      true,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ItemRepo.Create(ctx, s.item))

	s.invoice = &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoice),
		CustomerID:    lo.ToPtr(cust.ID),
		InvoiceStatus: types.InvoiceStatusPaid,
		Currency:      "eur",
		Lines: []*invoice.InvoiceLine{
			{
				ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLine),
				ItemID:      lo.ToPtr(s.item.ID),
				Description: "Emerald Ring",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(900),
			},
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	for _, l := range s.invoice.Lines {
		l.InvoiceID = s.invoice.ID
	}
	s.invoice.RecomputeTotals()
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLines(ctx, s.invoice))
}

func (s *CertificateServiceSuite) TestCreateCertificate() {
	resp, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
	})
	s.NoError(err)

	day := time.Now().UTC().Format("20060102")
	s.Equal("CERT-"+day+"-0001", resp.CertificateNumber)
	s.Equal(s.item.ID, resp.ItemID)
	s.Equal(s.invoice.ID, lo.FromPtr(resp.InvoiceID))
}

func (s *CertificateServiceSuite) TestCreateCertificateWithoutInvoice() {
	resp, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		SendEmail: true,
	})
	s.NoError(err)
	s.Nil(resp.InvoiceID)
	s.NotEmpty(resp.CertificateNumber)

	// No invoice means no customer to deliver to.
	s.Empty(s.GetEmailSender().CertificatesIssued)

	pdf, err := s.service.RenderCertificatePDF(s.GetContext(), resp.ID)
	s.NoError(err)
	s.NotEmpty(pdf)

	data := s.GetPDFRenderer().Prepared[0]
	s.Empty(data.InvoiceNumber)
	s.Empty(data.CustomerName)
}

func (s *CertificateServiceSuite) TestCreateCertificateRequiresPaidInvoice() {
	s.NoError(s.GetStores().InvoiceRepo.UpdateStatus(s.GetContext(), s.invoice.ID, types.InvoiceStatusSent))

	_, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
	})
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *CertificateServiceSuite) TestCreateCertificateItemNotOnInvoice() {
	other := &item.Item{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixItem),
		SKU:       "RING-002",
		Name:      "Plain Band",
		Metal:     types.MetalSilver,
		Purity:    types.Purity925K,
		Price:     decimal.NewFromInt(50),
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), other))

	_, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    other.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CertificateServiceSuite) TestCreateCertificateWithEmailDelivery() {
	resp, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
		SendEmail: true,
	})
	s.NoError(err)

	s.Len(s.GetEmailSender().CertificatesIssued, 1)
	sent := s.GetEmailSender().CertificatesIssued[0]
	s.Equal("maria@example.com", sent.ToAddress)
	s.Equal(resp.CertificateNumber, sent.CertificateNumber)
	s.Equal("Emerald Ring", sent.ItemName)
	s.NotEmpty(sent.PDF)
}

func (s *CertificateServiceSuite) TestRenderCertificatePDF() {
	resp, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
	})
	s.NoError(err)

	pdf, err := s.service.RenderCertificatePDF(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Equal(s.GetPDFRenderer().PDF, pdf)

	s.Len(s.GetPDFRenderer().Prepared, 1)
	data := s.GetPDFRenderer().Prepared[0]
	s.Equal(resp.CertificateNumber, data.CertificateNumber)
	s.Equal("Emerald Ring", data.ItemName)
	s.Equal("RING-001", data.ItemSKU)
	s.Equal("Maria Silva", data.CustomerName)
}

func (s *CertificateServiceSuite) TestListCertificatesByInvoice() {
	_, err := s.service.CreateCertificate(s.GetContext(), dto.CreateCertificateRequest{
		ItemID:    s.item.ID,
		InvoiceID: lo.ToPtr(s.invoice.ID),
	})
	s.NoError(err)

	resp, err := s.service.ListCertificates(s.GetContext(), &types.CertificateFilter{
		QueryFilter: types.GetDefaultQueryFilter(),
		InvoiceID:   lo.ToPtr(s.invoice.ID),
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)

	empty, err := s.service.ListCertificates(s.GetContext(), &types.CertificateFilter{
		QueryFilter: types.GetDefaultQueryFilter(),
		InvoiceID:   lo.ToPtr("inv_other"),
	})
	s.NoError(err)
	s.Equal(0, empty.Pagination.Total)
}
