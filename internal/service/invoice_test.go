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

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(s.newParams())
}

func (s *InvoiceServiceSuite) newParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
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
	}
}

func (s *InvoiceServiceSuite) seedCustomer() *customer.Customer {
	cust := &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixCustomer),
		Name:      "Ana Kowalska",
		Email:     "ana@example.com",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), cust))
	return cust
}

func (s *InvoiceServiceSuite) seedItem(price decimal.Decimal, stock int64) *item.Item {
	i := &item.Item{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixItem),
		SKU:       "SKU-" + types.GenerateUUID(),
		Name:      "Gold Ring",
		Metal:     types.MetalGold,
		Purity:    types.Purity18K,
		Price:     price,
		Stock:     stock,
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ItemRepo.Create(s.GetContext(), i))
	return i
}

func (s *InvoiceServiceSuite) seedInvoice(status types.InvoiceStatus, lines ...*invoice.InvoiceLine) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoice),
		InvoiceStatus: status,
		Currency:      "eur",
		Lines:         lines,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	for _, line := range inv.Lines {
		line.InvoiceID = inv.ID
	}
	inv.RecomputeTotals()
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLines(s.GetContext(), inv))
	return inv
}

func line(qty int64, price string) *invoice.InvoiceLine {
	return &invoice.InvoiceLine{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixInvoiceLine),
		Description: "Line",
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoiceComputesTotals() {
	cust := s.seedCustomer()

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		CustomerID: lo.ToPtr(cust.ID),
		Currency:   "eur",
		Tax:        decimal.NewFromInt(10),
		Discount:   decimal.NewFromInt(5),
		Lines: []dto.CreateInvoiceLineRequest{
			{Description: "Gold ring", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{Description: "Silver chain", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", resp.Subtotal)
	s.True(resp.Total.Equal(decimal.NewFromInt(255)), "total %s", resp.Total)

	day := time.Now().UTC().Format("20060102")
	s.Equal("INV-"+day+"-0001", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestInvoiceMetadataRoundTrip() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Currency: "eur",
		Metadata: types.Metadata{"order_ref": "web-981"},
		Lines: []dto.CreateInvoiceLineRequest{
			{Description: "Gold ring", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	s.NoError(err)
	s.Equal("web-981", resp.Metadata["order_ref"])

	updated, err := s.service.UpdateInvoice(s.GetContext(), resp.ID, dto.UpdateInvoiceRequest{
		Metadata: types.Metadata{"order_ref": "web-982", "channel": "store"},
	})
	s.NoError(err)
	s.Equal("web-982", updated.Metadata["order_ref"])
	s.Equal("store", updated.Metadata["channel"])
}

func (s *InvoiceServiceSuite) TestCreateInvoiceClampsNegativeTotal() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Currency: "eur",
		Discount: decimal.NewFromInt(500),
		Lines: []dto.CreateInvoiceLineRequest{
			{Description: "Small repair", Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
		},
	})
	s.NoError(err)
	s.True(resp.Total.IsZero(), "total %s", resp.Total)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(40)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceResolvesCatalogLines() {
	catalogItem := s.seedItem(decimal.NewFromInt(120), 3)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Currency: "eur",
		Lines: []dto.CreateInvoiceLineRequest{
			{ItemID: lo.ToPtr(catalogItem.ID), Quantity: 2},
		},
	})
	s.NoError(err)
	s.Len(resp.Lines, 1)
	s.Equal("Gold Ring", resp.Lines[0].Description)
	s.True(resp.Lines[0].UnitPrice.Equal(decimal.NewFromInt(120)))
	s.True(resp.Total.Equal(decimal.NewFromInt(240)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownCustomer() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		CustomerID: lo.ToPtr("cust_missing"),
		Currency:   "eur",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsUppercaseCurrency() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		Currency: "EUR",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceReplacesLines() {
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "100"))

	resp, err := s.service.UpdateInvoice(s.GetContext(), inv.ID, dto.UpdateInvoiceRequest{
		Tax: lo.ToPtr(decimal.NewFromInt(20)),
		Lines: &[]dto.CreateInvoiceLineRequest{
			{Description: "Replacement", Quantity: 3, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	s.NoError(err)
	s.Len(resp.Lines, 1)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(90)))
	s.True(resp.Total.Equal(decimal.NewFromInt(110)))
}

func (s *InvoiceServiceSuite) TestUpdatePaidInvoiceRejected() {
	inv := s.seedInvoice(types.InvoiceStatusPaid, line(1, "100"))

	_, err := s.service.UpdateInvoice(s.GetContext(), inv.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("amended"),
	})
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestSendInvoiceOpensCheckoutAndEmails() {
	cust := s.seedCustomer()
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "150"))
	inv.CustomerID = lo.ToPtr(cust.ID)
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	resp, err := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, resp.InvoiceStatus)

	s.Equal(1, s.GetPaymentGateway().CheckoutCallCount())
	s.Len(s.GetEmailSender().InvoiceIssued, 1)
	s.Equal(cust.Email, s.GetEmailSender().InvoiceIssued[0].ToAddress)
	s.NotEmpty(s.GetEmailSender().InvoiceIssued[0].PaymentURL)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.InvoiceStatus)
	s.NotNil(stored.CheckoutSessionID)
}

func (s *InvoiceServiceSuite) TestSendInvoiceEmailFailureKeepsInvoiceSent() {
	cust := s.seedCustomer()
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "150"))
	inv.CustomerID = lo.ToPtr(cust.ID)
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	s.GetEmailSender().Err = ierr.NewError("smtp down").Mark(ierr.ErrIntegration)

	resp, err := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestSendInvoiceGatewayFailureLeavesDraft() {
	cust := s.seedCustomer()
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "150"))
	inv.CustomerID = lo.ToPtr(cust.ID)
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	s.GetPaymentGateway().CheckoutErr = ierr.NewError("provider unavailable").Mark(ierr.ErrIntegration)

	_, err := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.Error(err)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, stored.InvoiceStatus)
	s.Nil(stored.CheckoutSessionID)
	s.Empty(s.GetEmailSender().InvoiceIssued)
}

func (s *InvoiceServiceSuite) TestCheckoutSessionPromotesDraftToSent() {
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "150"))

	resp, err := s.service.CreateCheckoutSession(s.GetContext(), inv.ID)
	s.NoError(err)
	s.NotEmpty(resp.SessionID)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.InvoiceStatus)
	s.Equal(resp.SessionID, lo.FromPtr(stored.CheckoutSessionID))
}

func (s *InvoiceServiceSuite) TestSendVoidInvoiceRejected() {
	inv := s.seedInvoice(types.InvoiceStatusVoid, line(1, "100"))

	_, err := s.service.SendInvoice(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsConflict(err))
	s.Zero(s.GetPaymentGateway().CheckoutCallCount())
}

func (s *InvoiceServiceSuite) TestVoidPaidInvoiceRejected() {
	inv := s.seedInvoice(types.InvoiceStatusPaid, line(1, "100"))

	_, err := s.service.VoidInvoice(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestVoidSentInvoice() {
	inv := s.seedInvoice(types.InvoiceStatusSent, line(1, "100"))

	resp, err := s.service.VoidInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestDeletePaidInvoiceRejected() {
	inv := s.seedInvoice(types.InvoiceStatusPaid, line(1, "100"))

	err := s.service.DeleteInvoice(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestDeleteDraftInvoice() {
	inv := s.seedInvoice(types.InvoiceStatusDraft, line(1, "100"))

	s.NoError(s.service.DeleteInvoice(s.GetContext(), inv.ID))

	_, err := s.service.GetInvoice(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCheckoutSessionRejectedForPaidInvoice() {
	inv := s.seedInvoice(types.InvoiceStatusPaid, line(1, "100"))

	_, err := s.service.CreateCheckoutSession(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsConflict(err))
}

func (s *InvoiceServiceSuite) TestCheckoutSessionRejectedForZeroTotal() {
	inv := s.seedInvoice(types.InvoiceStatusDraft)

	_, err := s.service.CreateCheckoutSession(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesFiltersByStatus() {
	s.seedInvoice(types.InvoiceStatusDraft, line(1, "100"))
	s.seedInvoice(types.InvoiceStatusSent, line(1, "200"))

	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter:   types.GetDefaultQueryFilter(),
		InvoiceStatus: lo.ToPtr(types.InvoiceStatusSent),
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Len(resp.Items, 1)
	s.Equal(types.InvoiceStatusSent, resp.Items[0].InvoiceStatus)
}
