package service

import (
	"context"

	"github.com/michaello/backoffice/internal/api/dto"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/email"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/integration/stripe"
	"github.com/michaello/backoffice/internal/types"
)

// InvoiceService owns the invoice lifecycle: draft, send, checkout link,
// void and delete. Settlement happens through PaymentService.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	SendInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	CreateCheckoutSession(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		if _, err := s.CustomerRepo.Get(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
	}

	inv := req.ToInvoice(ctx)

	if err := s.resolveLineDescriptions(ctx, inv); err != nil {
		return nil, err
	}

	inv.RecomputeTotals()
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.CreateWithLines(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice created",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"total", inv.Total,
	)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// resolveLineDescriptions copies the catalog name and price onto lines that
// reference an item but carry no description or price of their own.
func (s *invoiceService) resolveLineDescriptions(ctx context.Context, inv *invoice.Invoice) error {
	for _, line := range inv.Lines {
		if line.ItemID == nil {
			continue
		}
		catalogItem, err := s.ItemRepo.Get(ctx, *line.ItemID)
		if err != nil {
			return err
		}
		if line.Description == "" {
			line.Description = catalogItem.Name
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = catalogItem.Price
		}
	}
	return nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{QueryFilter: types.GetDefaultQueryFilter()}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		items[i] = &dto.InvoiceResponse{Invoice: inv}
	}

	response := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.IsEditable() {
		return nil, ierr.NewError("invoice is not editable").
			WithHintf("Invoice %s is paid and can no longer be modified", inv.InvoiceNumber).
			Mark(ierr.ErrConflict)
	}

	if req.CustomerID != nil {
		if _, err := s.CustomerRepo.Get(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
		inv.CustomerID = req.CustomerID
	}
	if req.Tax != nil {
		inv.Tax = *req.Tax
	}
	if req.Discount != nil {
		inv.Discount = *req.Discount
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.Metadata != nil {
		inv.Metadata = req.Metadata
	}

	linesReplaced := false
	if req.Lines != nil {
		lines := make([]*invoice.InvoiceLine, 0, len(*req.Lines))
		for _, lineReq := range *req.Lines {
			lines = append(lines, lineReq.ToInvoiceLine(ctx, inv.ID))
		}
		inv.Lines = lines
		if err := s.resolveLineDescriptions(ctx, inv); err != nil {
			return nil, err
		}
		linesReplaced = true
	}

	inv.RecomputeTotals()
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if linesReplaced {
		err = s.InvoiceRepo.ReplaceLines(ctx, inv)
	} else {
		err = s.InvoiceRepo.Update(ctx, inv)
	}
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// SendInvoice opens a checkout session for a draft invoice, moves it to
// sent and emails the customer. The session is created before the
// transition is persisted, so a processor failure leaves the invoice in
// draft. The email failing does not undo the transition; it is logged and
// the invoice stays sent.
func (s *invoiceService) SendInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.EnsureTransition(types.InvoiceStatusSent); err != nil {
		return nil, err
	}

	paymentURL := ""
	if inv.Total.IsPositive() {
		session, err := s.createCheckoutSession(ctx, inv)
		if err != nil {
			return nil, err
		}
		paymentURL = session.PaymentURL
	}

	// Zero-total invoices get no session, so the promotion happens here.
	if inv.InvoiceStatus == types.InvoiceStatusDraft {
		if err := s.InvoiceRepo.UpdateStatus(ctx, inv.ID, types.InvoiceStatusSent); err != nil {
			return nil, err
		}
		inv.InvoiceStatus = types.InvoiceStatusSent
	}

	s.notifyInvoiceIssued(ctx, inv, paymentURL)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) notifyInvoiceIssued(ctx context.Context, inv *invoice.Invoice, paymentURL string) {
	if inv.CustomerID == nil {
		return
	}

	cust, err := s.CustomerRepo.Get(ctx, *inv.CustomerID)
	if err != nil || cust.Email == "" {
		return
	}

	emailErr := s.EmailSender.SendInvoiceIssued(ctx, &email.InvoiceIssuedRequest{
		ToAddress:     cust.Email,
		CustomerName:  cust.Name,
		InvoiceNumber: inv.InvoiceNumber,
		Currency:      inv.Currency,
		Total:         inv.Total,
		PaymentURL:    paymentURL,
	})
	if emailErr != nil {
		s.Logger.Errorw("failed to send invoice email",
			"error", emailErr,
			"invoice_id", inv.ID,
		)
	}
}

func (s *invoiceService) VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.EnsureTransition(types.InvoiceStatusVoid); err != nil {
		return nil, err
	}

	if inv.InvoiceStatus != types.InvoiceStatusVoid {
		if err := s.InvoiceRepo.UpdateStatus(ctx, inv.ID, types.InvoiceStatusVoid); err != nil {
			return nil, err
		}
		inv.InvoiceStatus = types.InvoiceStatusVoid
	}

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if inv.InvoiceStatus == types.InvoiceStatusPaid {
		return ierr.NewError("cannot delete a paid invoice").
			WithHintf("Invoice %s is paid; paid invoices cannot be deleted", inv.InvoiceNumber).
			Mark(ierr.ErrConflict)
	}

	return s.InvoiceRepo.Delete(ctx, id)
}

// CreateCheckoutSession opens (or reopens) a hosted payment page for an
// unpaid invoice. Paid and void invoices are rejected; a draft invoice
// moves to sent once its session exists.
func (s *invoiceService) CreateCheckoutSession(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session, err := s.createCheckoutSession(ctx, inv)
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutSessionResponse{
		SessionID:  session.ID,
		PaymentURL: session.PaymentURL,
	}, nil
}

func (s *invoiceService) createCheckoutSession(ctx context.Context, inv *invoice.Invoice) (*stripe.CheckoutSession, error) {
	if inv.InvoiceStatus == types.InvoiceStatusPaid {
		return nil, ierr.NewError("invoice is already paid").
			WithHintf("Invoice %s has already been paid", inv.InvoiceNumber).
			Mark(ierr.ErrConflict)
	}
	if inv.InvoiceStatus == types.InvoiceStatusVoid {
		return nil, ierr.NewError("invoice is void").
			WithHintf("Invoice %s is void and cannot be paid", inv.InvoiceNumber).
			Mark(ierr.ErrConflict)
	}
	if !inv.Total.IsPositive() {
		return nil, ierr.NewError("invoice total must be positive").
			WithHintf("Invoice %s has nothing to pay", inv.InvoiceNumber).
			Mark(ierr.ErrInvalidOperation)
	}

	customerEmail := ""
	if inv.CustomerID != nil {
		if cust, err := s.CustomerRepo.Get(ctx, *inv.CustomerID); err == nil {
			customerEmail = cust.Email
		}
	}

	session, err := s.PaymentGateway.CreateCheckoutSession(ctx, &stripe.CheckoutSessionRequest{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Currency:      inv.Currency,
		Total:         inv.Total,
		CustomerEmail: customerEmail,
	})
	if err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.SetCheckoutSession(ctx, inv.ID, session.ID); err != nil {
		return nil, err
	}
	inv.CheckoutSessionID = &session.ID

	// A draft invoice with an open payment page is out for payment.
	if inv.InvoiceStatus == types.InvoiceStatusDraft {
		if err := s.InvoiceRepo.UpdateStatus(ctx, inv.ID, types.InvoiceStatusSent); err != nil {
			return nil, err
		}
		inv.InvoiceStatus = types.InvoiceStatusSent
	}

	s.Logger.Infow("checkout session created",
		"invoice_id", inv.ID,
		"session_id", session.ID,
	)

	return session, nil
}
