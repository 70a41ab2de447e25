package email

import (
	"context"
	"fmt"

	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/types"
)

// Sender is the outbound notification surface used by services. Tests
// substitute a recording fake.
type Sender interface {
	SendInvoiceIssued(ctx context.Context, req *InvoiceIssuedRequest) error
	SendPaymentConfirmation(ctx context.Context, req *PaymentConfirmationRequest) error
	SendCertificateIssued(ctx context.Context, req *CertificateIssuedRequest) error
}

// Service composes and sends the back office transactional emails.
type Service struct {
	client *EmailClient
	logger *logger.Logger
}

func NewService(client *EmailClient, logger *logger.Logger) Sender {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (s *Service) SendInvoiceIssued(ctx context.Context, req *InvoiceIssuedRequest) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping invoice email",
			"to", req.ToAddress,
			"invoice_number", req.InvoiceNumber,
		)
		return nil
	}

	subject := fmt.Sprintf("Invoice %s", req.InvoiceNumber)
	symbol := types.GetCurrencySymbol(req.Currency)

	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find your invoice %s for %s%s.\n",
		req.CustomerName, req.InvoiceNumber, symbol, req.Total.StringFixed(2),
	)
	if req.PaymentURL != "" {
		body += fmt.Sprintf("\nYou can pay online here: %s\n", req.PaymentURL)
	}
	body += "\nThank you for your business.\n"

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), req.ToAddress, subject, "", body, nil)
	if err != nil {
		return err
	}

	s.logger.Infow("invoice email sent",
		"message_id", messageID,
		"to", req.ToAddress,
		"invoice_number", req.InvoiceNumber,
	)
	return nil
}

func (s *Service) SendPaymentConfirmation(ctx context.Context, req *PaymentConfirmationRequest) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping payment confirmation",
			"to", req.ToAddress,
			"invoice_number", req.InvoiceNumber,
		)
		return nil
	}

	subject := fmt.Sprintf("Payment received for invoice %s", req.InvoiceNumber)
	symbol := types.GetCurrencySymbol(req.Currency)

	body := fmt.Sprintf(
		"Dear %s,\n\nWe have received your payment of %s%s for invoice %s.\n\nThank you for your business.\n",
		req.CustomerName, symbol, req.Total.StringFixed(2), req.InvoiceNumber,
	)

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), req.ToAddress, subject, "", body, nil)
	if err != nil {
		return err
	}

	s.logger.Infow("payment confirmation sent",
		"message_id", messageID,
		"to", req.ToAddress,
		"invoice_number", req.InvoiceNumber,
	)
	return nil
}

func (s *Service) SendCertificateIssued(ctx context.Context, req *CertificateIssuedRequest) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping certificate email",
			"to", req.ToAddress,
			"certificate_number", req.CertificateNumber,
		)
		return nil
	}

	subject := fmt.Sprintf("Certificate of authenticity %s", req.CertificateNumber)

	body := fmt.Sprintf(
		"Dear %s,\n\nAttached is the certificate of authenticity %s for %s.\n\nThank you for your business.\n",
		req.CustomerName, req.CertificateNumber, req.ItemName,
	)

	var attachments []Attachment
	if len(req.PDF) > 0 {
		attachments = append(attachments, Attachment{
			Filename: req.CertificateNumber + ".pdf",
			Content:  req.PDF,
		})
	}

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), req.ToAddress, subject, "", body, attachments)
	if err != nil {
		return err
	}

	s.logger.Infow("certificate email sent",
		"message_id", messageID,
		"to", req.ToAddress,
		"certificate_number", req.CertificateNumber,
	)
	return nil
}
