package service

import (
	"context"
	"encoding/json"

	stripesdk "github.com/stripe/stripe-go/v82"

	"github.com/michaello/backoffice/internal/api/dto"
	"github.com/michaello/backoffice/internal/domain/invoice"
	"github.com/michaello/backoffice/internal/email"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

// PaymentService settles invoices from payment provider webhooks.
//
// Settlement is at most once per invoice: the conditional paid transition
// in the repository is the guard, and stock decrements plus the
// confirmation email hang off winning that transition. A replayed or
// duplicated event acknowledges cleanly without side effects.
type PaymentService interface {
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error)
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error) {
	event, err := s.PaymentGateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		return nil, err
	}

	if types.WebhookEventType(event.Type) != types.WebhookEventTypeCheckoutSessionCompleted {
		s.Logger.Debugw("ignoring webhook event",
			"event_type", event.Type,
			"event_id", event.ID,
		)
		return &dto.WebhookResponse{Received: true, Handled: false}, nil
	}

	var session stripesdk.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.Logger.Errorw("failed to decode checkout session payload",
			"error", err,
			"event_id", event.ID,
		)
		return &dto.WebhookResponse{Received: true, Handled: false}, nil
	}

	invoiceID := session.Metadata[types.MetadataKeyInvoiceID]
	if invoiceID == "" {
		s.Logger.Warnw("checkout session completed without invoice metadata",
			"event_id", event.ID,
			"session_id", session.ID,
		)
		return &dto.WebhookResponse{Received: true, Handled: false}, nil
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	handled, err := s.settleInvoice(ctx, invoiceID, paymentIntentID)
	if err != nil {
		return nil, err
	}

	return &dto.WebhookResponse{Received: true, Handled: handled}, nil
}

// settleInvoice runs the paid transition, and on winning it decrements
// stock for every line that references a catalog item, all in one
// transaction. The confirmation email goes out after commit; a send
// failure is logged and never unwinds the settlement.
func (s *paymentService) settleInvoice(ctx context.Context, invoiceID string, paymentIntentID string) (bool, error) {
	var settled *invoice.Invoice

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		won, err := s.InvoiceRepo.MarkPaid(ctx, invoiceID, paymentIntentID)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.Logger.Warnw("webhook references unknown invoice",
					"invoice_id", invoiceID,
				)
				return nil
			}
			return err
		}
		if !won {
			s.Logger.Infow("invoice not in a payable state, skipping settlement",
				"invoice_id", invoiceID,
			)
			return nil
		}

		inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
		if err != nil {
			return err
		}

		for _, line := range inv.Lines {
			if line.ItemID == nil {
				continue
			}
			remaining, err := s.ItemRepo.DecrementStock(ctx, *line.ItemID, line.Quantity)
			if err != nil {
				return err
			}
			s.Logger.Debugw("stock decremented",
				"item_id", *line.ItemID,
				"quantity", line.Quantity,
				"remaining", remaining,
			)
		}

		settled = inv
		return nil
	})
	if err != nil {
		return false, err
	}

	if settled == nil {
		return false, nil
	}

	s.Logger.Infow("invoice settled",
		"invoice_id", settled.ID,
		"invoice_number", settled.InvoiceNumber,
		"payment_intent_id", paymentIntentID,
	)

	s.sendConfirmation(ctx, settled)
	return true, nil
}

func (s *paymentService) sendConfirmation(ctx context.Context, inv *invoice.Invoice) {
	if inv.CustomerID == nil {
		return
	}

	cust, err := s.CustomerRepo.Get(ctx, *inv.CustomerID)
	if err != nil || cust.Email == "" {
		return
	}

	if err := s.EmailSender.SendPaymentConfirmation(ctx, &email.PaymentConfirmationRequest{
		ToAddress:     cust.Email,
		CustomerName:  cust.Name,
		InvoiceNumber: inv.InvoiceNumber,
		Currency:      inv.Currency,
		Total:         inv.Total,
	}); err != nil {
		s.Logger.Errorw("failed to send payment confirmation",
			"error", err,
			"invoice_id", inv.ID,
		)
	}
}
