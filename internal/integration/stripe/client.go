package stripe

import (
	"context"
	"net/url"

	"github.com/michaello/backoffice/internal/config"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/logger"
	"github.com/michaello/backoffice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CheckoutSessionRequest carries what the gateway needs to open a hosted
// checkout page for one invoice.
type CheckoutSessionRequest struct {
	InvoiceID     string
	InvoiceNumber string
	Currency      string
	Total         decimal.Decimal
	CustomerEmail string
}

// CheckoutSession is the subset of the provider session the service layer
// cares about.
type CheckoutSession struct {
	ID         string
	PaymentURL string
}

// Gateway is the payment provider surface used by services. Tests
// substitute an in-memory fake.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error)
}

// Client talks to Stripe with the key and webhook secret from static
// configuration.
type Client struct {
	client *stripe.Client
	config config.StripeConfig
	logger *logger.Logger
}

func NewClient(cfg *config.Configuration, logger *logger.Logger) Gateway {
	return &Client{
		client: stripe.NewClient(cfg.Stripe.SecretKey, nil),
		config: cfg.Stripe,
		logger: logger,
	}
}

// CreateCheckoutSession opens a one-off payment session for the full
// invoice total. The invoice ID travels in the session metadata so the
// webhook can route the settlement back to the right invoice.
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error) {
	metadata := map[string]string{
		types.MetadataKeyInvoiceID: req.InvoiceID,
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String("payment"),
		SuccessURL: stripe.String(redirectURL(c.config.SuccessURL, req.InvoiceID)),
		CancelURL:  stripe.String(redirectURL(c.config.CancelURL, req.InvoiceID)),
		Metadata:   metadata,
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(types.ToMinorUnits(req.Total)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String("Invoice " + req.InvoiceNumber),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			Metadata: metadata,
		},
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	session, err := c.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		c.logger.Errorw("failed to create Stripe checkout session",
			"error", err,
			"invoice_id", req.InvoiceID,
		)
		return nil, ierr.NewError("failed to create payment link").
			WithHint("Unable to create Stripe checkout session").
			WithReportableDetails(map[string]interface{}{
				"invoice_id": req.InvoiceID,
			}).
			Mark(ierr.ErrIntegration)
	}

	return &CheckoutSession{
		ID:         session.ID,
		PaymentURL: session.URL,
	}, nil
}

// ParseWebhookEvent verifies the signature against the configured webhook
// secret and decodes the event. A bad signature or a stale timestamp
// surfaces as an authenticity error, which the handler maps to 400.
func (c *Client) ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error) {
	options := webhook.ConstructEventOptions{
		Tolerance:                c.config.WebhookTolerance,
		IgnoreAPIVersionMismatch: true,
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.config.WebhookSecret, options)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrAuthenticity)
	}
	return &event, nil
}

// redirectURL appends the invoice id to a configured redirect target so
// the storefront can show the right invoice after checkout.
func redirectURL(base string, invoiceID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("invoice_id", invoiceID)
	u.RawQuery = q.Encode()
	return u.String()
}
