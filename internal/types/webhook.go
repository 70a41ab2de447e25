package types

// WebhookEventType enumerates the Stripe event types the service reacts to.
// All other event types are acknowledged and ignored.
type WebhookEventType string

const (
	WebhookEventTypeCheckoutSessionCompleted WebhookEventType = "checkout.session.completed"
	WebhookEventTypeCheckoutSessionExpired   WebhookEventType = "checkout.session.expired"
)

// MetadataKeyInvoiceID is the checkout session metadata key carrying the
// invoice identity through Stripe and back on the webhook.
const MetadataKeyInvoiceID = "invoice_id"
