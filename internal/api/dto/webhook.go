package dto

// WebhookResponse acknowledges a verified provider event. Handled is false
// when the event type is ignored or the invoice was already settled.
type WebhookResponse struct {
	Received bool `json:"received"`
	Handled  bool `json:"handled"`
}
