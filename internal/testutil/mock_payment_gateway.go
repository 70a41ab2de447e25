package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/integration/stripe"
	stripesdk "github.com/stripe/stripe-go/v82"
)

var _ stripe.Gateway = (*MockPaymentGateway)(nil)

// MockPaymentGateway records checkout session requests and returns
// programmable webhook events.
type MockPaymentGateway struct {
	mu sync.Mutex

	// CheckoutRequests holds every CreateCheckoutSession call in order.
	CheckoutRequests []*stripe.CheckoutSessionRequest
	// CheckoutErr, when set, is returned by CreateCheckoutSession.
	CheckoutErr error

	// Event is returned by ParseWebhookEvent when the signature matches
	// ValidSignature.
	Event          *stripesdk.Event
	ValidSignature string

	sessionSeq int
}

// NewMockPaymentGateway creates a gateway that accepts any signature until
// ValidSignature is set.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (g *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req *stripe.CheckoutSessionRequest) (*stripe.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CheckoutErr != nil {
		return nil, g.CheckoutErr
	}

	g.CheckoutRequests = append(g.CheckoutRequests, req)
	g.sessionSeq++
	id := fmt.Sprintf("cs_test_%03d", g.sessionSeq)
	return &stripe.CheckoutSession{
		ID:         id,
		PaymentURL: "https://checkout.stripe.test/pay/" + id,
	}, nil
}

func (g *MockPaymentGateway) ParseWebhookEvent(payload []byte, signature string) (*stripesdk.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ValidSignature != "" && signature != g.ValidSignature {
		return nil, ierr.NewError("webhook signature mismatch").
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrAuthenticity)
	}
	if g.Event == nil {
		return nil, ierr.NewError("no event configured").
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrAuthenticity)
	}
	return g.Event, nil
}

// CheckoutCallCount returns how many sessions were created.
func (g *MockPaymentGateway) CheckoutCallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.CheckoutRequests)
}

func (g *MockPaymentGateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.CheckoutRequests = nil
	g.CheckoutErr = nil
	g.Event = nil
	g.ValidSignature = ""
	g.sessionSeq = 0
}
