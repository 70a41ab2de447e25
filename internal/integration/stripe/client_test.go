package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedirectURL(t *testing.T) {
	assert.Equal(t,
		"http://localhost:8080/payments/success?invoice_id=inv_123",
		redirectURL("http://localhost:8080/payments/success", "inv_123"))

	// Existing query parameters survive.
	assert.Equal(t,
		"http://localhost:8080/done?invoice_id=inv_123&tab=billing",
		redirectURL("http://localhost:8080/done?tab=billing", "inv_123"))
}
