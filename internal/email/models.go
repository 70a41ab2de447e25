package email

import "github.com/shopspring/decimal"

// InvoiceIssuedRequest is the payload for the email sent when an invoice
// moves to sent. PaymentURL is the hosted checkout link when one exists.
type InvoiceIssuedRequest struct {
	ToAddress     string
	CustomerName  string
	InvoiceNumber string
	Currency      string
	Total         decimal.Decimal
	PaymentURL    string
}

// PaymentConfirmationRequest is the payload for the email sent after a
// successful settlement.
type PaymentConfirmationRequest struct {
	ToAddress     string
	CustomerName  string
	InvoiceNumber string
	Currency      string
	Total         decimal.Decimal
}

// CertificateIssuedRequest is the payload for the email delivering an
// authenticity certificate PDF.
type CertificateIssuedRequest struct {
	ToAddress         string
	CustomerName      string
	CertificateNumber string
	ItemName          string
	PDF               []byte
}
