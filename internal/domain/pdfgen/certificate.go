package pdfgen

import (
	"time"

	"github.com/shopspring/decimal"
)

// CertificateData is everything the certificate template needs, assembled
// by the service layer from the certificate, item and invoice records.
type CertificateData struct {
	ID                string
	CertificateNumber string
	IssuedAt          time.Time

	ItemName     string
	ItemSKU      string
	Metal        string
	Purity       string
	StoneDetails string
	WeightGrams  decimal.Decimal

	InvoiceNumber string
	CustomerName  string
	Notes         string
}
