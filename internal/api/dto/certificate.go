package dto

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/michaello/backoffice/internal/domain/certificate"
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/michaello/backoffice/internal/types"
)

type CreateCertificateRequest struct {
	ItemID    string  `json:"item_id" validate:"required"`
	InvoiceID *string `json:"invoice_id"`
	Notes     string  `json:"notes"`
	// SendEmail delivers the certificate PDF to the invoice customer after
	// issuance. Ignored when no invoice is linked.
	SendEmail bool `json:"send_email"`
}

type CertificateResponse struct {
	*certificate.Certificate
}

// ListCertificatesResponse represents the response for listing certificates
type ListCertificatesResponse = types.ListResponse[*CertificateResponse]

func (r *CreateCertificateRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid certificate payload").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateCertificateRequest) ToCertificate(ctx context.Context) *certificate.Certificate {
	return &certificate.Certificate{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixCertificate),
		ItemID:    r.ItemID,
		InvoiceID: r.InvoiceID,
		Notes:     r.Notes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
