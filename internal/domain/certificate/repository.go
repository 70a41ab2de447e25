package certificate

import (
	"context"

	"github.com/michaello/backoffice/internal/types"
)

type Repository interface {
	Create(ctx context.Context, c *Certificate) error
	Get(ctx context.Context, id string) (*Certificate, error)
	List(ctx context.Context, filter *types.CertificateFilter) ([]*Certificate, error)
	Count(ctx context.Context, filter *types.CertificateFilter) (int, error)
	Delete(ctx context.Context, id string) error
	// NextCertificateNumber reserves the next per-day sequence value and
	// returns the formatted number, e.g. CERT-20260831-0001.
	NextCertificateNumber(ctx context.Context) (string, error)
}
