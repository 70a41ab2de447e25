package types

import (
	ierr "github.com/michaello/backoffice/internal/errors"
	"github.com/samber/lo"
)

// Metal is the base metal of a catalog item.
type Metal string

const (
	MetalGold     Metal = "gold"
	MetalSilver   Metal = "silver"
	MetalPlatinum Metal = "platinum"
	MetalOther    Metal = "other"
)

func (m Metal) String() string {
	return string(m)
}

func (m Metal) Validate() error {
	allowed := []Metal{MetalGold, MetalSilver, MetalPlatinum, MetalOther}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid metal").
			WithHint("Please provide a valid metal").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Purity is the hallmark purity of a catalog item.
type Purity string

const (
	Purity14K  Purity = "14K"
	Purity18K  Purity = "18K"
	Purity22K  Purity = "22K"
	Purity925K Purity = "925K"
	PurityNA   Purity = "N/A"
)

func (p Purity) String() string {
	return string(p)
}

func (p Purity) Validate() error {
	allowed := []Purity{Purity14K, Purity18K, Purity22K, Purity925K, PurityNA}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid purity").
			WithHint("Please provide a valid purity").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
