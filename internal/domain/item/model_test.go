package item

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name      string
		costPrice string
		price     string
		expected  string
	}{
		{
			name:      "half markup",
			costPrice: "300",
			price:     "450",
			expected:  "50",
		},
		{
			name:      "no cost price recorded",
			costPrice: "0",
			price:     "450",
			expected:  "0",
		},
		{
			name:      "selling below cost",
			costPrice: "200",
			price:     "150",
			expected:  "-25",
		},
		{
			name:      "rounded to two places",
			costPrice: "3",
			price:     "4",
			expected:  "33.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &Item{
				CostPrice: decimal.RequireFromString(tt.costPrice),
				Price:     decimal.RequireFromString(tt.price),
			}
			assert.True(t, i.ProfitMargin().Equal(decimal.RequireFromString(tt.expected)),
				"got %s", i.ProfitMargin())
		})
	}
}
