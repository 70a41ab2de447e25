package types

import (
	"testing"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   InvoiceStatus
		target InvoiceStatus
		want   bool
	}{
		{"draft to sent", InvoiceStatusDraft, InvoiceStatusSent, true},
		{"draft to void", InvoiceStatusDraft, InvoiceStatusVoid, true},
		{"draft to paid", InvoiceStatusDraft, InvoiceStatusPaid, false},
		{"sent to paid", InvoiceStatusSent, InvoiceStatusPaid, true},
		{"sent to void", InvoiceStatusSent, InvoiceStatusVoid, true},
		{"sent to draft", InvoiceStatusSent, InvoiceStatusDraft, false},
		{"paid to void", InvoiceStatusPaid, InvoiceStatusVoid, false},
		{"paid to sent", InvoiceStatusPaid, InvoiceStatusSent, false},
		{"void to sent", InvoiceStatusVoid, InvoiceStatusSent, false},
		{"void to paid", InvoiceStatusVoid, InvoiceStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.target); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.target, got, tt.want)
			}
		})
	}
}

func TestInvoiceStatusValidate(t *testing.T) {
	for _, valid := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid} {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate(%s) returned error: %v", valid, err)
		}
	}
	if err := InvoiceStatus("cancelled").Validate(); err == nil {
		t.Error("Validate(cancelled) should fail")
	}
}

func TestFormatSequenceNumber(t *testing.T) {
	tests := []struct {
		prefix string
		day    string
		seq    int64
		want   string
	}{
		{"INV", "20260115", 1, "INV-20260115-0001"},
		{"INV", "20260115", 42, "INV-20260115-0042"},
		{"CERT", "20261231", 9999, "CERT-20261231-9999"},
		{"INV", "20260116", 12345, "INV-20260116-12345"},
	}

	for _, tt := range tests {
		if got := FormatSequenceNumber(tt.prefix, tt.day, tt.seq); got != tt.want {
			t.Errorf("FormatSequenceNumber(%s, %s, %d) = %s, want %s", tt.prefix, tt.day, tt.seq, got, tt.want)
		}
	}
}
