package types

import "fmt"

// FormatSequenceNumber renders a per-day document number such as
// INV-20260115-0001 or CERT-20260115-0001. The counter is zero padded to
// four digits and keeps growing past 9999 without truncation.
func FormatSequenceNumber(prefix string, day string, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day, seq)
}
