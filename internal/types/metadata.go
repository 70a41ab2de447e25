package types

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/michaello/backoffice/internal/errors"
)

// Metadata is a jsonb column of free-form string pairs.
type Metadata map[string]string

// Value implements driver.Valuer for sqlx persistence.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return ierr.NewError("metadata column is not jsonb").Mark(ierr.ErrDatabase)
	}
	return json.Unmarshal(b, m)
}
