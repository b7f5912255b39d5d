package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jhoicas/canastillas-console/pkg/datefmt"
)

// Timestamp fecha tal como la envía el backend. Se conserva el texto original
// porque una fecha ilegible debe seguir siendo distinguible de una ausente.
type Timestamp string

// UnmarshalJSON acepta texto, null o (por tolerancia) un número.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}
	*t = Timestamp(b)
	return nil
}

// IsZero indica ausencia de fecha.
func (t Timestamp) IsZero() bool { return t == "" }

// Time interpreta la fecha en loc.
func (t Timestamp) Time(loc *time.Location) (time.Time, error) {
	return datefmt.Parse(string(t), loc)
}
