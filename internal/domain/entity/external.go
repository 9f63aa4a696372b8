package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ExternalID identificador emitido por otro servicio. Acepta número o texto JSON y se guarda como texto.
type ExternalID string

// UnmarshalJSON acepta 42, "42" o "p-42". null queda vacío.
func (id *ExternalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ExternalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identificador inválido %s: %w", b, err)
	}
	*id = ExternalID(n.String())
	return nil
}

// layouts de fecha aceptados en eventos entrantes; sin zona se interpreta UTC.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// EventTime marca de tiempo de eventos entrantes: RFC3339 o fecha local sin zona.
type EventTime time.Time

// UnmarshalJSON acepta "2024-05-01T10:00:00Z", "2024-05-01T10:00:00" y "2024-05-01T10:00:00.123".
func (t *EventTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*t = EventTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida %s: %w", b, err)
	}
	if s == "" {
		*t = EventTime{}
		return nil
	}
	for _, layout := range eventTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = EventTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q", s)
}

// Time devuelve el valor como time.Time.
func (t EventTime) Time() time.Time { return time.Time(t) }
