package dto

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date fecha sin hora en formato YYYY-MM-DD (fecha_entrega).
type Date struct {
	time.Time
}

// UnmarshalJSON acepta "YYYY-MM-DD", un timestamp RFC3339 o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Ptr devuelve *time.Time o nil si la fecha viene vacía.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// DateFrom convierte *time.Time en *Date.
func DateFrom(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}
