package entity

import "time"

// PrintJob texto pendiente de imprimir en la impresora de recibos.
type PrintJob struct {
	ID        int64
	Text      string
	Printed   bool
	CreatedAt time.Time
}
