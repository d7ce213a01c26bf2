package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un deudor.
const (
	DebtorActive = "Activo"
	DebtorPaid   = "Pagado"
)

// Debtor persona que compra al crédito.
type Debtor struct {
	ID           int64
	Name         string
	RegisteredAt time.Time
	Status       string
}

// DebtRecord cargo anotado a un deudor.
type DebtRecord struct {
	ID          int64
	DebtorID    int64
	DebtorName  string // solo lectura
	CreatedAt   time.Time
	Description string
	Amount      decimal.Decimal
	Comment     string
}

// DebtPayment abono de un deudor, asentado en un cierre de caja.
type DebtPayment struct {
	ID             int64
	DebtorID       int64
	DebtorName     string // solo lectura
	PaidAt         time.Time
	Amount         decimal.Decimal
	CashRegisterID int64
	Comment        string
}
