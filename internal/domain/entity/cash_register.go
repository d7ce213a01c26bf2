package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister es el cierre de caja diario.
type CashRegister struct {
	ID            int64
	CreatedAt     time.Time
	BankAccount   decimal.Decimal
	Cash          decimal.Decimal
	Change        decimal.Decimal // sencillo
	Expenses      decimal.Decimal
	ExtraIncome   decimal.Decimal
	Comment       string
	Total         decimal.Decimal
	TotalSinDeuda decimal.Decimal
	TotalConDeuda decimal.Decimal
}

// ComputeTotals recalcula los totales; se llama antes de cada guardado.
func (c *CashRegister) ComputeTotals() {
	c.Total = c.BankAccount.Add(c.Cash).Add(c.Change).Add(c.ExtraIncome).Sub(c.Expenses)
	c.TotalSinDeuda = c.Total
	c.TotalConDeuda = c.Total
}
