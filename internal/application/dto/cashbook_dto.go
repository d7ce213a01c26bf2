package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterRequest cierre de caja; todos los montos ≥ 0. Los totales los calcula el servidor.
type CashRegisterRequest struct {
	BankAccount decimal.Decimal `json:"cuenta_banco" validate:"gte=0"`
	Cash        decimal.Decimal `json:"efectivo" validate:"gte=0"`
	Change      decimal.Decimal `json:"sencillo" validate:"gte=0"`
	Expenses    decimal.Decimal `json:"gastos" validate:"gte=0"`
	ExtraIncome decimal.Decimal `json:"ingreso_extra" validate:"gte=0"`
	Comment     string          `json:"comentario"`
}

type CashRegisterResponse struct {
	ID            int64           `json:"id"`
	CreatedAt     time.Time       `json:"fecha_creacion"`
	BankAccount   decimal.Decimal `json:"cuenta_banco"`
	Cash          decimal.Decimal `json:"efectivo"`
	Change        decimal.Decimal `json:"sencillo"`
	Expenses      decimal.Decimal `json:"gastos"`
	ExtraIncome   decimal.Decimal `json:"ingreso_extra"`
	Comment       string          `json:"comentario"`
	Total         decimal.Decimal `json:"total"`
	TotalSinDeuda decimal.Decimal `json:"total_sin_deuda"`
	TotalConDeuda decimal.Decimal `json:"total_con_deuda"`
}

type DebtorRequest struct {
	Name   string `json:"nombre" validate:"required,max=255"`
	Status string `json:"estado" validate:"omitempty,oneof=Activo Pagado"`
}

type DebtorResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	RegisteredAt time.Time `json:"fecha_registro"`
	Status       string    `json:"estado"`
}

type DebtRecordRequest struct {
	DebtorID    int64           `json:"deudor" validate:"required,gt=0"`
	Description string          `json:"descripcion" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"cantidad" validate:"gte=0"`
	Comment     string          `json:"comentario"`
}

type DebtRecordResponse struct {
	ID          int64           `json:"id"`
	DebtorID    int64           `json:"deudor"`
	DebtorName  string          `json:"deudor_nombre"`
	CreatedAt   time.Time       `json:"fecha_creacion"`
	Description string          `json:"descripcion"`
	Amount      decimal.Decimal `json:"cantidad"`
	Comment     string          `json:"comentario"`
}

type DebtPaymentRequest struct {
	DebtorID       int64           `json:"deudor" validate:"required,gt=0"`
	Amount         decimal.Decimal `json:"cantidad_pagada" validate:"gte=0"`
	CashRegisterID int64           `json:"caja" validate:"required,gt=0"`
	Comment        string          `json:"comentario"`
}

type DebtPaymentResponse struct {
	ID             int64           `json:"id"`
	DebtorID       int64           `json:"deudor"`
	DebtorName     string          `json:"deudor_nombre"`
	PaidAt         time.Time       `json:"fecha_pago"`
	Amount         decimal.Decimal `json:"cantidad_pagada"`
	CashRegisterID int64           `json:"caja"`
	Comment        string          `json:"comentario"`
}

// PrintJobRequest body de POST /api/add_print.
type PrintJobRequest struct {
	Text string `json:"text" validate:"required"`
}

// PrintJobResponse trabajo de impresión. Con ?encoding=cp850 se agrega el texto codificado en base64.
type PrintJobResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Printed   bool      `json:"printed"`
	CreatedAt time.Time `json:"created_at"`
	Payload   string    `json:"payload,omitempty"`
	Encoding  string    `json:"encoding,omitempty"`
}
