package entity

import "github.com/shopspring/decimal"

// SpecialPrice precio preferencial de un producto para un tipo de cliente (mayorista, contratista...).
type SpecialPrice struct {
	ID           int64
	ProductID    int64
	CustomerTier string
	Price        decimal.Decimal
}
