package entity

// SaleMode indica si una línea se vendió por unidad o por quintal.
type SaleMode string

const (
	SaleModeUnit          SaleMode = "Unidad"
	SaleModeHundredweight SaleMode = "Quintal"
)

// ParseSaleMode normaliza el valor recibido; vacío equivale a Unidad.
func ParseSaleMode(s string) (SaleMode, bool) {
	switch SaleMode(s) {
	case "", SaleModeUnit:
		return SaleModeUnit, true
	case SaleModeHundredweight:
		return SaleModeHundredweight, true
	default:
		return "", false
	}
}
