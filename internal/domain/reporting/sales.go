package reporting

import "github.com/shopspring/decimal"

// PeriodRevenue ingreso agregado de un mes o día (clave 1..12 o 1..31).
type PeriodRevenue struct {
	Period  int
	Revenue decimal.Decimal
}

// DenseMonthly devuelve exactamente 12 valores (índice 0 = enero). Periodos fuera de rango se ignoran.
func DenseMonthly(rows []PeriodRevenue) []decimal.Decimal {
	return dense(rows, 12)
}

// DenseDaily devuelve exactamente 31 valores (índice 0 = día 1), aunque el mes tenga menos días.
func DenseDaily(rows []PeriodRevenue) []decimal.Decimal {
	return dense(rows, 31)
}

func dense(rows []PeriodRevenue, n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	for _, r := range rows {
		if r.Period < 1 || r.Period > n {
			continue
		}
		out[r.Period-1] = out[r.Period-1].Add(r.Revenue)
	}
	return out
}
