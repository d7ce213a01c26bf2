// Package catalogcsv lee el catálogo de productos exportado por el sistema anterior
// (CSV separado por ';' o ',', codificado en ISO-8859-1).
package catalogcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
)

// Columnas reconocidas en la cabecera. Solo nombre y precio son obligatorias.
const (
	colName        = "nombre"
	colPrice       = "precio"
	colUnitPrice   = "precio_unidad"
	colCwtPrice    = "precio_quintal"
	colUnitCost    = "costo_unidad"
	colCwtCost     = "costo_quintal"
	colUnitsPerCwt = "unidades_por_quintal"
	colCategory    = "categoria"
	colStock       = "stock"
)

// RowError fila que no se pudo interpretar; la importación sigue con las demás.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// ReadProducts decodifica ISO-8859-1 a UTF-8 y devuelve una solicitud por fila válida.
// Las filas inválidas se reportan en rowErrs; err solo indica un archivo ilegible.
func ReadProducts(r io.Reader, comma rune) (products []dto.ProductRequest, rowErrs []RowError, err error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true // pulgadas: Tubo 1/2"
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colPrice} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		p, err := parseRow(rec, idx)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		products = append(products, p)
	}
	return products, rowErrs, nil
}

func parseRow(rec []string, idx map[string]int) (dto.ProductRequest, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	p := dto.ProductRequest{Name: field(colName), Category: field(colCategory)}
	if p.Name == "" {
		return p, errors.New("nombre vacío")
	}
	price, err := parseMoney(field(colPrice))
	if err != nil || price == nil {
		return p, fmt.Errorf("precio inválido %q", field(colPrice))
	}
	p.Price = *price

	for _, opt := range []struct {
		col  string
		dest **decimal.Decimal
	}{
		{colUnitPrice, &p.PricePerUnit},
		{colCwtPrice, &p.PricePerHundredweight},
		{colUnitCost, &p.CostPerUnit},
		{colCwtCost, &p.CostPerHundredweight},
	} {
		v, err := parseMoney(field(opt.col))
		if err != nil {
			return p, fmt.Errorf("%s: %w", opt.col, err)
		}
		*opt.dest = v
	}

	if s := field(colUnitsPerCwt); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%s: %w", colUnitsPerCwt, err)
		}
		p.UnitsPerHundredweight = &n
	}
	if s := field(colStock); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%s: %w", colStock, err)
		}
		p.Stock = n
	}
	return p, nil
}

// parseMoney acepta "Q1,250.50", "1250.50" o "1250,50". Vacío es nil.
func parseMoney(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Q"))
	if s == "" {
		return nil, nil
	}
	switch {
	case strings.Contains(s, ".") && strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, errors.New("monto negativo")
	}
	return &d, nil
}
