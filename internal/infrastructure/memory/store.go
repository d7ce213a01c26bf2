// Package memory implementa todos los repositorios en memoria. Sirve para el modo demo
// (STORAGE_DRIVER=memory) y como doble de prueba de los casos de uso y handlers.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// data es el estado completo; una transacción trabaja sobre una copia y la publica al terminar bien.
type data struct {
	seq           map[string]int64
	products      map[int64]entity.Product
	specialPrices map[int64]entity.SpecialPrice
	invoices      map[int64]entity.Invoice // sin Lines; las líneas viven en lines
	lines         map[int64]entity.InvoiceLine
	discounts     map[int64]entity.Discount
	users         map[int64]entity.User
	cash          map[int64]entity.CashRegister
	debtors       map[int64]entity.Debtor
	debtRecords   map[int64]entity.DebtRecord
	debtPayments  map[int64]entity.DebtPayment
	printJobs     map[int64]entity.PrintJob
}

func newData() *data {
	return &data{
		seq:           map[string]int64{},
		products:      map[int64]entity.Product{},
		specialPrices: map[int64]entity.SpecialPrice{},
		invoices:      map[int64]entity.Invoice{},
		lines:         map[int64]entity.InvoiceLine{},
		discounts:     map[int64]entity.Discount{},
		users:         map[int64]entity.User{},
		cash:          map[int64]entity.CashRegister{},
		debtors:       map[int64]entity.Debtor{},
		debtRecords:   map[int64]entity.DebtRecord{},
		debtPayments:  map[int64]entity.DebtPayment{},
		printJobs:     map[int64]entity.PrintJob{},
	}
}

func (d *data) clone() *data {
	return &data{
		seq:           maps.Clone(d.seq),
		products:      maps.Clone(d.products),
		specialPrices: maps.Clone(d.specialPrices),
		invoices:      maps.Clone(d.invoices),
		lines:         maps.Clone(d.lines),
		discounts:     maps.Clone(d.discounts),
		users:         maps.Clone(d.users),
		cash:          maps.Clone(d.cash),
		debtors:       maps.Clone(d.debtors),
		debtRecords:   maps.Clone(d.debtRecords),
		debtPayments:  maps.Clone(d.debtPayments),
		printJobs:     maps.Clone(d.printJobs),
	}
}

func (d *data) next(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

// Store guarda el estado y el reloj usado para las fechas de creación.
type Store struct {
	mu   sync.RWMutex
	data *data
	now  func() time.Time
}

// NewStore crea un almacén vacío con reloj real.
func NewStore() *Store {
	return &Store{data: newData(), now: time.Now}
}

// SetClock reemplaza el reloj (pruebas).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Counts devuelve cuántas facturas, líneas y descuentos hay guardados.
func (s *Store) Counts() (invoices, lines, discounts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.invoices), len(s.data.lines), len(s.data.discounts)
}

// base resuelve sobre qué estado opera un repo: el publicado (con lock) o el de una transacción abierta.
type base struct {
	s  *Store
	tx *data
}

func (b base) read(fn func(d *data)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	fn(b.s.data)
}

func (b base) write(fn func(d *data) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.data)
}

func (b base) clock() time.Time {
	return b.s.now()
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones: mientras fn corre nadie más lee ni escribe,
// así que nunca se observa una factura a medio armar.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	discountRepo repository.DiscountRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.s.data.clone()
	b := base{s: r.s, tx: work}
	if err := fn(&ProductRepo{b}, &InvoiceRepo{b}, &DiscountRepo{b}); err != nil {
		return err
	}
	r.s.data = work
	return nil
}

// SeedProducts carga productos con su id tal cual (demo y pruebas); la secuencia continúa desde el mayor.
func (s *Store) SeedProducts(products ...entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		s.data.products[p.ID] = p
		s.data.seq["productos"] = max(s.data.seq["productos"], p.ID)
	}
}

// SeedUsers igual que SeedProducts para usuarios.
func (s *Store) SeedUsers(users ...entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.data.users[u.ID] = u
		s.data.seq["usuarios"] = max(s.data.seq["usuarios"], u.ID)
	}
}
