package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
)

// CashbookHandler registra caja diaria, deudores, deudas y pagos.
// Los cuatro recursos son CRUD planos sobre CashbookUseCase.
type CashbookHandler struct {
	uc *usecase.CashbookUseCase
}

func NewCashbookHandler(uc *usecase.CashbookUseCase) *CashbookHandler {
	return &CashbookHandler{uc: uc}
}

// Register monta las rutas bajo el grupo protegido.
func (h *CashbookHandler) Register(r fiber.Router) {
	caja := r.Group("/caja-diaria")
	caja.Get("/", listHandler(h.uc.ListCashRegisters))
	caja.Post("/", createHandler(h.uc.CreateCashRegister))
	caja.Get("/:id", getHandler(h.uc.GetCashRegister))
	caja.Put("/:id", updateHandler(h.uc.UpdateCashRegister))
	caja.Delete("/:id", deleteHandler(h.uc.DeleteCashRegister))

	deudores := r.Group("/deudores")
	deudores.Get("/", listHandler(h.uc.ListDebtors))
	deudores.Post("/", createHandler(h.uc.CreateDebtor))
	deudores.Get("/:id", getHandler(h.uc.GetDebtor))
	deudores.Put("/:id", updateHandler(h.uc.UpdateDebtor))
	deudores.Delete("/:id", deleteHandler(h.uc.DeleteDebtor))

	registros := r.Group("/registros-deudas")
	registros.Get("/", listHandler(h.uc.ListDebtRecords))
	registros.Post("/", createHandler(h.uc.CreateDebtRecord))
	registros.Get("/:id", getHandler(h.uc.GetDebtRecord))
	registros.Put("/:id", updateHandler(h.uc.UpdateDebtRecord))
	registros.Delete("/:id", deleteHandler(h.uc.DeleteDebtRecord))

	pagos := r.Group("/pagos-deudas")
	pagos.Get("/", listHandler(h.uc.ListDebtPayments))
	pagos.Post("/", createHandler(h.uc.CreateDebtPayment))
	pagos.Get("/:id", getHandler(h.uc.GetDebtPayment))
	pagos.Put("/:id", updateHandler(h.uc.UpdateDebtPayment))
	pagos.Delete("/:id", deleteHandler(h.uc.DeleteDebtPayment))
}
