package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/analytics"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/auth"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/billing"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/usecase"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	SpecialPriceUC *usecase.SpecialPriceUseCase
	CreateInvoice  *billing.CreateInvoiceUseCase
	InvoiceUC      *billing.InvoiceUseCase
	PDFUC          *billing.PDFUseCase
	ReceiptUC      *billing.ReceiptUseCase
	CashbookUC     *usecase.CashbookUseCase
	PrintUC        *usecase.PrintUseCase
	ReportsUC      *analytics.ReportsUseCase
	InvoiceCounter InvoiceCounter
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.MessageResponse{Message: "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/api-token-auth", authHandler.Login)
	api.Post("/auth/login", authHandler.Login)

	// Todo lo demás requiere Bearer Token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/usuarios", RequireRole(entity.RoleAdministrador))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC, deps.SpecialPriceUC)
	products := protected.Group("/productos")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	special := protected.Group("/precios-especiales")
	special.Get("/", productHandler.ListSpecialPrices)
	special.Post("/", productHandler.CreateSpecialPrice)
	special.Get("/:id", productHandler.GetSpecialPrice)
	special.Put("/:id", productHandler.UpdateSpecialPrice)
	special.Delete("/:id", productHandler.DeleteSpecialPrice)

	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoiceUC, deps.PDFUC, deps.ReceiptUC, deps.InvoiceCounter)
	invoices := protected.Group("/facturas")
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/imprimir", invoiceHandler.Print)

	protected.Get("/facturas-detalle", invoiceHandler.ListLines)
	protected.Get("/facturas-detalle/:id", invoiceHandler.GetLine)
	protected.Get("/facturas-completas", invoiceHandler.ListFlat)

	discounts := protected.Group("/descuentos")
	discounts.Get("/", invoiceHandler.ListDiscounts)
	discounts.Post("/", invoiceHandler.CreateDiscount)
	discounts.Get("/:id", invoiceHandler.GetDiscount)
	discounts.Delete("/:id", invoiceHandler.DeleteDiscount)

	NewCashbookHandler(deps.CashbookUC).Register(protected)

	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/estadisticas-facturas", reportHandler.InvoiceStats)
	protected.Get("/ventas-anuales", reportHandler.MonthlySales)
	protected.Get("/ventas-diarias", reportHandler.DailySales)
	protected.Get("/reportes/ganancias", reportHandler.ProfitLines)
	protected.Get("/reportes/ganancias-por-producto", reportHandler.ProfitByProduct)

	printHandler := NewPrintHandler(deps.PrintUC)
	protected.Post("/add_print", printHandler.Add)
	protected.Get("/get_jobs", printHandler.Pending)
	protected.Post("/mark_printed/:id", printHandler.MarkPrinted)
}
