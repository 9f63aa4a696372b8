package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Inventory       InventoryService
	Ledger          LedgerService
	Estimator       StockoutEstimator
	Recommendations RecommendationService
	Popularity      PopularitySource
	PopularTop      int
	PDFReport       ports.ReportRenderer
	XLSXReport      ports.ReportRenderer
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(jwt.RoleAdmin, jwt.RoleWarehouse)

	// Inventario
	inv := api.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Inventory, deps.Ledger, deps.Estimator)
	inv.Post("/", canWrite, invHandler.Create)
	inv.Post("/from-product", canWrite, invHandler.CreateFromProduct)
	inv.Get("/", invHandler.List)
	inv.Get("/low-stock", invHandler.ListLowStock)
	inv.Get("/transactions", invHandler.HistoryBetween)
	inv.Get("/:productId", validProductID, invHandler.Get)
	inv.Put("/:productId/restock", canWrite, validProductID, invHandler.Restock)
	inv.Put("/:productId/reduce", canWrite, validProductID, invHandler.Reduce)
	inv.Post("/:productId/transactions", canWrite, validProductID, invHandler.ApplyDelta)
	inv.Get("/:productId/transactions", validProductID, invHandler.History)
	inv.Get("/:productId/stockout", validProductID, invHandler.DaysUntilStockout)
	inv.Put("/:productId/reorder-level", canWrite, validProductID, invHandler.UpdateReorderLevel)
	inv.Put("/:productId/consumption", canWrite, validProductID, invHandler.UpdateConsumption)

	// Sugerencias de reposición
	recs := api.Group("/recommendations")
	recHandler := NewRecommendationHandler(deps.Recommendations, deps.Popularity, deps.PopularTop, deps.PDFReport, deps.XLSXReport)
	recs.Get("/", recHandler.Default)
	recs.Get("/alerts", recHandler.Alerts)
	recs.Get("/threshold/:percent", recHandler.ByThreshold)
	recs.Get("/popular", recHandler.Popular)
	recs.Get("/report.pdf", recHandler.ReportPDF)
	recs.Get("/report.xlsx", recHandler.ReportXLSX)
	recs.Get("/:productId", validProductID, recHandler.ForProduct)
}
