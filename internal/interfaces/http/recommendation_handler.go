package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/application/recommendation"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
)

// RecommendationService generador de sugerencias de reposición.
type RecommendationService interface {
	Default(ctx context.Context) ([]entity.StockRecommendation, error)
	Critical(ctx context.Context) ([]entity.StockRecommendation, error)
	ForPercent(ctx context.Context, percent decimal.Decimal) ([]entity.StockRecommendation, error)
	RecommendationFor(ctx context.Context, productID string) (*entity.StockRecommendation, error)
	Report(ctx context.Context, threshold decimal.Decimal) (*dto.RecommendationReport, error)
}

// PopularitySource ranking de productos más pedidos.
type PopularitySource interface {
	Top(n int) []dto.PopularProductDTO
}

// RecommendationHandler expone las sugerencias de reposición y sus reportes.
type RecommendationHandler struct {
	recommendations RecommendationService
	popularity      PopularitySource
	popularTop      int
	pdf             ports.ReportRenderer
	xlsx            ports.ReportRenderer
}

// NewRecommendationHandler construye el handler. popularTop <= 0 usa 10.
func NewRecommendationHandler(
	recommendations RecommendationService,
	popularity PopularitySource,
	popularTop int,
	pdf, xlsx ports.ReportRenderer,
) *RecommendationHandler {
	if popularTop <= 0 {
		popularTop = 10
	}
	return &RecommendationHandler{
		recommendations: recommendations,
		popularity:      popularity,
		popularTop:      popularTop,
		pdf:             pdf,
		xlsx:            xlsx,
	}
}

// Default godoc
// @Summary      Sugerencias con umbral por defecto (20% del punto de reorden)
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecommendationListResponse
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) Default(c *fiber.Ctx) error {
	recs, err := h.recommendations.Default(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(recommendation.ToListResponse(inventory.DefaultThreshold, recs))
}

// Alerts godoc
// @Summary      Sugerencias críticas (umbral 10%)
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecommendationListResponse
// @Router       /api/recommendations/alerts [get]
func (h *RecommendationHandler) Alerts(c *fiber.Ctx) error {
	recs, err := h.recommendations.Critical(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(recommendation.ToListResponse(inventory.CriticalThreshold, recs))
}

// ByThreshold godoc
// @Summary      Sugerencias con umbral porcentual propio
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        percent  path  number  true  "umbral en porcentaje (0..100)"
// @Success      200  {object}  dto.RecommendationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recommendations/threshold/{percent} [get]
func (h *RecommendationHandler) ByThreshold(c *fiber.Ctx) error {
	percent, err := decimal.NewFromString(c.Params("percent"))
	if err != nil {
		return badRequest(c, "VALIDATION", "percent debe ser numérico")
	}
	recs, err := h.recommendations.ForPercent(c.UserContext(), percent)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(recommendation.ToListResponse(recommendation.PercentToThreshold(percent), recs))
}

// ForProduct godoc
// @Summary      Sugerencia para un producto
// @Description  204 si el stock no está por debajo del punto de reorden.
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockRecommendationDTO
// @Success      204  "sin sugerencia"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/{productId} [get]
func (h *RecommendationHandler) ForProduct(c *fiber.Ctx) error {
	rec, err := h.recommendations.RecommendationFor(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	if rec == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(recommendation.ToDTO(*rec))
}

// Popular godoc
// @Summary      Productos más pedidos desde el arranque
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "cantidad máxima"
// @Success      200  {array}  dto.PopularProductDTO
// @Router       /api/recommendations/popular [get]
func (h *RecommendationHandler) Popular(c *fiber.Ctx) error {
	n := c.QueryInt("limit", h.popularTop)
	return c.JSON(h.popularity.Top(n))
}

// ReportPDF godoc
// @Summary      Reporte de sugerencias de compra en PDF
// @Tags         recommendations
// @Security     Bearer
// @Produce      application/pdf
// @Param        percent  query  number  false  "umbral en porcentaje (por defecto 20)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recommendations/report.pdf [get]
func (h *RecommendationHandler) ReportPDF(c *fiber.Ctx) error {
	return h.report(c, h.pdf)
}

// ReportXLSX godoc
// @Summary      Reporte de sugerencias de compra en Excel
// @Tags         recommendations
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        percent  query  number  false  "umbral en porcentaje (por defecto 20)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recommendations/report.xlsx [get]
func (h *RecommendationHandler) ReportXLSX(c *fiber.Ctx) error {
	return h.report(c, h.xlsx)
}

func (h *RecommendationHandler) report(c *fiber.Ctx, renderer ports.ReportRenderer) error {
	threshold := inventory.DefaultThreshold
	if raw := c.Query("percent"); raw != "" {
		percent, err := decimal.NewFromString(raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "percent debe ser numérico")
		}
		threshold = recommendation.PercentToThreshold(percent)
	}

	rep, err := h.recommendations.Report(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	body, err := renderer.Render(c.UserContext(), rep)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("sugerencias-%s.%s", rep.GeneratedAt.Format("20060102"), renderer.FileExtension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
