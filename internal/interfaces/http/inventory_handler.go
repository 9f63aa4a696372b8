package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
)

// InventoryService administración de registros de inventario.
type InventoryService interface {
	Create(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error)
	CreateFromProduct(ctx context.Context, in dto.CreateFromProductRequest) (*dto.InventoryResponse, error)
	Get(ctx context.Context, productID string) (*dto.InventoryResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.InventoryListResponse, error)
	ListLowStock(ctx context.Context) ([]dto.InventoryResponse, error)
	UpdateReorderLevel(ctx context.Context, productID string, in dto.UpdateReorderLevelRequest) (*dto.InventoryResponse, error)
	UpdateConsumption(ctx context.Context, productID string, in dto.UpdateConsumptionRequest) (*dto.InventoryResponse, error)
	History(ctx context.Context, productID, txType string, page dto.PageRequest) ([]dto.StockTransactionResponse, error)
	HistoryBetween(ctx context.Context, from, to time.Time) ([]dto.StockTransactionResponse, error)
}

// LedgerService movimientos de stock.
type LedgerService interface {
	ApplyDelta(ctx context.Context, productID string, in dto.ApplyDeltaRequest) (*dto.StockUpdateResponse, error)
	Restock(ctx context.Context, productID string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error)
	Reduce(ctx context.Context, productID string, in dto.StockQuantityRequest) (*dto.StockUpdateResponse, error)
}

// StockoutEstimator proyección de días hasta agotar stock.
type StockoutEstimator interface {
	DaysUntilStockout(ctx context.Context, productID string) (*dto.StockoutResponse, error)
}

// InventoryHandler maneja las peticiones HTTP de inventario y movimientos (protegido).
type InventoryHandler struct {
	inventory InventoryService
	ledger    LedgerService
	estimator StockoutEstimator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(inventory InventoryService, ledger LedgerService, estimator StockoutEstimator) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, ledger: ledger, estimator: estimator}
}

// Create godoc
// @Summary      Crear registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, reorder_level, max_capacity, location"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.inventory.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateFromProduct godoc
// @Summary      Crear inventario con valores por defecto para un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFromProductRequest  true  "product_id, product_name, initial_stock"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/from-product [post]
func (h *InventoryHandler) CreateFromProduct(c *fiber.Ctx) error {
	var in dto.CreateFromProductRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.inventory.CreateFromProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.inventory.Get(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inventario paginado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page       query  int  false  "página (desde 0)"
// @Param        page_size  query  int  false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, ok, err := pageFromQuery(c)
	if !ok {
		return err
	}
	out, err := h.inventory.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos con stock en o por debajo del punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.inventory.ListLowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Restock godoc
// @Summary      Reponer stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                    true  "ID del producto"
// @Param        body       body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200  {object}  dto.StockUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/restock [put]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if in.PerformedBy == "" {
		in.PerformedBy = GetUsername(c)
	}
	out, err := h.ledger.Restock(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reduce godoc
// @Summary      Descontar stock por venta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                    true  "ID del producto"
// @Param        body       body  dto.StockQuantityRequest  true  "quantity > 0"
// @Success      200  {object}  dto.StockUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/reduce [put]
func (h *InventoryHandler) Reduce(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if in.PerformedBy == "" {
		in.PerformedBy = GetUsername(c)
	}
	out, err := h.ledger.Reduce(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApplyDelta godoc
// @Summary      Registrar un movimiento de cualquier tipo
// @Description  quantity es el delta con signo: negativo para SALE/DAMAGED, positivo para RESTOCK/RETURNED.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                 true  "ID del producto"
// @Param        body       body  dto.ApplyDeltaRequest  true  "type, quantity, notes"
// @Success      201  {object}  dto.StockUpdateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/transactions [post]
func (h *InventoryHandler) ApplyDelta(c *fiber.Ctx) error {
	var in dto.ApplyDeltaRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if in.PerformedBy == "" {
		in.PerformedBy = GetUsername(c)
	}
	out, err := h.ledger.ApplyDelta(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        type       query  string  false  "RESTOCK | SALE | DAMAGED | RETURNED"
// @Param        page       query  int     false  "página (desde 0)"
// @Param        page_size  query  int     false  "tamaño de página"
// @Success      200  {array}   dto.StockTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/transactions [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	page, ok, err := pageFromQuery(c)
	if !ok {
		return err
	}
	out, err := h.inventory.History(c.UserContext(), c.Params("productId"), c.Query("type"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HistoryBetween godoc
// @Summary      Movimientos de todos los productos en un rango de fechas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "inicio RFC3339"
// @Param        to    query  string  true  "fin RFC3339"
// @Success      200  {array}   dto.StockTransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) HistoryBetween(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return badRequest(c, "VALIDATION", "from debe ser RFC3339")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return badRequest(c, "VALIDATION", "to debe ser RFC3339")
	}
	out, err := h.inventory.HistoryBetween(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DaysUntilStockout godoc
// @Summary      Días estimados hasta agotar el stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/stockout [get]
func (h *InventoryHandler) DaysUntilStockout(c *fiber.Ctx) error {
	out, err := h.estimator.DaysUntilStockout(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateReorderLevel godoc
// @Summary      Cambiar el punto de reorden
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                         true  "ID del producto"
// @Param        body       body  dto.UpdateReorderLevelRequest  true  "reorder_level > 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/reorder-level [put]
func (h *InventoryHandler) UpdateReorderLevel(c *fiber.Ctx) error {
	var in dto.UpdateReorderLevelRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.inventory.UpdateReorderLevel(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateConsumption godoc
// @Summary      Fijar el consumo diario manual
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                        true  "ID del producto"
// @Param        body       body  dto.UpdateConsumptionRequest  true  "average_daily_consumption >= 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/consumption [put]
func (h *InventoryHandler) UpdateConsumption(c *fiber.Ctx) error {
	var in dto.UpdateConsumptionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.inventory.UpdateConsumption(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// pageFromQuery lee page/page_size. Con ok=false ya se respondió 400.
func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, false, badRequest(c, "VALIDATION", "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	return page, true, nil
}
