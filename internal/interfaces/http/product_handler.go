package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/gestion-comercial/internal/application/catalog"
	"github.com/jcastano/gestion-comercial/internal/application/dto"
	"github.com/jcastano/gestion-comercial/internal/application/orders"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	catalogUC *catalog.UseCase
	ordersUC  *orders.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(catalogUC *catalog.UseCase, ordersUC *orders.UseCase) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, ordersUC: ordersUC}
}

// Create da de alta un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.catalogUC.CreateProduct(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.catalogUC.GetProduct(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List lista productos paginados.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.catalogUC.ListProducts(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "products": out})
}

// Stock devuelve la disponibilidad total y por lote (orden FIFO) del
// producto.
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	stock, err := h.ordersUC.GetProductStock(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	lots := make([]dto.StockLotResponse, 0, len(stock.Lots))
	for _, lot := range stock.Lots {
		lots = append(lots, dto.StockLotResponse{
			LotID:             lot.ID,
			QuantityInitial:   lot.QuantityInitial,
			QuantityAvailable: lot.QuantityAvailable,
			UnitCost:          lot.UnitCost,
			CreatedAt:         lot.CreatedAt,
		})
	}
	return c.JSON(dto.ProductStockResponse{
		ProductID:      stock.ProductID,
		TotalAvailable: stock.TotalAvailable,
		Lots:           lots,
	})
}
