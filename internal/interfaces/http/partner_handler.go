package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/gestion-comercial/internal/application/catalog"
	"github.com/jcastano/gestion-comercial/internal/application/dto"
)

// PartnerHandler maneja las peticiones HTTP para terceros (protegido).
type PartnerHandler struct {
	uc *catalog.UseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *catalog.UseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create da de alta un tercero (cliente, proveedor o ambos).
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreatePartner(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devuelve un tercero por ID.
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetPartner(id)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tercero no encontrado"})
	}
	return c.JSON(out)
}

// List lista terceros paginados.
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListPartners(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "partners": out})
}
