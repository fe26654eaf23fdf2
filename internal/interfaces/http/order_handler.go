package http

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/gestion-comercial/internal/application/dto"
	"github.com/jcastano/gestion-comercial/internal/application/orders"
	"github.com/jcastano/gestion-comercial/internal/domain"
)

var validate = validator.New()

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// respondDomainError traduce los errores de dominio a estados HTTP.
// Cualquier error no reconocido es un 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrLockedByConsumption):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOCKED_BY_CONSUMPTION", Message: err.Error()})
	case errors.Is(err, domain.ErrInstallmentPaid):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSTALLMENT_PAID", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInactivePartner):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE_PARTNER", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create crea un pedido de venta o compra y devuelve la vista completa.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	order, err := h.uc.CreateOrder(c.Context(), orders.CreateOrderInput{
		Kind:         in.Kind,
		PartnerID:    in.PartnerID,
		Items:        toItemInputs(in.Items),
		FreightTotal: in.FreightTotal,
		Installments: orders.InstallmentPlan{
			Count:        in.Installments.Count,
			FirstDueDate: in.Installments.FirstDueDate,
			DueDates:     in.Installments.DueDates,
		},
		Notes: in.Notes,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	view, err := h.uc.GetOrder(c.Context(), order.ID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(view))
}

// GetByID devuelve la vista completa del pedido (ítems, cuotas y
// clasificación contable).
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	view, err := h.uc.GetOrder(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(view))
}

// Update edita el pedido. Si el body trae items (o migrate_to_fifo), los
// movimientos de stock se restauran y reconstruyen; si no, solo se toca
// la cabecera y el plan de cuotas.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.EditOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input := orders.EditOrderInput{
		OrderID: id,
		Header: orders.HeaderPatch{
			PartnerID:        in.PartnerID,
			FreightTotal:     in.FreightTotal,
			InstallmentCount: in.InstallmentCount,
			FirstDueDate:     in.FirstDueDate,
			Notes:            in.Notes,
		},
		MigrateToFIFO: in.MigrateToFIFO,
	}
	if in.Items != nil {
		input.Items = toItemInputs(in.Items)
	}
	if in.Installments != nil {
		input.Installments = &orders.InstallmentPlan{
			Count:        in.Installments.Count,
			FirstDueDate: in.Installments.FirstDueDate,
			DueDates:     in.Installments.DueDates,
		}
	}
	if err := h.uc.EditOrder(c.Context(), input); err != nil {
		return respondDomainError(c, err)
	}
	view, err := h.uc.GetOrder(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(view))
}

// Delete elimina el pedido restaurando primero el stock que sus
// movimientos consumieron.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteOrder(c.Context(), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Classification devuelve la clasificación contable derivada del pedido.
func (h *OrderHandler) Classification(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	accounting, err := h.uc.ClassifyOrder(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"order_id": id, "accounting": accounting})
}

// ListInstallments devuelve el plan de cuotas del pedido.
func (h *OrderHandler) ListInstallments(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	list, err := h.uc.ListInstallments(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.InstallmentResponse, 0, len(list))
	for _, inst := range list {
		out = append(out, dto.InstallmentResponse{
			Sequence: inst.Sequence,
			DueDate:  inst.DueDate,
			Amount:   inst.Amount,
			PaidAt:   inst.PaidAt,
		})
	}
	return c.JSON(fiber.Map{"order_id": id, "installments": out})
}

// PayInstallment marca una cuota como pagada. A partir del primer pago el
// plan queda inmutable frente a reprocesos.
func (h *OrderHandler) PayInstallment(c *fiber.Ctx) error {
	id := c.Params("id")
	seq, err := c.ParamsInt("seq")
	if id == "" || err != nil || seq <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id y seq son requeridos"})
	}
	var in dto.PayInstallmentRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	if err := h.uc.PayInstallment(c.Context(), id, seq, paidAt); err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cuota pagada", "order_id": id, "sequence": seq})
}

func toItemInputs(items []dto.OrderItemRequest) []orders.ItemInput {
	out := make([]orders.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, orders.ItemInput{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			UnitDiscount: it.UnitDiscount,
		})
	}
	return out
}

func toOrderResponse(view *orders.OrderView) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, dto.OrderItemResponse{
			ID:                  it.ID,
			ProductID:           it.ProductID,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			UnitDiscount:        it.UnitDiscount,
			LineTotal:           it.LineTotal,
			UnitCostRecognized:  it.UnitCostRecognized,
			TotalCostRecognized: it.TotalCostRecognized,
		})
	}
	installments := make([]dto.InstallmentResponse, 0, len(view.Installments))
	for _, inst := range view.Installments {
		installments = append(installments, dto.InstallmentResponse{
			Sequence: inst.Sequence,
			DueDate:  inst.DueDate,
			Amount:   inst.Amount,
			PaidAt:   inst.PaidAt,
		})
	}
	o := view.Order
	return dto.OrderResponse{
		ID:               o.ID,
		Kind:             o.Kind,
		PartnerID:        o.PartnerID,
		FreightTotal:     o.FreightTotal,
		InstallmentCount: o.InstallmentCount,
		FirstDueDate:     o.FirstDueDate,
		TotalGross:       o.TotalGross,
		TotalDiscount:    o.TotalDiscount,
		TotalNet:         o.TotalNet,
		Notes:            o.Notes,
		Accounting:       view.Accounting,
		Items:            items,
		Installments:     installments,
	}
}
