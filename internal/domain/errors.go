package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son condiciones
// locales recuperables por el caller; el core nunca reintenta.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrLockedByConsumption = errors.New("lotes de la compra ya consumidos por ventas")
	ErrInactivePartner     = errors.New("tercero inactivo")
	ErrInstallmentPaid     = errors.New("la cuota ya está pagada")
	ErrUnauthorized        = errors.New("no autorizado")
)
