package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las reglas de negocio se devuelven como valores, nunca como panics:
// los handlers HTTP las traducen a códigos y mensajes para el consumidor.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCapacityExceeded   = errors.New("capacidad máxima excedida")
	ErrInsufficientBudget = errors.New("presupuesto insuficiente")
	ErrBudgetNotActive    = errors.New("el presupuesto no acepta gastos en su estado actual")
	ErrInactiveEntity     = errors.New("entidad inactiva")
	ErrExceedsAllocation  = errors.New("la cantidad excede lo asignado")
	ErrTypeMismatch       = errors.New("tipo de entidad no coincide")
	ErrSyncRunning        = errors.New("sincronización ya en curso")
)
