package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrNegativeUnitPrice   = errors.New("el precio unitario no puede ser negativo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia al actualizar el stock")
	ErrStorageUnavailable  = errors.New("almacenamiento no disponible")
)
