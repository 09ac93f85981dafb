package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrLoad          = errors.New("no se pudo cargar la tabla de ventas")
	ErrMissingColumn = errors.New("columna requerida ausente")
	ErrInvalidDate   = errors.New("fecha inválida")
	ErrInvalidNumber = errors.New("valor numérico inválido")
	ErrEmptyTable    = errors.New("la tabla de ventas está vacía")
	ErrRender        = errors.New("no se pudo generar la visualización")
)
