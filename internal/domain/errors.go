package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidID    = errors.New("invalid employee id")
	ErrInvalidInput = errors.New("invalid input")
)
