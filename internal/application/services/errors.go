package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput agrupa todos los errores de validación de entrada
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyProductName   = fmt.Errorf("%w: product name is required", ErrInvalidInput)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be a positive number", ErrInvalidInput)
	ErrEmptyBasket        = fmt.Errorf("%w: basket has no items", ErrInvalidInput)
	ErrInvalidTargetPrice = fmt.Errorf("%w: target price must be positive", ErrInvalidInput)
	ErrEmptySeries        = fmt.Errorf("%w: price series is empty", ErrInvalidInput)
	ErrUnknownStore       = fmt.Errorf("%w: unknown store", ErrInvalidInput)
)

// ErrHistoryUnavailable se retorna cuando no hay HistoryStore configurado
var ErrHistoryUnavailable = errors.New("price history store not configured")
