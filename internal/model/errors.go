package model

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNegativeStock       = errors.New("stock cannot be negative")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrPaymentDeclined     = errors.New("payment declined")
	ErrNoPendingUpdate     = errors.New("no pending stock update to confirm")
	ErrCommitInProgress    = errors.New("stock update is being committed")
	ErrInvalidStatusFilter = errors.New("unknown order status")
)

// ValidationError carries field-level messages, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
