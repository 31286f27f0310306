package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget возвращается, когда задано не ровно одно поле цели
	ErrInvalidTarget = errors.New("domain: exactly one target must be set")

	// ErrTargetTypeMismatch возвращается, когда тип платежа не совпадает с переданным полем цели
	ErrTargetTypeMismatch = errors.New("domain: target does not match payment type")
)

// ErrPriceMismatch переданная цена не совпадает с расчетной
var ErrPriceMismatch = errors.New("domain: price mismatch")

// PriceMismatchError несет обе цены, чтобы показать их клиенту
type PriceMismatchError struct {
	Calculated float64
	Provided   float64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("domain: price mismatch: calculated %.2f, provided %.2f", e.Calculated, e.Provided)
}

func (e *PriceMismatchError) Is(target error) bool {
	return target == ErrPriceMismatch
}
