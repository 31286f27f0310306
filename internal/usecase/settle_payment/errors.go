package settle_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("settle_payment: payment not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("settle_payment: internal error")
)
