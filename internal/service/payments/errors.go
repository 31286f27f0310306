package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrTargetNotFound возвращается, когда оплачиваемая сущность не найдена
	ErrTargetNotFound = errors.New("payment target not found")

	// ErrInvalidTarget возвращается, когда задано не ровно одно поле цели или оно не соответствует типу
	ErrInvalidTarget = errors.New("exactly one target matching payment type is required")

	// ErrTargetNotPending возвращается, когда цель уже не ожидает оплаты
	ErrTargetNotPending = errors.New("payment target is not pending")

	// ErrAccessDenied возвращается, когда у пользователя нет прав
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
