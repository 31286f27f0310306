package marketplace

import "errors"

var (
	// ErrListingNotFound возвращается, когда объявление не найдено
	ErrListingNotFound = errors.New("listing not found")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав
	ErrAccessDenied = errors.New("access denied")

	// ErrOwnListing возвращается при попытке купить собственное объявление
	ErrOwnListing = errors.New("cannot order own listing")

	// ErrStatusTransition возвращается при недопустимой смене статуса заказа
	ErrStatusTransition = errors.New("order status transition not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
