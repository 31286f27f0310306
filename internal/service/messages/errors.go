package messages

import "errors"

var (
	// ErrMessageNotFound возвращается, когда сообщение не найдено
	ErrMessageNotFound = errors.New("message not found")

	// ErrRecipientNotFound возвращается, когда получатель не существует
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrSelfMessage возвращается при отправке сообщения самому себе
	ErrSelfMessage = errors.New("cannot send message to yourself")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на сообщение
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
