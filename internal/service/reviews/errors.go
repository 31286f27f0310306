package reviews

import "errors"

var (
	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("review not found")

	// ErrTargetNotFound возвращается, когда сущность отзыва не найдена
	ErrTargetNotFound = errors.New("review target not found")

	// ErrInvalidTarget возвращается, когда задано не ровно одно поле цели
	ErrInvalidTarget = errors.New("exactly one review target is required")

	// ErrNoCompletedInteraction возвращается, когда у автора нет завершенного бронирования, записи или покупки
	ErrNoCompletedInteraction = errors.New("no completed interaction with review target")

	// ErrDuplicateReview возвращается при повторном отзыве автора о той же сущности
	ErrDuplicateReview = errors.New("review already exists")

	// ErrAccessDenied возвращается, когда пользователь не автор и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректном рейтинге или комментарии
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
