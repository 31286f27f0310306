package schools

import "errors"

var (
	// ErrSchoolNotFound возвращается, когда школа не найдена
	ErrSchoolNotFound = errors.New("school not found")

	// ErrEnrollmentNotFound возвращается, когда запись не найдена
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав
	ErrAccessDenied = errors.New("access denied")

	// ErrEnrollmentFinal возвращается при изменении завершенной записи
	ErrEnrollmentFinal = errors.New("completed enrollment cannot be changed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
