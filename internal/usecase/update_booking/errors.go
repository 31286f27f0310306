package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrVenueNotFound возвращается, когда площадка бронирования не найдена
	ErrVenueNotFound = errors.New("update_booking: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не клиент, не владелец площадки и не администратор
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrStatusChangeDenied возвращается, когда статус пытается изменить клиент
	ErrStatusChangeDenied = errors.New("update_booking: only venue owner or admin can change status")

	// ErrCompletedImmutable возвращается при изменении завершенного бронирования не администратором
	// и при попытке вывести бронирование из COMPLETED
	ErrCompletedImmutable = errors.New("update_booking: completed booking cannot be changed")

	// ErrNotEditable возвращается при изменении времени или цены не в статусе PENDING
	ErrNotEditable = errors.New("update_booking: time and price can be changed only while pending")

	// ErrInvalidTimeRange возвращается, когда начало не раньше конца
	ErrInvalidTimeRange = errors.New("update_booking: start time must be before end time")

	// ErrSlotNotAvailable возвращается, когда новый интервал пересекается с другим бронированием
	ErrSlotNotAvailable = errors.New("update_booking: time slot not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
