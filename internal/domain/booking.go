package domain

import "time"

// DateFormat формат даты в query параметрах
const DateFormat = "2006-01-02"

// BookingStatus статус бронирования
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// IsValid проверяет статус
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// BlockingStatuses статусы, которые занимают время площадки
var BlockingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
}

// Booking бронирование площадки пользователем на интервал [StartTime, EndTime)
type Booking struct {
	ID         int64
	VenueKind  VenueKind
	VenueID    int64
	UserID     int64
	StartTime  time.Time
	EndTime    time.Time
	TotalPrice float64
	Status     BookingStatus
	Notes      *string

	// Владелец площадки (заполняется при чтении через join)
	VenueOwnerID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerIDs бронирование совместно принадлежит клиенту и владельцу площадки
func (b *Booking) OwnerIDs() []int64 {
	return []int64{b.UserID, b.VenueOwnerID}
}

// IsActive бронирование занимает слот
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// IsCompleted бронирование завершено
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingCompleted
}

// IsPending ожидает оплаты/подтверждения
func (b *Booking) IsPending() bool {
	return b.Status == BookingPending
}

// BookingFilter фильтр списка бронирований
type BookingFilter struct {
	// UserID и VenueOwnerID объединяются через OR (свои бронирования + бронирования моих площадок)
	UserID       *int64
	VenueOwnerID *int64
	VenueKind    *VenueKind
	VenueID      *int64
	Status       *BookingStatus
	Page         Page
}
