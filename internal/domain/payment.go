package domain

import "time"

// PaymentType за что платим
type PaymentType string

const (
	PaymentStudioBooking    PaymentType = "STUDIO_BOOKING"
	PaymentJamPadBooking    PaymentType = "JAMPAD_BOOKING"
	PaymentEnrollment       PaymentType = "ENROLLMENT"
	PaymentMarketplaceOrder PaymentType = "MARKETPLACE_ORDER"
)

func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentStudioBooking, PaymentJamPadBooking, PaymentEnrollment, PaymentMarketplaceOrder:
		return true
	}
	return false
}

// VenueKind для платежей за бронирование возвращает тип площадки
func (t PaymentType) VenueKind() (VenueKind, bool) {
	switch t {
	case PaymentStudioBooking:
		return VenueStudio, true
	case PaymentJamPadBooking:
		return VenueJamPad, true
	}
	return "", false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodWallet       PaymentMethod = "WALLET"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodBankTransfer, MethodWallet:
		return true
	}
	return false
}

// PaymentStatus статус платежа: PENDING -> COMPLETED | FAILED, COMPLETED -> REFUNDED
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// PaymentTarget ровно одна сущность, за которую платят.
// После удаления сущности у платежа остается пустая цель
type PaymentTarget struct {
	Type PaymentType
	ID   int64
}

// IsSet цель ещё существует
func (t PaymentTarget) IsSet() bool {
	return t.Type.IsValid() && t.ID > 0
}

// PaymentTargetFromIDs собирает цель платежа из взаимоисключающих полей запроса.
// Должно быть задано ровно одно поле, и оно должно соответствовать типу платежа
func PaymentTargetFromIDs(paymentType PaymentType, studioBookingID, jamPadBookingID, enrollmentID, orderID *int64) (PaymentTarget, error) {
	candidates := []struct {
		t  PaymentType
		id *int64
	}{
		{PaymentStudioBooking, studioBookingID},
		{PaymentJamPadBooking, jamPadBookingID},
		{PaymentEnrollment, enrollmentID},
		{PaymentMarketplaceOrder, orderID},
	}

	var target PaymentTarget
	set := 0
	for _, c := range candidates {
		if c.id == nil {
			continue
		}
		set++
		target = PaymentTarget{Type: c.t, ID: *c.id}
	}

	if set != 1 || target.ID <= 0 {
		return PaymentTarget{}, ErrInvalidTarget
	}
	if target.Type != paymentType {
		return PaymentTarget{}, ErrTargetTypeMismatch
	}

	return target, nil
}

// PaymentTargetState состояние цели платежа на момент создания платежа
type PaymentTargetState struct {
	Target PaymentTarget
	// Кто должен платить (клиент бронирования, ученик, покупатель)
	PayerID int64
	// Получатель (владелец площадки, школы, продавец)
	RecipientID int64
	Status      string
	Amount      float64
}

// IsPending цель ещё ожидает оплаты
func (s *PaymentTargetState) IsPending() bool {
	return s.Status == string(BookingPending)
}

// Payment платеж
type Payment struct {
	ID            int64
	UserID        int64
	Type          PaymentType
	Method        PaymentMethod
	Amount        float64
	Status        PaymentStatus
	TransactionID *string
	ProcessedAt   *time.Time
	Target        PaymentTarget

	// Владелец получающей стороны (join по цели)
	RecipientID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerIDs платеж видят плательщик и получатель
func (p *Payment) OwnerIDs() []int64 {
	return []int64{p.UserID, p.RecipientID}
}

// IsCompleted платеж проведен
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}

// PaymentFilter фильтр списка платежей
type PaymentFilter struct {
	UserID *int64
	Status *PaymentStatus
	Page   Page
}
