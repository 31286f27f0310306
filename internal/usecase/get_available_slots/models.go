package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

const (
	// DefaultSlotMinutes длительность слота, если не задана
	DefaultSlotMinutes = 60

	// MinSlotMinutes и MaxSlotMinutes допустимая длительность слота
	MinSlotMinutes = 15
	MaxSlotMinutes = 240

	// MaxAdvanceDays на сколько дней вперед можно смотреть расписание
	MaxAdvanceDays = 90
)

// Request модель запроса расписания площадки на день
type Request struct {
	VenueKind   domain.VenueKind
	VenueID     int64
	Date        time.Time // Дата (UTC, без времени)
	SlotMinutes int       // 0 - DefaultSlotMinutes
}

// Response расписание площадки на день
type Response struct {
	Date       time.Time
	VenueKind  domain.VenueKind
	VenueID    int64
	HourlyRate float64
	Slots      []Slot
}

// Slot временной слот [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Price     float64
	Available bool
}
