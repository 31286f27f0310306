package update_booking

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модель частичного обновления бронирования. nil означает "не менять"
type Request struct {
	Actor      domain.Actor
	BookingID  int64
	StartTime  *time.Time
	EndTime    *time.Time
	TotalPrice *float64
	Status     *domain.BookingStatus
	Notes      *string
}

func (r *Request) changesSchedule() bool {
	return r.StartTime != nil || r.EndTime != nil || r.TotalPrice != nil
}
