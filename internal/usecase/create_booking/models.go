package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // Кто бронирует
	VenueKind  domain.VenueKind // Студия или джем-пад
	VenueID    int64            // ID площадки
	StartTime  time.Time        // Начало интервала
	EndTime    time.Time        // Конец интервала (не включается)
	TotalPrice float64          // Цена, посчитанная клиентом
	Notes      *string          // Заметки (опционально)
}
