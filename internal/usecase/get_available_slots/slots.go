package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
)

// generateTimeSlots делит сутки на слоты по slotMinutes.
// Для сегодняшней даты отбрасываются слоты, которые уже начались
func generateTimeSlots(date time.Time, slotMinutes int, now time.Time) []Slot {
	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)
	step := time.Duration(slotMinutes) * time.Minute

	slots := make([]Slot, 0, int(dayEnd.Sub(dayStart)/step))
	for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, Slot{StartTime: start, EndTime: start.Add(step)})
	}

	return slots
}

// markAvailability проставляет цену и занятость каждого слота.
// Слот занят, если его пересекает активное бронирование; соприкосновение границами не считается
//
// Примеры:
// - Слот 11:00-12:00, бронирование 11:30-13:00 → занят
// - Слот 11:00-12:00, бронирование 10:00-11:00 → свободен (граничат)
func markAvailability(slots []Slot, bookings []*domain.Booking, hourlyRate float64) []Slot {
	for i := range slots {
		slots[i].Price = domain.CalculatePrice(slots[i].StartTime, slots[i].EndTime, hourlyRate)
		slots[i].Available = true

		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if domain.Overlaps(booking.StartTime, booking.EndTime, slots[i].StartTime, slots[i].EndTime) {
				slots[i].Available = false
				break
			}
		}
	}

	return slots
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now))
}
