package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SoundInkube/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	VenueKind  string          `json:"venueType"`
	VenueID    int64           `json:"venueId"`
	HourlyRate float64         `json:"hourlyRate"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Price:     slot.Price,
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		VenueKind:  string(resp.VenueKind),
		VenueID:    resp.VenueID,
		HourlyRate: resp.HourlyRate,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(kind domain.VenueKind, venueID int64, dateStr string, slotMinutes int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		VenueKind:   kind,
		VenueID:     venueID,
		Date:        date,
		SlotMinutes: int(slotMinutes),
	}, nil
}
