package bookings

import (
	"context"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/create_booking"
	updateBooking "github.com/m04kA/SMC-SoundInkube/internal/usecase/update_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error)
}

type UpdateBookingUseCase interface {
	Execute(ctx context.Context, req *updateBooking.Request) (*models.BookingResponse, error)
}

type BookingService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error)
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Remove(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
