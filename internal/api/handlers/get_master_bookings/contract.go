package get_master_bookings

import (
	"context"

	"github.com/relaxity/RLX-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
