package get_slots_range

import (
	"context"

	getSlotsRange "github.com/relaxity/RLX-BookingService/internal/usecase/get_slots_range"
)

type GetSlotsRangeUseCase interface {
	Execute(ctx context.Context, req *getSlotsRange.Request) (*getSlotsRange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
