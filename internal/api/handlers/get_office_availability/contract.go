package get_office_availability

import (
	"context"

	getOfficeAvailability "github.com/m04kA/OfficeBookingService/internal/usecase/get_office_availability"
)

type GetOfficeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getOfficeAvailability.Request) (*getOfficeAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
