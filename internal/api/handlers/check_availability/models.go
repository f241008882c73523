package check_availability

import (
	"time"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	checkAvailability "github.com/relaxity/RLX-BookingService/internal/usecase/check_availability"
	"github.com/relaxity/RLX-BookingService/pkg/types"
)

// AvailabilityResponse HTTP ответ проверки доступности
type AvailabilityResponse struct {
	MasterID  int64  `json:"masterId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(masterID, serviceID int64, dateStr, timeStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		MasterID:  resp.MasterID,
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		Available: resp.Available,
		Reason:    resp.Reason,
	}
}
