package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaxity/RLX-BookingService/internal/domain"
	bookingRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/booking"
	"github.com/relaxity/RLX-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступ имеют только участники бронирования: клиент и мастер
func (s *Service) GetByID(ctx context.Context, id int64, requestorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requestor=%d", id, requestorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != requestorID && booking.MasterID != requestorID {
		s.logger.Warn("GetByID: access denied for requestor=%d to booking id=%d", requestorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetMasterBookings получает бронирования мастера с гибкой фильтрацией
// по периоду, статусу и включению неактивных бронирований
//
// Примеры использования:
// - Все активные бронирования: GetMasterBookings(ctx, &GetMasterBookingsRequest{MasterID: 123})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые и завершённые: IncludeInactive = true
func (s *Service) GetMasterBookings(ctx context.Context, req *models.GetMasterBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetMasterBookings: fetching bookings for master=%d", req.MasterID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMasterBookings: invalid filter for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMasterWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMasterBookings: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: GetMasterBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMasterBookings: fetched %d bookings for master=%d", len(bookings), req.MasterID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет своё бронирование (cancelled_by_client),
// мастер - любое своё (cancelled_by_master)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by requestor=%d", bookingID, req.RequestorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Статус отмены определяется стороной, которая её инициировала
	var cancelStatus domain.BookingStatus
	switch req.RequestorID {
	case booking.ClientID:
		cancelStatus = domain.StatusCancelledByClient
	case booking.MasterID:
		cancelStatus = domain.StatusCancelledByMaster
	default:
		s.logger.Warn("Cancel: access denied for requestor=%d to cancel booking id=%d", req.RequestorID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только мастеру бронирования; переход проверяется по машине статусов
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by master=%d",
		bookingID, req.Status, req.MasterID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if booking.MasterID != req.MasterID {
		s.logger.Warn("UpdateStatus: access denied for master=%d to booking id=%d", req.MasterID, bookingID)
		return ErrAccessDenied
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена и перенос идут через свои операции с собственной логикой
	if newStatus == domain.StatusCancelledByClient ||
		newStatus == domain.StatusCancelledByMaster ||
		newStatus == domain.StatusRescheduled {
		s.logger.Warn("UpdateStatus: status=%s is not allowed via direct update for booking id=%d", newStatus, bookingID)
		return fmt.Errorf("%w: use cancel or reschedule endpoints", ErrInvalidTransition)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}
