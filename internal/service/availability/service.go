package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Service read-сторона движка доступности: вычисляет эффективное расписание
// врача на дату или диапазон дат. Читает без блокировок и транзакций.
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve вычисляет эффективную доступность врача на дату.
// Приоритет: разовая запись > еженедельный шаблон > недоступен.
// Пустая разовая запись - явная блокировка даты, шаблон не применяется.
func (s *Service) Resolve(ctx context.Context, doctorID int64, date types.DateString) (*models.DayAvailability, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	resolution, err := s.resolveDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resolve: doctor=%d date=%s available=%t type=%s slots=%d",
		doctorID, date, resolution.Available, resolution.Type, len(resolution.Slots))

	return models.FromDayResolution(doctorID, date, *resolution), nil
}

// ResolveRange вычисляет эффективную доступность врача на каждый день
// диапазона дат (границы включительно)
func (s *Service) ResolveRange(ctx context.Context, doctorID int64, startDate, endDate types.DateString) (*models.RangeAvailability, error) {
	if doctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if err := startDate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidInput, err)
	}
	if err := endDate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidInput, err)
	}
	if endDate.IsBefore(startDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	days := startDate.DaysUntil(endDate) + 1
	if days > domain.MaxRangeDays {
		return nil, fmt.Errorf("%w: at most %d days per request", ErrRangeTooLong, domain.MaxRangeDays)
	}

	response := &models.RangeAvailability{
		DoctorID:  doctorID,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      make([]models.DayAvailability, 0, days),
	}

	for date := startDate; !date.IsAfter(endDate); date = date.AddDays(1) {
		resolution, err := s.resolveDay(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}
		response.Days = append(response.Days, *models.FromDayResolution(doctorID, date, *resolution))
	}

	s.logger.Info("ResolveRange: doctor=%d period=%s to %s days=%d",
		doctorID, startDate, endDate, len(response.Days))

	return response, nil
}

// resolveDay загружает обе записи и применяет чистое правило слияния
func (s *Service) resolveDay(ctx context.Context, doctorID int64, date types.DateString) (*domain.DayResolution, error) {
	single, err := s.repo.GetActiveSingle(ctx, doctorID, date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
		if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
			s.logger.Error("resolveDay: multiple active single records for doctor=%d date=%s", doctorID, date)
			return nil, fmt.Errorf("%w: doctor=%d date=%s", ErrStateInvariant, doctorID, date)
		}
		return nil, fmt.Errorf("%w: resolveDay - get single record: %v", ErrInternal, err)
	}

	var recurring *domain.AvailabilityRecord
	if single == nil {
		day := domain.DayOfWeekFromDate(date)

		recurring, err = s.repo.GetActiveRecurring(ctx, doctorID, day)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
				s.logger.Error("resolveDay: multiple active recurring records for doctor=%d day=%s", doctorID, day)
				return nil, fmt.Errorf("%w: doctor=%d day=%s", ErrStateInvariant, doctorID, day)
			}
			return nil, fmt.Errorf("%w: resolveDay - get recurring record: %v", ErrInternal, err)
		}
	}

	resolution := domain.ResolveDay(single, recurring)
	return &resolution, nil
}
