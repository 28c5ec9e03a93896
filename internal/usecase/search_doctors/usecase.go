package search_doctors

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	"github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/doctorservice"
	"github.com/m04kA/HMS-ScheduleService/pkg/ptr"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// UseCase use case поиска врачей по доступности.
//
// Поиск по дате собирает эффективное расписание каждого врача на дату:
// разовые записи имеют приоритет, пустая разовая запись блокирует день
// и подавляет шаблон, шаблоны добираются по дню недели. Поиск только по
// имени находит врачей, у которых есть хоть одна активная запись со
// свободными слотами.
type UseCase struct {
	repo         AvailabilityRepository
	doctorClient DoctorServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo AvailabilityRepository, doctorClient DoctorServiceClient, logger Logger) *UseCase {
	return &UseCase{
		repo:         repo,
		doctorClient: doctorClient,
		logger:       logger,
	}
}

// Execute выполняет поиск по заданным критериям
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchDoctors: validation failed: %v", err)
		return nil, err
	}

	doctors, err := uc.doctorClient.ListDoctors(ctx)
	if err != nil {
		uc.logger.Error("SearchDoctors: failed to list doctors: %v", err)
		return nil, fmt.Errorf("%w: Execute - list doctors: %v", ErrInternal, err)
	}

	profiles := make(map[int64]doctorservice.Doctor, len(doctors))
	for _, doctor := range doctors {
		profiles[doctor.ID] = doctor
	}

	var matches []DoctorMatch
	if req.Date != nil {
		matches, err = uc.searchByDate(ctx, *req.Date)
	} else {
		matches, err = uc.searchAnyAvailability(ctx)
	}
	if err != nil {
		return nil, err
	}

	matches = uc.joinProfiles(matches, profiles, req.Name)

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DoctorID < matches[j].DoctorID
	})

	uc.logger.Info("SearchDoctors: found %d doctors", len(matches))

	return &Response{Doctors: matches}, nil
}

// searchByDate собирает доступность всех врачей на конкретную дату
func (uc *UseCase) searchByDate(ctx context.Context, date types.DateString) ([]DoctorMatch, error) {
	// 1. Разовые записи на дату, включая блокировки без слотов
	singles, err := uc.repo.List(ctx, availability.ListFilter{
		Kind:       ptr.Ptr(domain.KindSingle),
		Date:       &date,
		OnlyActive: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searchByDate - list single records: %v", ErrInternal, err)
	}

	matches := make([]DoctorMatch, 0, len(singles))

	// Врачи с любой разовой записью на дату: их шаблон на этот день
	// не рассматривается
	covered := make(map[int64]struct{}, len(singles))

	for _, record := range singles {
		covered[record.DoctorID] = struct{}{}

		unbooked := record.UnbookedSlots()
		if len(unbooked) == 0 {
			// Блокировка или полностью занятый день
			continue
		}

		matches = append(matches, DoctorMatch{
			DoctorID: record.DoctorID,
			Kind:     domain.KindSingle,
			Date:     record.Date,
			Slots:    unbooked,
		})
	}

	// 2. Шаблоны по дню недели для врачей без разовой записи
	day := domain.DayOfWeekFromDate(date)

	recurring, err := uc.repo.List(ctx, availability.ListFilter{
		Kind:          ptr.Ptr(domain.KindRecurring),
		DayOfWeek:     &day,
		OnlyActive:    true,
		OnlyWithSlots: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searchByDate - list recurring records: %v", ErrInternal, err)
	}

	for _, record := range recurring {
		if _, ok := covered[record.DoctorID]; ok {
			continue
		}

		unbooked := record.UnbookedSlots()
		if len(unbooked) == 0 {
			continue
		}

		matches = append(matches, DoctorMatch{
			DoctorID:  record.DoctorID,
			Kind:      domain.KindRecurring,
			DayOfWeek: record.DayOfWeek,
			Slots:     unbooked,
		})
	}

	return matches, nil
}

// searchAnyAvailability находит для каждого врача первую активную запись
// со свободными слотами. Порядок выборки детерминирован, поэтому
// победитель на врача стабилен между вызовами.
func (uc *UseCase) searchAnyAvailability(ctx context.Context) ([]DoctorMatch, error) {
	records, err := uc.repo.List(ctx, availability.ListFilter{
		OnlyActive:    true,
		OnlyWithSlots: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: searchAnyAvailability - list records: %v", ErrInternal, err)
	}

	matches := make([]DoctorMatch, 0, len(records))
	seen := make(map[int64]struct{}, len(records))

	for _, record := range records {
		if _, ok := seen[record.DoctorID]; ok {
			continue
		}

		unbooked := record.UnbookedSlots()
		if len(unbooked) == 0 {
			continue
		}

		seen[record.DoctorID] = struct{}{}
		matches = append(matches, DoctorMatch{
			DoctorID:  record.DoctorID,
			Kind:      record.Kind,
			Date:      record.Date,
			DayOfWeek: record.DayOfWeek,
			Slots:     unbooked,
		})
	}

	return matches, nil
}

// joinProfiles обогащает совпадения профилями из справочника врачей и
// применяет фильтр по имени
func (uc *UseCase) joinProfiles(matches []DoctorMatch, profiles map[int64]doctorservice.Doctor, name *string) []DoctorMatch {
	var needle string
	if name != nil {
		needle = strings.ToLower(strings.TrimSpace(*name))
	}

	result := make([]DoctorMatch, 0, len(matches))
	for _, match := range matches {
		profile, ok := profiles[match.DoctorID]
		if ok {
			match.FullName = profile.FullName
			match.Specialty = profile.Specialty
		}

		if needle != "" {
			// Фильтр по имени требует профиля в справочнике
			if !ok || !strings.Contains(strings.ToLower(profile.FullName), needle) {
				continue
			}
		}

		result = append(result, match)
	}

	return result
}

// validateRequest проверяет, что задан хотя бы один критерий поиска
func validateRequest(req *Request) error {
	hasDate := req.Date != nil
	hasName := req.Name != nil && strings.TrimSpace(*req.Name) != ""

	if !hasDate && !hasName {
		return fmt.Errorf("%w: at least one of date or name is required", ErrInvalidInput)
	}

	if hasDate {
		if err := req.Date.Validate(); err != nil {
			return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
