package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// Service сервис управления расписанием врача: разовые переопределения,
// еженедельные шаблоны, блокировки дат и удаление слотов.
// Все мутации выполняются в сериализуемой транзакции и фиксируются в аудите.
type Service struct {
	repo      AvailabilityRepository
	txManager TransactionManager
	audit     AuditRecorder
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	repo AvailabilityRepository,
	txManager TransactionManager,
	audit AuditRecorder,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     audit,
		logger:    logger,
	}
}

// SetSingle устанавливает разовое расписание врача на дату.
// Существующая активная разовая запись деактивируется, новая вставляется -
// пара операций выполняется как одна транзакция (supersede by deactivation).
func (s *Service) SetSingle(ctx context.Context, req *models.SetSingleRequest) (*models.RecordResponse, error) {
	s.logger.Info("SetSingle: doctor=%d date=%s actor=%d", req.DoctorID, req.Date, req.ActorID)

	if err := validateDoctorAndActor(req.DoctorID, req.ActorID); err != nil {
		return nil, err
	}
	if err := req.Date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	slots, err := models.BuildDomainSlots(req.Slots, req.Range)
	if err != nil {
		s.logger.Warn("SetSingle: invalid slots for doctor=%d date=%s: %v", req.DoctorID, req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	record, err := s.createSingle(ctx, req.DoctorID, req.Date, slots, req.ActorID)

	s.recordAudit(auditservice.ActionCreateSingle, req.ActorID, req.DoctorID, record, string(req.Date), err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetSingle: created record id=%d for doctor=%d date=%s with %d slots",
		record.ID, req.DoctorID, req.Date, len(record.Slots))
	return models.FromDomainRecord(record), nil
}

// BlockDate блокирует дату: создается активная разовая запись без слотов.
// Блокировка означает "недоступен", а не "применить еженедельный шаблон".
func (s *Service) BlockDate(ctx context.Context, req *models.BlockDateRequest) (*models.RecordResponse, error) {
	s.logger.Info("BlockDate: doctor=%d date=%s actor=%d", req.DoctorID, req.Date, req.ActorID)

	if err := validateDoctorAndActor(req.DoctorID, req.ActorID); err != nil {
		return nil, err
	}
	if err := req.Date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	record, err := s.createSingle(ctx, req.DoctorID, req.Date, nil, req.ActorID)

	s.recordAudit(auditservice.ActionBlockDate, req.ActorID, req.DoctorID, record, string(req.Date), err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("BlockDate: doctor=%d date=%s blocked, record id=%d", req.DoctorID, req.Date, record.ID)
	return models.FromDomainRecord(record), nil
}

// SetRecurring устанавливает еженедельный шаблон врача.
// Затрагиваются только перечисленные дни; весь запрос - одна транзакция.
// Редактирование идемпотентно: существующая запись для дня переиспользуется
// (реактивация с перезаписью слотов), дубликаты не накапливаются.
func (s *Service) SetRecurring(ctx context.Context, req *models.SetRecurringRequest) ([]*models.RecordResponse, error) {
	s.logger.Info("SetRecurring: doctor=%d days=%d actor=%d", req.DoctorID, len(req.Days), req.ActorID)

	if err := validateDoctorAndActor(req.DoctorID, req.ActorID); err != nil {
		return nil, err
	}
	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: weekly schedule must contain at least one day", ErrInvalidInput)
	}

	// Валидируем весь запрос до открытия транзакции
	type daySlots struct {
		day   domain.DayOfWeek
		slots []domain.TimeSlot
	}

	prepared := make([]daySlots, 0, len(req.Days))
	seen := make(map[domain.DayOfWeek]bool, len(req.Days))

	for _, day := range req.Days {
		if !day.DayOfWeek.IsValid() {
			return nil, fmt.Errorf("%w: invalid day of week %q", ErrInvalidInput, day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("%w: duplicate day %q in weekly schedule", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		slots, err := models.BuildDomainSlots(day.Slots, day.Range)
		if err != nil {
			s.logger.Warn("SetRecurring: invalid slots for doctor=%d day=%s: %v", req.DoctorID, day.DayOfWeek, err)
			return nil, fmt.Errorf("%w: day %s: %v", ErrInvalidInput, day.DayOfWeek, err)
		}

		prepared = append(prepared, daySlots{day: day.DayOfWeek, slots: slots})
	}

	var recordIDs []int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		recordIDs = recordIDs[:0]

		for _, entry := range prepared {
			id, err := s.upsertRecurringDay(txCtx, req.DoctorID, entry.day, entry.slots, req.ActorID)
			if err != nil {
				return err
			}
			recordIDs = append(recordIDs, id)
		}
		return nil
	})

	s.recordAudit(auditservice.ActionCreateRecurring, req.ActorID, req.DoctorID, nil, "", err)
	if err != nil {
		return nil, err
	}

	// Перечитываем записи вне транзакции для ответа
	responses := make([]*models.RecordResponse, 0, len(recordIDs))
	for _, id := range recordIDs {
		record, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: SetRecurring - reload record id=%d: %v", ErrInternal, id, err)
		}
		responses = append(responses, models.FromDomainRecord(record))
	}

	s.logger.Info("SetRecurring: doctor=%d updated %d days", req.DoctorID, len(responses))
	return responses, nil
}

// RemoveSlot удаляет слот из записи по индексу.
// Забронированный слот удалить нельзя - возвращается ErrSlotBooked.
func (s *Service) RemoveSlot(ctx context.Context, req *models.RemoveSlotRequest) error {
	s.logger.Info("RemoveSlot: record=%d index=%d actor=%d", req.RecordID, req.SlotIndex, req.ActorID)

	if req.RecordID <= 0 {
		return fmt.Errorf("%w: recordID must be positive", ErrInvalidInput)
	}
	if req.SlotIndex < 0 {
		return fmt.Errorf("%w: slotIndex must not be negative", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем запись, затем удаляем слот
		if _, err := s.repo.GetByID(txCtx, req.RecordID); err != nil {
			if errors.Is(err, availabilityRepo.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return fmt.Errorf("%w: RemoveSlot - get record: %v", ErrInternal, err)
		}

		if err := s.repo.RemoveSlot(txCtx, req.RecordID, req.SlotIndex); err != nil {
			switch {
			case errors.Is(err, availabilityRepo.ErrSlotBooked):
				return ErrSlotBooked
			case errors.Is(err, availabilityRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			default:
				return conflictOrInternal("RemoveSlot - repository error", err)
			}
		}
		return nil
	})

	event := auditservice.Event{
		Action:    auditservice.ActionRemoveSlot,
		ActorID:   req.ActorID,
		RecordID:  req.RecordID,
		Outcome:   auditservice.OutcomeSuccess,
		Timestamp: time.Now(),
	}
	if err != nil {
		event.Outcome = auditservice.OutcomeFailure
		event.Detail = err.Error()
	}
	s.audit.Record(event)

	if err != nil {
		if errors.Is(err, ErrSlotBooked) {
			s.logger.Warn("RemoveSlot: slot record=%d index=%d is booked", req.RecordID, req.SlotIndex)
		}
		return err
	}

	s.logger.Info("RemoveSlot: removed slot record=%d index=%d", req.RecordID, req.SlotIndex)
	return nil
}

// createSingle выполняет пару "деактивировать старую разовую запись,
// вставить новую" как одну сериализуемую транзакцию
func (s *Service) createSingle(ctx context.Context, doctorID int64, date types.DateString, slots []domain.TimeSlot, actorID int64) (*domain.AvailabilityRecord, error) {
	var created *domain.AvailabilityRecord

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetActiveSingle(txCtx, doctorID, date)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
				s.logger.Error("createSingle: multiple active single records for doctor=%d date=%s", doctorID, date)
				return fmt.Errorf("%w: doctor=%d date=%s", ErrStateInvariant, doctorID, date)
			}
			return conflictOrInternal("createSingle - get existing record", err)
		}

		if existing != nil {
			if err := s.repo.Deactivate(txCtx, existing.ID, actorID); err != nil {
				return conflictOrInternal(fmt.Sprintf("createSingle - deactivate record id=%d", existing.ID), err)
			}
		}

		record := &domain.AvailabilityRecord{
			DoctorID:  doctorID,
			Kind:      domain.KindSingle,
			Date:      &date,
			Slots:     slots,
			IsActive:  true,
			CreatedBy: actorID,
			UpdatedBy: actorID,
		}

		created, err = s.repo.Create(txCtx, record)
		if err != nil {
			return conflictOrInternal("createSingle - insert record", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// upsertRecurringDay обновляет шаблон одного дня недели.
// Существующая запись (активная или деактивированная) переиспользуется,
// иначе вставляется новая.
func (s *Service) upsertRecurringDay(ctx context.Context, doctorID int64, day domain.DayOfWeek, slots []domain.TimeSlot, actorID int64) (int64, error) {
	existing, err := s.repo.GetActiveRecurring(ctx, doctorID, day)
	if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
		if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
			s.logger.Error("upsertRecurringDay: multiple active recurring records for doctor=%d day=%s", doctorID, day)
			return 0, fmt.Errorf("%w: doctor=%d day=%s", ErrStateInvariant, doctorID, day)
		}
		return 0, conflictOrInternal("upsertRecurringDay - get active record", err)
	}

	if existing == nil {
		// Активной записи нет - ищем деактивированную для реактивации
		inactive, err := s.repo.FindInactiveRecurring(ctx, doctorID, day)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			return 0, conflictOrInternal("upsertRecurringDay - find inactive record", err)
		}
		existing = inactive
	}

	if existing != nil {
		if err := s.repo.ReactivateWithSlots(ctx, existing.ID, slots, actorID); err != nil {
			return 0, conflictOrInternal(fmt.Sprintf("upsertRecurringDay - reactivate record id=%d", existing.ID), err)
		}
		return existing.ID, nil
	}

	record := &domain.AvailabilityRecord{
		DoctorID:  doctorID,
		Kind:      domain.KindRecurring,
		DayOfWeek: &day,
		Slots:     slots,
		IsActive:  true,
		CreatedBy: actorID,
		UpdatedBy: actorID,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return 0, conflictOrInternal("upsertRecurringDay - insert record", err)
	}
	return created.ID, nil
}

// recordAudit формирует и отправляет событие аудита мутации
func (s *Service) recordAudit(action string, actorID, doctorID int64, record *domain.AvailabilityRecord, date string, opErr error) {
	event := auditservice.Event{
		Action:    action,
		ActorID:   actorID,
		DoctorID:  doctorID,
		Date:      date,
		Outcome:   auditservice.OutcomeSuccess,
		Timestamp: time.Now(),
	}
	if record != nil {
		event.RecordID = record.ID
	}
	if opErr != nil {
		event.Outcome = auditservice.OutcomeFailure
		event.Detail = opErr.Error()
	}
	s.audit.Record(event)
}

// conflictOrInternal конвертирует ошибку репозитория при мутации.
// Нарушение уникальности активной записи и сбой сериализации означают
// проигрыш гонки конкурентных мутаций, остальное - внутренняя ошибка.
func conflictOrInternal(step string, err error) error {
	if errors.Is(err, availabilityRepo.ErrDuplicateActiveRecord) ||
		errors.Is(err, availabilityRepo.ErrSerializationFailure) {
		return ErrConcurrentModification
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

func validateDoctorAndActor(doctorID, actorID int64) error {
	if doctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}
	if actorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	return nil
}
