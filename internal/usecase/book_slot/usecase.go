package book_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/appointmentservice"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
)

// Код PostgreSQL для сбоя сериализации конкурентных транзакций
const pgSerializationFailure = "40001"

// UseCase use case бронирования слота.
//
// Бронирование проходит через эффективное расписание (разовая запись
// приоритетнее шаблона). Слот из шаблона не бронируется на месте:
// сначала из шаблона материализуется разовая запись на конкретную дату
// (copy-on-write, шаблон не мутирует), затем слот помечается занятым
// на новой записи. Обе операции - одна сериализуемая транзакция.
//
// Запись в журнале приёмов создается только после коммита; если журнал
// недоступен, бронирование компенсируется освобождением слота.
type UseCase struct {
	repo              AvailabilityRepository
	appointmentClient AppointmentServiceClient
	audit             AuditRecorder
	txManager         TransactionManager
	logger            Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AvailabilityRepository,
	appointmentClient AppointmentServiceClient,
	audit AuditRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:              repo,
		appointmentClient: appointmentClient,
		audit:             audit,
		txManager:         txManager,
		logger:            logger,
	}
}

// bookingTarget результат транзакции бронирования
type bookingTarget struct {
	recordID     int64
	slotIndex    int
	sourceType   domain.AvailabilityType
	materialized bool
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: doctor=%d patient=%d date=%s slot=%s-%s",
		req.DoctorID, req.PatientID, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Резервируем слот в сериализуемой транзакции
	var target bookingTarget

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reserved, err := uc.reserveSlot(txCtx, req)
		if err != nil {
			return err
		}
		target = *reserved
		return nil
	})

	if err != nil {
		// Конкурентное бронирование того же слота проявляется как сбой
		// сериализации или нарушение уникальности активной записи -
		// для вызывающей стороны это тот же конфликт занятого слота
		if isConcurrencyConflict(err) {
			uc.logger.Warn("BookSlot: lost booking race for doctor=%d date=%s slot=%s-%s",
				req.DoctorID, req.Date, req.StartTime, req.EndTime)
			err = ErrSlotNotAvailable
		}
		uc.recordAudit(req, 0, err)
		return nil, err
	}

	uc.logger.Info("BookSlot: slot reserved, record=%d index=%d materialized=%t",
		target.recordID, target.slotIndex, target.materialized)

	// 3. Слот надёжно занят - создаем запись в журнале приёмов
	appointment, err := uc.appointmentClient.CreateAppointment(ctx, &appointmentservice.CreateAppointmentRequest{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date.String(),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
	})
	if err != nil {
		uc.logger.Error("BookSlot: ledger failed for record=%d index=%d: %v",
			target.recordID, target.slotIndex, err)

		// Компенсация: освобождаем слот, чтобы не осталось бронирования
		// без записи о приёме
		if compErr := uc.repo.MarkSlotFree(ctx, target.recordID, target.slotIndex); compErr != nil {
			uc.logger.Error("BookSlot: COMPENSATION FAILED for record=%d index=%d, manual intervention required: %v",
				target.recordID, target.slotIndex, compErr)
		}

		wrapped := fmt.Errorf("%w: %v", ErrLedgerFailed, err)
		uc.recordAudit(req, target.recordID, wrapped)
		return nil, wrapped
	}

	uc.recordAudit(req, target.recordID, nil)

	uc.logger.Info("BookSlot: booked doctor=%d date=%s slot=%s-%s, appointment=%d",
		req.DoctorID, req.Date, req.StartTime, req.EndTime, appointment.ID)

	return &Response{
		RecordID:      target.recordID,
		AppointmentID: appointment.ID,
		DoctorID:      req.DoctorID,
		PatientID:     req.PatientID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SourceType:    target.sourceType,
		Materialized:  target.materialized,
		BookedAt:      time.Now(),
	}, nil
}

// reserveSlot выполняет резервирование внутри транзакции:
// разрешение доступности, при необходимости материализация разовой записи
// из шаблона, пометка слота занятым
func (uc *UseCase) reserveSlot(txCtx context.Context, req *Request) (*bookingTarget, error) {
	// 1. Активная разовая запись на дату (FOR UPDATE внутри транзакции)
	single, err := uc.repo.GetActiveSingle(txCtx, req.DoctorID, req.Date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
		if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
			uc.logger.Error("BookSlot: multiple active single records for doctor=%d date=%s", req.DoctorID, req.Date)
			return nil, fmt.Errorf("%w: doctor=%d date=%s", ErrStateInvariant, req.DoctorID, req.Date)
		}
		return nil, wrapInternal("reserveSlot - get single record", err)
	}

	// 2. Шаблон нужен только при отсутствии разовой записи
	var recurring *domain.AvailabilityRecord
	if single == nil {
		day := domain.DayOfWeekFromDate(req.Date)

		recurring, err = uc.repo.GetActiveRecurring(txCtx, req.DoctorID, day)
		if err != nil && !errors.Is(err, availabilityRepo.ErrRecordNotFound) {
			if errors.Is(err, availabilityRepo.ErrActiveRecordConflict) {
				uc.logger.Error("BookSlot: multiple active recurring records for doctor=%d day=%s", req.DoctorID, day)
				return nil, fmt.Errorf("%w: doctor=%d day=%s", ErrStateInvariant, req.DoctorID, day)
			}
			return nil, wrapInternal("reserveSlot - get recurring record", err)
		}
	}

	// 3. Эффективное расписание и проверка, что запрошенный слот свободен
	resolution := domain.ResolveDay(single, recurring)
	if !resolution.Available {
		return nil, ErrSlotNotAvailable
	}

	requested := domain.TimeSlot{StartTime: req.StartTime, EndTime: req.EndTime}
	found := false
	for _, slot := range resolution.Slots {
		if slot.StartTime == requested.StartTime && slot.EndTime == requested.EndTime {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSlotNotAvailable
	}

	target := &bookingTarget{sourceType: resolution.Type}

	switch resolution.Type {
	case domain.TypeSingle:
		target.recordID = resolution.Source.ID
		target.slotIndex = resolution.Source.FindSlotIndex(req.StartTime, req.EndTime)

	case domain.TypeRecurring:
		// Материализация: разовая запись на дату с полной копией слотов
		// шаблона, чтобы бронирование не мутировало сам шаблон
		materialized, err := uc.materialize(txCtx, resolution.Source, req)
		if err != nil {
			return nil, err
		}
		target.recordID = materialized.ID
		target.slotIndex = materialized.FindSlotIndex(req.StartTime, req.EndTime)
		target.materialized = true

	default:
		return nil, ErrSlotNotAvailable
	}

	if target.slotIndex < 0 {
		return nil, fmt.Errorf("%w: reserveSlot - resolved slot disappeared from record %d", ErrInternal, target.recordID)
	}

	// 4. Помечаем слот занятым. Повторное бронирование того же слота
	// не затронет ни одной строки и вернет конфликт.
	if err := uc.repo.MarkSlotBooked(txCtx, target.recordID, target.slotIndex); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotAlreadyBooked) {
			return nil, ErrSlotNotAvailable
		}
		return nil, wrapInternal("reserveSlot - mark slot booked", err)
	}

	return target, nil
}

// materialize создает разовую запись на дату из шаблона.
// Слоты копируются целиком в исходном порядке, включая флаги бронирования
// (у шаблона они всегда false).
func (uc *UseCase) materialize(txCtx context.Context, recurring *domain.AvailabilityRecord, req *Request) (*domain.AvailabilityRecord, error) {
	date := req.Date
	slots := make([]domain.TimeSlot, len(recurring.Slots))
	copy(slots, recurring.Slots)

	record := &domain.AvailabilityRecord{
		DoctorID:  req.DoctorID,
		Kind:      domain.KindSingle,
		Date:      &date,
		Slots:     slots,
		IsActive:  true,
		CreatedBy: req.PatientID,
		UpdatedBy: req.PatientID,
	}

	created, err := uc.repo.Create(txCtx, record)
	if err != nil {
		// Параллельная материализация уже вставила разовую запись на эту
		// дату - проигравший получает конфликт занятого слота
		if errors.Is(err, availabilityRepo.ErrDuplicateActiveRecord) {
			return nil, ErrSlotNotAvailable
		}
		return nil, wrapInternal("materialize - insert single record", err)
	}

	uc.logger.Info("BookSlot: materialized single record id=%d from recurring id=%d for date=%s",
		created.ID, recurring.ID, req.Date)

	return created, nil
}

// recordAudit отправляет событие аудита бронирования
func (uc *UseCase) recordAudit(req *Request, recordID int64, opErr error) {
	event := auditservice.Event{
		Action:    auditservice.ActionBookSlot,
		ActorID:   req.PatientID,
		DoctorID:  req.DoctorID,
		RecordID:  recordID,
		Date:      req.Date.String(),
		Outcome:   auditservice.OutcomeSuccess,
		Timestamp: time.Now(),
	}
	if opErr != nil {
		event.Outcome = auditservice.OutcomeFailure
		event.Detail = opErr.Error()
	}
	uc.audit.Record(event)
}

// wrapInternal оборачивает ошибку репозитория как внутреннюю.
// Сбой сериализации пробрасывается как есть: это проигрыш гонки
// конкурентных бронирований, его распознает isConcurrencyConflict.
func wrapInternal(step string, err error) error {
	if errors.Is(err, availabilityRepo.ErrSerializationFailure) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
}

// isConcurrencyConflict распознает проигрыш в гонке конкурентных бронирований.
// Сбой сериализации приходит либо сентинелом репозитория с уровня запроса,
// либо pq.Error с кодом 40001 из коммита транзакции.
func isConcurrencyConflict(err error) bool {
	if errors.Is(err, availabilityRepo.ErrDuplicateActiveRecord) {
		return true
	}
	if errors.Is(err, availabilityRepo.ErrSerializationFailure) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
