package book_slot

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/appointmentservice"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	"github.com/m04kA/HMS-ScheduleService/pkg/ptr"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

type fakeRepo struct {
	single    *domain.AvailabilityRecord
	recurring *domain.AvailabilityRecord

	created     *domain.AvailabilityRecord
	booked      []int // индексы, помеченные занятыми
	freed       []int // индексы, освобожденные компенсацией
	singleErr   error
	createErr   error
	markBookErr error
}

func (f *fakeRepo) Create(_ context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *record
	stored.ID = 555
	f.created = &stored
	return &stored, nil
}

func (f *fakeRepo) GetActiveSingle(_ context.Context, _ int64, _ types.DateString) (*domain.AvailabilityRecord, error) {
	if f.singleErr != nil {
		return nil, f.singleErr
	}
	if f.single == nil {
		return nil, availabilityRepo.ErrRecordNotFound
	}
	return f.single, nil
}

func (f *fakeRepo) GetActiveRecurring(_ context.Context, _ int64, _ domain.DayOfWeek) (*domain.AvailabilityRecord, error) {
	if f.recurring == nil {
		return nil, availabilityRepo.ErrRecordNotFound
	}
	return f.recurring, nil
}

func (f *fakeRepo) MarkSlotBooked(_ context.Context, _ int64, slotIndex int) error {
	if f.markBookErr != nil {
		return f.markBookErr
	}
	f.booked = append(f.booked, slotIndex)
	return nil
}

func (f *fakeRepo) MarkSlotFree(_ context.Context, _ int64, slotIndex int) error {
	f.freed = append(f.freed, slotIndex)
	return nil
}

type fakeAppointmentClient struct {
	err   error
	calls []*appointmentservice.CreateAppointmentRequest
}

func (f *fakeAppointmentClient) CreateAppointment(_ context.Context, req *appointmentservice.CreateAppointmentRequest) (*appointmentservice.Appointment, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &appointmentservice.Appointment{ID: 900, DoctorID: req.DoctorID, PatientID: req.PatientID}, nil
}

type fakeAudit struct {
	events []auditservice.Event
}

func (f *fakeAudit) Record(event auditservice.Event) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeRepo, client *fakeAppointmentClient, audit *fakeAudit) *UseCase {
	return NewUseCase(repo, client, audit, fakeTxManager{}, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		DoctorID:  42,
		PatientID: 7,
		Date:      "2026-09-15", // вторник
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func activeSingle(slots ...domain.TimeSlot) *domain.AvailabilityRecord {
	date := types.DateString("2026-09-15")
	return &domain.AvailabilityRecord{
		ID:       10,
		DoctorID: 42,
		Kind:     domain.KindSingle,
		Date:     &date,
		Slots:    slots,
		IsActive: true,
	}
}

func activeRecurring(slots ...domain.TimeSlot) *domain.AvailabilityRecord {
	return &domain.AvailabilityRecord{
		ID:        20,
		DoctorID:  42,
		Kind:      domain.KindRecurring,
		DayOfWeek: ptr.Ptr(domain.Tuesday),
		Slots:     slots,
		IsActive:  true,
	}
}

func TestUseCase_Execute_BooksSingleSlot(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(
		domain.TimeSlot{StartTime: "09:00", EndTime: "10:00"},
		domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"},
	)}
	client := &fakeAppointmentClient{}
	audit := &fakeAudit{}
	uc := newTestUseCase(repo, client, audit)

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.RecordID)
	assert.Equal(t, int64(900), result.AppointmentID)
	assert.Equal(t, domain.TypeSingle, result.SourceType)
	assert.False(t, result.Materialized)

	// Занят слот с индексом 1, новых записей не создавалось
	assert.Equal(t, []int{1}, repo.booked)
	assert.Nil(t, repo.created)
	require.Len(t, client.calls, 1)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditservice.ActionBookSlot, audit.events[0].Action)
	assert.Equal(t, auditservice.OutcomeSuccess, audit.events[0].Outcome)
}

func TestUseCase_Execute_MaterializesFromRecurring(t *testing.T) {
	recurring := activeRecurring(
		domain.TimeSlot{StartTime: "09:00", EndTime: "10:00"},
		domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"},
	)
	repo := &fakeRepo{recurring: recurring}
	client := &fakeAppointmentClient{}
	uc := newTestUseCase(repo, client, &fakeAudit{})

	result, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.TypeRecurring, result.SourceType)
	assert.True(t, result.Materialized)
	assert.Equal(t, int64(555), result.RecordID)

	// Материализована разовая запись с полной копией слотов шаблона
	require.NotNil(t, repo.created)
	assert.Equal(t, domain.KindSingle, repo.created.Kind)
	require.NotNil(t, repo.created.Date)
	assert.Equal(t, types.DateString("2026-09-15"), *repo.created.Date)
	assert.Len(t, repo.created.Slots, 2)

	// Шаблон не мутирован
	assert.False(t, recurring.Slots[0].IsBooked)
	assert.False(t, recurring.Slots[1].IsBooked)

	// Бронирование прошло по новой записи
	assert.Equal(t, []int{1}, repo.booked)
}

func TestUseCase_Execute_BlockedDate(t *testing.T) {
	// Пустая разовая запись блокирует дату даже при наличии шаблона
	repo := &fakeRepo{
		single:    activeSingle(),
		recurring: activeRecurring(domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"}),
	}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.booked)
}

func TestUseCase_Execute_SlotAlreadyBooked(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(
		domain.TimeSlot{StartTime: "10:00", EndTime: "11:00", IsBooked: true},
	)}
	audit := &fakeAudit{}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, audit)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditservice.OutcomeFailure, audit.events[0].Outcome)
}

func TestUseCase_Execute_UnknownSlotBounds(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(
		domain.TimeSlot{StartTime: "09:00", EndTime: "10:00"},
	)}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_ConcurrentBookingLosesCleanly(t *testing.T) {
	// Гонка: между разрешением и UPDATE слот занял другой пациент
	repo := &fakeRepo{
		single:      activeSingle(domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"}),
		markBookErr: availabilityRepo.ErrSlotAlreadyBooked,
	}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_ConcurrentMaterializeLosesCleanly(t *testing.T) {
	// Гонка материализации: уникальный индекс отклонил вторую разовую запись
	repo := &fakeRepo{
		recurring: activeRecurring(domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"}),
		createErr: availabilityRepo.ErrDuplicateActiveRecord,
	}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.booked)
}

func TestUseCase_Execute_SerializationFailureOnUpdateLosesCleanly(t *testing.T) {
	// Гонка: guarded UPDATE разблокировался после коммита победителя,
	// PostgreSQL прервал транзакцию на уровне запроса кодом 40001
	repo := &fakeRepo{
		single:      activeSingle(domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"}),
		markBookErr: availabilityRepo.ErrSerializationFailure,
	}
	audit := &fakeAudit{}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, audit)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditservice.OutcomeFailure, audit.events[0].Outcome)
}

func TestUseCase_Execute_SerializationFailureOnLockLosesCleanly(t *testing.T) {
	// Код 40001 из SELECT ... FOR UPDATE тоже означает проигрыш гонки
	repo := &fakeRepo{singleErr: availabilityRepo.ErrSerializationFailure}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
}

// commitFailTxManager выполняет тело транзакции, но проваливает коммит
type commitFailTxManager struct {
	commitErr error
}

func (m commitFailTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

func TestUseCase_Execute_SerializationFailureOnCommitLosesCleanly(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"})}
	txMgr := commitFailTxManager{
		commitErr: fmt.Errorf("txmanager: failed to commit transaction: %w", &pq.Error{Code: "40001"}),
	}
	uc := NewUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{}, txMgr, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_LedgerFailureCompensates(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(
		domain.TimeSlot{StartTime: "10:00", EndTime: "11:00"},
	)}
	client := &fakeAppointmentClient{err: errors.New("connection refused")}
	audit := &fakeAudit{}
	uc := newTestUseCase(repo, client, audit)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLedgerFailed)

	// Слот был занят и освобожден компенсацией
	assert.Equal(t, []int{0}, repo.booked)
	assert.Equal(t, []int{0}, repo.freed)

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditservice.OutcomeFailure, audit.events[0].Outcome)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{}, &fakeAppointmentClient{}, &fakeAudit{})
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero doctor", func(r *Request) { r.DoctorID = 0 }},
		{"zero patient", func(r *Request) { r.PatientID = 0 }},
		{"bad date", func(r *Request) { r.Date = "15.09.2026" }},
		{"bad start", func(r *Request) { r.StartTime = "10am" }},
		{"bad end", func(r *Request) { r.EndTime = "25:00" }},
		{"start after end", func(r *Request) { r.StartTime = "11:00"; r.EndTime = "10:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_EndOfDaySlot(t *testing.T) {
	repo := &fakeRepo{single: activeSingle(
		domain.TimeSlot{StartTime: "23:00", EndTime: "24:00"},
	)}
	uc := newTestUseCase(repo, &fakeAppointmentClient{}, &fakeAudit{})

	req := validRequest()
	req.StartTime = "23:00"
	req.EndTime = "24:00"

	result, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, repo.booked)
	assert.Equal(t, types.TimeString("24:00"), result.EndTime)
}
