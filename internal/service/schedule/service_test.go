package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ScheduleService/internal/domain"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	"github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	"github.com/m04kA/HMS-ScheduleService/internal/service/schedule/models"
	"github.com/m04kA/HMS-ScheduleService/pkg/ptr"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

type fakeRepo struct {
	records map[int64]*domain.AvailabilityRecord
	nextID  int64

	createErr     error
	reactivateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[int64]*domain.AvailabilityRecord), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, record *domain.AvailabilityRecord) (*domain.AvailabilityRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *record
	stored.ID = f.nextID
	f.nextID++
	f.records[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, availabilityRepo.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRepo) GetActiveSingle(_ context.Context, doctorID int64, date types.DateString) (*domain.AvailabilityRecord, error) {
	for _, record := range f.records {
		if record.IsActive && record.Kind == domain.KindSingle &&
			record.DoctorID == doctorID && record.Date != nil && *record.Date == date {
			return record, nil
		}
	}
	return nil, availabilityRepo.ErrRecordNotFound
}

func (f *fakeRepo) GetActiveRecurring(_ context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error) {
	for _, record := range f.records {
		if record.IsActive && record.Kind == domain.KindRecurring &&
			record.DoctorID == doctorID && record.DayOfWeek != nil && *record.DayOfWeek == day {
			return record, nil
		}
	}
	return nil, availabilityRepo.ErrRecordNotFound
}

func (f *fakeRepo) FindInactiveRecurring(_ context.Context, doctorID int64, day domain.DayOfWeek) (*domain.AvailabilityRecord, error) {
	for _, record := range f.records {
		if !record.IsActive && record.Kind == domain.KindRecurring &&
			record.DoctorID == doctorID && record.DayOfWeek != nil && *record.DayOfWeek == day {
			return record, nil
		}
	}
	return nil, availabilityRepo.ErrRecordNotFound
}

func (f *fakeRepo) Deactivate(_ context.Context, id int64, updatedBy int64) error {
	record, ok := f.records[id]
	if !ok || !record.IsActive {
		return availabilityRepo.ErrRecordNotFound
	}
	record.IsActive = false
	record.UpdatedBy = updatedBy
	return nil
}

func (f *fakeRepo) ReactivateWithSlots(_ context.Context, id int64, slots []domain.TimeSlot, updatedBy int64) error {
	if f.reactivateErr != nil {
		return f.reactivateErr
	}
	record, ok := f.records[id]
	if !ok {
		return availabilityRepo.ErrRecordNotFound
	}
	record.IsActive = true
	record.Slots = slots
	record.UpdatedBy = updatedBy
	return nil
}

func (f *fakeRepo) RemoveSlot(_ context.Context, recordID int64, slotIndex int) error {
	record, ok := f.records[recordID]
	if !ok {
		return availabilityRepo.ErrRecordNotFound
	}
	if slotIndex < 0 || slotIndex >= len(record.Slots) {
		return availabilityRepo.ErrSlotNotFound
	}
	if record.Slots[slotIndex].IsBooked {
		return availabilityRepo.ErrSlotBooked
	}
	record.Slots = append(record.Slots[:slotIndex], record.Slots[slotIndex+1:]...)
	return nil
}

func (f *fakeRepo) activeCount(doctorID int64, kind domain.AvailabilityKind) int {
	count := 0
	for _, record := range f.records {
		if record.IsActive && record.Kind == kind && record.DoctorID == doctorID {
			count++
		}
	}
	return count
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAudit struct {
	events []auditservice.Event
}

func (f *fakeAudit) Record(event auditservice.Event) {
	f.events = append(f.events, event)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo, audit *fakeAudit) *Service {
	return NewService(repo, fakeTxManager{}, audit, nopLogger{})
}

func TestService_SetSingle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates record with explicit slots", func(t *testing.T) {
		repo := newFakeRepo()
		audit := &fakeAudit{}
		svc := newTestService(repo, audit)

		result, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots: []models.SlotInput{
				{StartTime: "09:00", EndTime: ptr.Ptr("10:00")},
				{StartTime: "10:00"}, // конец выводится
			},
			ActorID: 7,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.KindSingle, result.Kind)
		require.Len(t, result.Slots, 2)
		assert.Equal(t, types.TimeString("11:00"), result.Slots[1].EndTime)

		require.Len(t, audit.events, 1)
		assert.Equal(t, auditservice.ActionCreateSingle, audit.events[0].Action)
		assert.Equal(t, auditservice.OutcomeSuccess, audit.events[0].Outcome)
	})

	t.Run("expands range input", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		result, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Range:    &models.RangeInput{StartTime: "09:00", EndTime: "12:00", IncrementMinutes: ptr.Ptr(60)},
			ActorID:  7,
		})
		require.NoError(t, err)
		assert.Len(t, result.Slots, 3)
	})

	t.Run("supersedes previous record by deactivation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		first, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "09:00"}},
			ActorID:  7,
		})
		require.NoError(t, err)

		second, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "14:00"}},
			ActorID:  7,
		})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		// Ровно одна активная разовая запись, старая сохранена деактивированной
		assert.Equal(t, 1, repo.activeCount(42, domain.KindSingle))
		assert.False(t, repo.records[first.ID].IsActive)
	})

	t.Run("rejects overlapping slots", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		_, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots: []models.SlotInput{
				{StartTime: "09:00", EndTime: ptr.Ptr("10:30")},
				{StartTime: "10:00", EndTime: ptr.Ptr("11:00")},
			},
			ActorID: 7,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects start in last hour without explicit end", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		_, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "23:30"}},
			ActorID:  7,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("accepts explicit end of day slot", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		result, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "23:00", EndTime: ptr.Ptr("24:00")}},
			ActorID:  7,
		})
		require.NoError(t, err)
		require.Len(t, result.Slots, 1)
		assert.Equal(t, types.TimeString("24:00"), result.Slots[0].EndTime)
	})

	t.Run("expands range ending at midnight", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		result, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Range:    &models.RangeInput{StartTime: "22:00", EndTime: "24:00"},
			ActorID:  7,
		})
		require.NoError(t, err)
		require.Len(t, result.Slots, 2)
		assert.Equal(t, types.TimeString("24:00"), result.Slots[1].EndTime)
	})

	t.Run("lost insert race is a conflict", func(t *testing.T) {
		// Конкурентная мутация (например материализация при бронировании)
		// успела вставить активную запись на тот же ключ
		repo := newFakeRepo()
		repo.createErr = availabilityRepo.ErrDuplicateActiveRecord
		audit := &fakeAudit{}
		svc := newTestService(repo, audit)

		_, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "09:00"}},
			ActorID:  7,
		})
		assert.ErrorIs(t, err, ErrConcurrentModification)
		assert.NotErrorIs(t, err, ErrInternal)

		require.Len(t, audit.events, 1)
		assert.Equal(t, auditservice.OutcomeFailure, audit.events[0].Outcome)
	})

	t.Run("serialization failure is a conflict", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = availabilityRepo.ErrSerializationFailure
		svc := newTestService(repo, &fakeAudit{})

		_, err := svc.SetSingle(ctx, &models.SetSingleRequest{
			DoctorID: 42,
			Date:     "2026-09-15",
			Slots:    []models.SlotInput{{StartTime: "09:00"}},
			ActorID:  7,
		})
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})
}

func TestService_BlockDate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	audit := &fakeAudit{}
	svc := newTestService(repo, audit)

	result, err := svc.BlockDate(ctx, &models.BlockDateRequest{
		DoctorID: 42,
		Date:     "2026-09-15",
		ActorID:  7,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.KindSingle, result.Kind)
	assert.Empty(t, result.Slots)
	assert.True(t, repo.records[result.ID].IsBlock())

	require.Len(t, audit.events, 1)
	assert.Equal(t, auditservice.ActionBlockDate, audit.events[0].Action)
}

func TestService_BlockDate_ConcurrentConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = availabilityRepo.ErrDuplicateActiveRecord
	svc := newTestService(repo, &fakeAudit{})

	_, err := svc.BlockDate(context.Background(), &models.BlockDateRequest{
		DoctorID: 42,
		Date:     "2026-09-15",
		ActorID:  7,
	})
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestService_SetRecurring(t *testing.T) {
	ctx := context.Background()

	t.Run("creates template days", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		result, err := svc.SetRecurring(ctx, &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Range: &models.RangeInput{StartTime: "09:00", EndTime: "12:00"}},
				{DayOfWeek: domain.Tuesday, Slots: []models.SlotInput{{StartTime: "14:00"}}},
			},
			ActorID: 7,
		})
		require.NoError(t, err)

		require.Len(t, result, 2)
		assert.Len(t, result[0].Slots, 3)
		assert.Len(t, result[1].Slots, 1)
	})

	t.Run("repeated call reuses records", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		req := &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "09:00"}}},
			},
			ActorID: 7,
		}

		first, err := svc.SetRecurring(ctx, req)
		require.NoError(t, err)

		second, err := svc.SetRecurring(ctx, req)
		require.NoError(t, err)

		// Идемпотентность: запись переиспользована, дубликаты не накоплены
		assert.Equal(t, first[0].ID, second[0].ID)
		assert.Equal(t, 1, repo.activeCount(42, domain.KindRecurring))
	})

	t.Run("untouched days survive", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		_, err := svc.SetRecurring(ctx, &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "09:00"}}},
				{DayOfWeek: domain.Friday, Slots: []models.SlotInput{{StartTime: "15:00"}}},
			},
			ActorID: 7,
		})
		require.NoError(t, err)

		_, err = svc.SetRecurring(ctx, &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "10:00"}}},
			},
			ActorID: 7,
		})
		require.NoError(t, err)

		friday, err := repo.GetActiveRecurring(ctx, 42, domain.Friday)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("15:00"), friday.Slots[0].StartTime)

		monday, err := repo.GetActiveRecurring(ctx, 42, domain.Monday)
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("10:00"), monday.Slots[0].StartTime)
	})

	t.Run("rejects duplicate days", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		_, err := svc.SetRecurring(ctx, &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "09:00"}}},
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "10:00"}}},
			},
			ActorID: 7,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("lost reactivate race is a conflict", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeAudit{})

		req := &models.SetRecurringRequest{
			DoctorID: 42,
			Days: []models.DaySchedule{
				{DayOfWeek: domain.Monday, Slots: []models.SlotInput{{StartTime: "09:00"}}},
			},
			ActorID: 7,
		}

		_, err := svc.SetRecurring(ctx, req)
		require.NoError(t, err)

		repo.reactivateErr = availabilityRepo.ErrDuplicateActiveRecord
		_, err = svc.SetRecurring(ctx, req)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("rejects invalid day name", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), &fakeAudit{})

		_, err := svc.SetRecurring(ctx, &models.SetRecurringRequest{
			DoctorID: 42,
			Days:     []models.DaySchedule{{DayOfWeek: "someday"}},
			ActorID:  7,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_RemoveSlot(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeRepo, *Service) {
		repo := newFakeRepo()
		date := types.DateString("2026-09-15")
		repo.records[1] = &domain.AvailabilityRecord{
			ID:       1,
			DoctorID: 42,
			Kind:     domain.KindSingle,
			Date:     &date,
			Slots: []domain.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00", IsBooked: true},
			},
			IsActive: true,
		}
		repo.nextID = 2
		return repo, newTestService(repo, &fakeAudit{})
	}

	t.Run("removes free slot", func(t *testing.T) {
		repo, svc := setup()

		err := svc.RemoveSlot(ctx, &models.RemoveSlotRequest{RecordID: 1, SlotIndex: 0, ActorID: 7})
		require.NoError(t, err)
		assert.Len(t, repo.records[1].Slots, 1)
	})

	t.Run("booked slot is a conflict", func(t *testing.T) {
		_, svc := setup()

		err := svc.RemoveSlot(ctx, &models.RemoveSlotRequest{RecordID: 1, SlotIndex: 1, ActorID: 7})
		assert.ErrorIs(t, err, ErrSlotBooked)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, svc := setup()

		err := svc.RemoveSlot(ctx, &models.RemoveSlotRequest{RecordID: 99, SlotIndex: 0, ActorID: 7})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("unknown slot index", func(t *testing.T) {
		_, svc := setup()

		err := svc.RemoveSlot(ctx, &models.RemoveSlotRequest{RecordID: 1, SlotIndex: 5, ActorID: 7})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}
