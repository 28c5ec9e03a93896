package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ScheduleService/pkg/ptr"
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

func singleRecord(slots ...TimeSlot) *AvailabilityRecord {
	date := types.DateString("2026-09-15")
	return &AvailabilityRecord{
		ID:       1,
		DoctorID: 42,
		Kind:     KindSingle,
		Date:     &date,
		Slots:    slots,
		IsActive: true,
	}
}

func recurringRecord(slots ...TimeSlot) *AvailabilityRecord {
	return &AvailabilityRecord{
		ID:        2,
		DoctorID:  42,
		Kind:      KindRecurring,
		DayOfWeek: ptr.Ptr(Tuesday),
		Slots:     slots,
		IsActive:  true,
	}
}

func TestResolveDay_SingleWinsOverRecurring(t *testing.T) {
	single := singleRecord(TimeSlot{StartTime: "14:00", EndTime: "15:00"})
	recurring := recurringRecord(TimeSlot{StartTime: "09:00", EndTime: "10:00"})

	res := ResolveDay(single, recurring)

	assert.True(t, res.Available)
	assert.Equal(t, TypeSingle, res.Type)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, types.TimeString("14:00"), res.Slots[0].StartTime)
	assert.Same(t, single, res.Source)
}

func TestResolveDay_EmptySingleBlocksDate(t *testing.T) {
	// An empty override means "unavailable", the template must not apply
	single := singleRecord()
	recurring := recurringRecord(TimeSlot{StartTime: "09:00", EndTime: "10:00"})

	res := ResolveDay(single, recurring)

	assert.False(t, res.Available)
	assert.Equal(t, TypeNone, res.Type)
	assert.Empty(t, res.Slots)
	assert.Nil(t, res.Source)
}

func TestResolveDay_FallsBackToRecurring(t *testing.T) {
	recurring := recurringRecord(
		TimeSlot{StartTime: "09:00", EndTime: "10:00"},
		TimeSlot{StartTime: "10:00", EndTime: "11:00"},
	)

	res := ResolveDay(nil, recurring)

	assert.True(t, res.Available)
	assert.Equal(t, TypeRecurring, res.Type)
	assert.Len(t, res.Slots, 2)
	assert.Same(t, recurring, res.Source)
}

func TestResolveDay_NoRecords(t *testing.T) {
	res := ResolveDay(nil, nil)

	assert.False(t, res.Available)
	assert.Equal(t, TypeNone, res.Type)
	assert.Empty(t, res.Slots)
}

func TestResolveDay_EmptyRecurringIsUnavailable(t *testing.T) {
	res := ResolveDay(nil, recurringRecord())

	assert.False(t, res.Available)
	assert.Equal(t, TypeNone, res.Type)
}

func TestResolveDay_FiltersBookedSlots(t *testing.T) {
	single := singleRecord(
		TimeSlot{StartTime: "09:00", EndTime: "10:00", IsBooked: true},
		TimeSlot{StartTime: "10:00", EndTime: "11:00"},
	)

	res := ResolveDay(single, nil)

	assert.True(t, res.Available)
	require.Len(t, res.Slots, 1)
	assert.Equal(t, types.TimeString("10:00"), res.Slots[0].StartTime)
}

func TestResolveDay_AllSlotsBookedStillAvailable(t *testing.T) {
	// A fully booked day is not a block: the doctor works, nothing is free
	single := singleRecord(TimeSlot{StartTime: "09:00", EndTime: "10:00", IsBooked: true})

	res := ResolveDay(single, nil)

	assert.True(t, res.Available)
	assert.Equal(t, TypeSingle, res.Type)
	assert.Empty(t, res.Slots)
}

func TestAvailabilityRecord_Validate(t *testing.T) {
	t.Run("valid single", func(t *testing.T) {
		assert.NoError(t, singleRecord(TimeSlot{StartTime: "09:00", EndTime: "10:00"}).Validate())
	})

	t.Run("valid recurring", func(t *testing.T) {
		assert.NoError(t, recurringRecord(TimeSlot{StartTime: "09:00", EndTime: "10:00"}).Validate())
	})

	t.Run("recurring without day", func(t *testing.T) {
		record := recurringRecord()
		record.DayOfWeek = nil
		assert.ErrorIs(t, record.Validate(), ErrKindFieldMismatch)
	})

	t.Run("single with day of week", func(t *testing.T) {
		record := singleRecord()
		record.DayOfWeek = ptr.Ptr(Monday)
		assert.ErrorIs(t, record.Validate(), ErrKindFieldMismatch)
	})

	t.Run("invalid day name", func(t *testing.T) {
		record := recurringRecord()
		record.DayOfWeek = ptr.Ptr(DayOfWeek("someday"))
		assert.ErrorIs(t, record.Validate(), ErrInvalidDayOfWeek)
	})

	t.Run("unknown kind", func(t *testing.T) {
		record := singleRecord()
		record.Kind = AvailabilityKind("weird")
		assert.ErrorIs(t, record.Validate(), ErrInvalidKind)
	})

	t.Run("overlapping slots", func(t *testing.T) {
		record := singleRecord(
			TimeSlot{StartTime: "09:00", EndTime: "10:30"},
			TimeSlot{StartTime: "10:00", EndTime: "11:00"},
		)
		assert.ErrorIs(t, record.Validate(), ErrSlotsOverlap)
	})
}

func TestDayOfWeekFromDate(t *testing.T) {
	assert.Equal(t, Tuesday, DayOfWeekFromDate("2026-09-15"))
	assert.Equal(t, Saturday, DayOfWeekFromDate("2026-09-19"))
	assert.Equal(t, Sunday, DayOfWeekFromDate("2026-09-20"))
}
