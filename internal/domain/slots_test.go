package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

func TestExpandRange(t *testing.T) {
	t.Run("hourly slots", func(t *testing.T) {
		starts, err := ExpandRange("09:00", "12:00", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "10:00", "11:00"}, starts)
	})

	t.Run("last slot must fit", func(t *testing.T) {
		starts, err := ExpandRange("09:00", "10:30", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00"}, starts)
	})

	t.Run("thirty minute increment", func(t *testing.T) {
		starts, err := ExpandRange("09:00", "10:30", 30)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, starts)
	})

	t.Run("range up to midnight", func(t *testing.T) {
		starts, err := ExpandRange("22:00", "23:59", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"22:00"}, starts)
	})

	t.Run("range ending at day boundary", func(t *testing.T) {
		starts, err := ExpandRange("22:00", "24:00", 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"22:00", "23:00"}, starts)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := ExpandRange("09:00", "09:00", 60)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ExpandRange("12:00", "09:00", 60)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("zero increment", func(t *testing.T) {
		_, err := ExpandRange("09:00", "12:00", 0)
		assert.ErrorIs(t, err, ErrInvalidIncrement)
	})
}

func TestInferEndTime(t *testing.T) {
	end, err := InferEndTime("09:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), end)

	// Slot ending exactly at the day boundary is allowed
	end, err = InferEndTime("23:00")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), end)

	// Anything later would wrap past midnight
	_, err = InferEndTime("23:30")
	assert.ErrorIs(t, err, ErrEndTimeOverflow)

	_, err = InferEndTime("23:01")
	assert.ErrorIs(t, err, ErrEndTimeOverflow)
}

func TestBuildSlots(t *testing.T) {
	slots, err := BuildSlots([]types.TimeString{"09:00", "10:00"}, 60)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, TimeSlot{StartTime: "09:00", EndTime: "10:00"}, slots[0])
	assert.Equal(t, TimeSlot{StartTime: "10:00", EndTime: "11:00"}, slots[1])

	_, err = BuildSlots([]types.TimeString{"23:30"}, 60)
	assert.ErrorIs(t, err, ErrEndTimeOverflow)
}

func TestValidateSlots(t *testing.T) {
	t.Run("valid ordered slots", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
			{StartTime: "14:00", EndTime: "15:00"},
		})
		assert.NoError(t, err)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		assert.NoError(t, ValidateSlots(nil))
	})

	t.Run("end of day slot", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{StartTime: "23:00", EndTime: "24:00"}})
		assert.NoError(t, err)
	})

	t.Run("start equals end", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{StartTime: "10:00", EndTime: "10:00"}})
		assert.ErrorIs(t, err, ErrInvalidSlotBounds)
	})

	t.Run("unordered", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{
			{StartTime: "10:00", EndTime: "11:00"},
			{StartTime: "09:00", EndTime: "10:00"},
		})
		assert.ErrorIs(t, err, ErrSlotsNotOrdered)
	})

	t.Run("overlapping", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{
			{StartTime: "09:00", EndTime: "10:30"},
			{StartTime: "10:00", EndTime: "11:00"},
		})
		assert.ErrorIs(t, err, ErrSlotsOverlap)
	})

	t.Run("invalid start format", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{StartTime: "9:00", EndTime: "10:00"}})
		assert.Error(t, err)
	})

	t.Run("24:00 as start is rejected", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{StartTime: "24:00", EndTime: "25:00"}})
		assert.Error(t, err)
	})
}

func TestTimeSlot_Overlaps(t *testing.T) {
	a := TimeSlot{StartTime: "09:00", EndTime: "10:00"}

	assert.True(t, a.Overlaps(TimeSlot{StartTime: "09:30", EndTime: "10:30"}))
	assert.True(t, a.Overlaps(TimeSlot{StartTime: "08:00", EndTime: "09:01"}))
	assert.True(t, a.Overlaps(TimeSlot{StartTime: "09:00", EndTime: "10:00"}))

	// Touching boundaries do not overlap
	assert.False(t, a.Overlaps(TimeSlot{StartTime: "10:00", EndTime: "11:00"}))
	assert.False(t, a.Overlaps(TimeSlot{StartTime: "08:00", EndTime: "09:00"}))
}
