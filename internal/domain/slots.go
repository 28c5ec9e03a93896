package domain

import (
	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// ExpandRange expands a time range into discrete slot start times with a
// fixed increment. The last slot is the one whose end still fits within
// the range. Returns ErrInvalidRange when start >= end.
func ExpandRange(start, end types.TimeString, incrementMinutes int) ([]types.TimeString, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	// "24:00" допустимо как конец диапазона, лексикографическое
	// сравнение для него остается корректным
	if end != types.TimeString("24:00") {
		if err := end.Validate(); err != nil {
			return nil, err
		}
	}
	if !start.IsBefore(end) {
		return nil, ErrInvalidRange
	}
	if incrementMinutes <= 0 {
		return nil, ErrInvalidIncrement
	}

	starts := make([]types.TimeString, 0)
	current := start

	for current.IsBefore(end) {
		slotEnd, err := current.AddMinutes(incrementMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(end) {
			break
		}

		starts = append(starts, current)
		current = slotEnd
	}

	return starts, nil
}

// InferEndTime infers a missing slot end time as start + one hour.
// A start within the last hour of the day is rejected: wrapping past
// midnight would produce a slot on a different calendar date.
func InferEndTime(start types.TimeString) (types.TimeString, error) {
	if err := start.Validate(); err != nil {
		return "", err
	}

	// 23:00 is still fine (the slot ends exactly at the day boundary),
	// anything later would wrap past midnight
	end, err := start.AddMinutes(DefaultSlotDurationMinutes)
	if err != nil {
		return "", ErrEndTimeOverflow
	}
	return end, nil
}

// BuildSlots assembles an ordered free slot list from start times using
// the fixed increment as slot duration
func BuildSlots(starts []types.TimeString, durationMinutes int) ([]TimeSlot, error) {
	slots := make([]TimeSlot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			return nil, ErrEndTimeOverflow
		}
		slots = append(slots, TimeSlot{StartTime: start, EndTime: end})
	}

	if err := ValidateSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ValidateSlots checks slot bounds, ordering and pairwise non-overlap.
// Slots are expected ordered by start time; adjacent slots may touch.
func ValidateSlots(slots []TimeSlot) error {
	for i, slot := range slots {
		if err := slot.StartTime.Validate(); err != nil {
			return err
		}
		// "24:00" допустимо только как конец последнего слота
		if slot.EndTime != types.TimeString("24:00") {
			if err := slot.EndTime.Validate(); err != nil {
				return err
			}
		}
		if !slot.StartTime.IsBefore(slot.EndTime) {
			return ErrInvalidSlotBounds
		}

		if i == 0 {
			continue
		}
		prev := slots[i-1]
		if slot.StartTime.IsBefore(prev.StartTime) {
			return ErrSlotsNotOrdered
		}
		if slot.Overlaps(prev) {
			return ErrSlotsOverlap
		}
	}
	return nil
}
