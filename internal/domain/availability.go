package domain

import (
	"time"

	"github.com/m04kA/HMS-ScheduleService/pkg/types"
)

// AvailabilityKind discriminates the two record kinds
type AvailabilityKind string

const (
	// KindRecurring is a weekly template tied to a day of week
	KindRecurring AvailabilityKind = "recurring"
	// KindSingle is a date-specific override that supersedes the template
	KindSingle AvailabilityKind = "single"
)

// DayOfWeek day of week in lowercase ("monday".."sunday")
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// AllDaysOfWeek days in presentation order, Monday first
var AllDaysOfWeek = []DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// DayOfWeekFromDate derives the day of week from a calendar date.
// Pure function of the date value, no time-of-day or timezone involved.
func DayOfWeekFromDate(date types.DateString) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid reports whether the value is one of the seven day names
func (d DayOfWeek) IsValid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// TimeSlot is a bounded time interval with a booked flag
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	IsBooked  bool
}

// Overlaps reports whether two slots share any time.
// Touching boundaries (one ends exactly where the other starts) do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(s.EndTime)
}

// AvailabilityRecord is one versioned availability entry for a doctor.
// Exactly one of DayOfWeek/Date is set, matching Kind. Records are never
// hard-deleted: superseding an entry deactivates the old one.
type AvailabilityRecord struct {
	ID        int64
	DoctorID  int64
	Kind      AvailabilityKind
	DayOfWeek *DayOfWeek        // set iff Kind == KindRecurring
	Date      *types.DateString // set iff Kind == KindSingle
	Slots     []TimeSlot        // ordered by StartTime
	IsActive  bool

	CreatedBy int64
	UpdatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlock reports whether the record is an explicit block: a single-date
// override with zero slots, meaning "unavailable, do not fall back to the template"
func (r *AvailabilityRecord) IsBlock() bool {
	return r.Kind == KindSingle && len(r.Slots) == 0
}

// UnbookedSlots returns the slots still free for booking, in order
func (r *AvailabilityRecord) UnbookedSlots() []TimeSlot {
	free := make([]TimeSlot, 0, len(r.Slots))
	for _, slot := range r.Slots {
		if !slot.IsBooked {
			free = append(free, slot)
		}
	}
	return free
}

// FindSlotIndex returns the index of the slot with the exact bounds, or -1
func (r *AvailabilityRecord) FindSlotIndex(start, end types.TimeString) int {
	for i, slot := range r.Slots {
		if slot.StartTime == start && slot.EndTime == end {
			return i
		}
	}
	return -1
}

// Validate checks the record's structural invariants: kind/field match
// and slot ordering without overlaps
func (r *AvailabilityRecord) Validate() error {
	switch r.Kind {
	case KindRecurring:
		if r.DayOfWeek == nil || r.Date != nil {
			return ErrKindFieldMismatch
		}
		if !r.DayOfWeek.IsValid() {
			return ErrInvalidDayOfWeek
		}
	case KindSingle:
		if r.Date == nil || r.DayOfWeek != nil {
			return ErrKindFieldMismatch
		}
		if err := r.Date.Validate(); err != nil {
			return ErrInvalidDate
		}
	default:
		return ErrInvalidKind
	}

	return ValidateSlots(r.Slots)
}
