package domain

// AvailabilityType identifies which record kind produced a resolution
type AvailabilityType string

const (
	TypeSingle    AvailabilityType = "single"
	TypeRecurring AvailabilityType = "recurring"
	TypeNone      AvailabilityType = "none"
)

// DayResolution is the effective availability of one doctor on one date
type DayResolution struct {
	Available bool
	Type      AvailabilityType
	Source    *AvailabilityRecord // record the slots came from, nil when unavailable
	Slots     []TimeSlot          // unbooked slots only
}

// ResolveDay merges a date-specific override with the weekly template into
// the effective availability for one date. Pure function over the two
// records; either argument may be nil.
//
// Priority: Single > Recurring > none.
//   - An active single record always wins. An empty one is an explicit
//     block: the date is unavailable and the template is never consulted.
//   - Without a single record the recurring template for the weekday applies.
//   - Neither record: unavailable.
//
// Booked slots are filtered out of the result; a record whose slots are
// all booked resolves as available with an empty slot list.
func ResolveDay(single, recurring *AvailabilityRecord) DayResolution {
	if single != nil {
		if single.IsBlock() {
			return DayResolution{Available: false, Type: TypeNone, Slots: []TimeSlot{}}
		}
		return DayResolution{
			Available: true,
			Type:      TypeSingle,
			Source:    single,
			Slots:     single.UnbookedSlots(),
		}
	}

	if recurring != nil && len(recurring.Slots) > 0 {
		return DayResolution{
			Available: true,
			Type:      TypeRecurring,
			Source:    recurring,
			Slots:     recurring.UnbookedSlots(),
		}
	}

	return DayResolution{Available: false, Type: TypeNone, Slots: []TimeSlot{}}
}
