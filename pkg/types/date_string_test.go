package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	d, err := NewDateStringFromString("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-09-15"), d)

	invalid := []string{"", "2026-9-15", "15-09-2026", "2026-02-30", "2026-13-01", "2026/09/15"}
	for _, s := range invalid {
		_, err := NewDateStringFromString(s)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, s)
	}
}

func TestDateString_Weekday(t *testing.T) {
	// 2026-09-15 - вторник
	assert.Equal(t, time.Tuesday, DateString("2026-09-15").Weekday())
	assert.Equal(t, time.Sunday, DateString("2026-09-20").Weekday())
	assert.Equal(t, time.Monday, DateString("2026-09-21").Weekday())
}

func TestDateString_Compare(t *testing.T) {
	assert.True(t, DateString("2026-09-15").IsBefore("2026-09-16"))
	assert.True(t, DateString("2026-09-30").IsBefore("2026-10-01"))
	assert.True(t, DateString("2026-12-31").IsBefore("2027-01-01"))
	assert.False(t, DateString("2026-09-15").IsBefore("2026-09-15"))
	assert.True(t, DateString("2026-09-16").IsAfter("2026-09-15"))
}

func TestDateString_AddDays(t *testing.T) {
	assert.Equal(t, DateString("2026-09-16"), DateString("2026-09-15").AddDays(1))
	assert.Equal(t, DateString("2026-10-01"), DateString("2026-09-30").AddDays(1))
	assert.Equal(t, DateString("2027-01-01"), DateString("2026-12-31").AddDays(1))
	// Високосный год
	assert.Equal(t, DateString("2028-02-29"), DateString("2028-02-28").AddDays(1))
}

func TestDateString_DaysUntil(t *testing.T) {
	assert.Equal(t, 0, DateString("2026-09-15").DaysUntil("2026-09-15"))
	assert.Equal(t, 1, DateString("2026-09-15").DaysUntil("2026-09-16"))
	assert.Equal(t, 30, DateString("2026-09-01").DaysUntil("2026-10-01"))
	assert.Equal(t, -1, DateString("2026-09-16").DaysUntil("2026-09-15"))
}
