package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:30", "12:00", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:30", "09:60", "24:00", "25:00", "09-30", "09:3", "ab:cd", "09:30:00"}
	for _, s := range invalid {
		assert.Error(t, TimeString(s).Validate(), s)
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:15")
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	_, err = NewTimeStringFromString("10:5")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("23:00").IsBefore("24:00"))

	assert.True(t, TimeString("10:30").IsAfter("10:29"))
	assert.False(t, TimeString("10:30").IsAfter("10:30"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr error
	}{
		{name: "simple", start: "09:00", minutes: 60, want: "10:00"},
		{name: "cross hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "end of day", start: "23:00", minutes: 60, want: "24:00"},
		{name: "past midnight", start: "23:30", minutes: 60, wantErr: ErrTimeOutOfRange},
		{name: "negative result", start: "00:10", minutes: -20, wantErr: ErrTimeOutOfRange},
		{name: "invalid source", start: "24:00", minutes: 10, wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
