package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("nine")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_IsAfter(t *testing.T) {
	start := TimeString("10:00")
	end := TimeString("11:30")

	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsAfter(end))
	assert.False(t, start.IsAfter(start))
	assert.False(t, TimeString("bad").IsAfter(start))

	minutes, err := end.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 690, minutes)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	date := time.Date(2024, time.May, 1, 15, 45, 12, 0, loc)

	got, err := TimeString("09:05").On(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 1, 9, 5, 0, 0, loc), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("17:00:00"))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 6, 40, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("06:40"), ts)

	assert.Error(t, ts.Scan(42))
}
