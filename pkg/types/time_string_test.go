package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		name    string
		value   TimeString
		want    int
		wantErr bool
	}{
		{name: "midnight", value: "00:00", want: 0},
		{name: "morning", value: "09:30", want: 570},
		{name: "end of day marker", value: "24:00", want: 1440},
		{name: "last minute", value: "23:59", want: 1439},
		{name: "minutes out of range", value: "10:60", wantErr: true},
		{name: "hours out of range", value: "25:00", wantErr: true},
		{name: "24 with minutes", value: "24:01", wantErr: true},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "with seconds", value: "10:30:00", wantErr: true},
		{name: "garbage", value: "abc", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Minutes()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = NewTimeStringFromMinutes(1441)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_IsBefore_Strict(t *testing.T) {
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"), "equal times are not before each other")
	assert.False(t, TimeString("10:01").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), ts)

	// Конец дня достижим, переход через полночь - нет
	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 15, 9, 5, 33, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:59")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
