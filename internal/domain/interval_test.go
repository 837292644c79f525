package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkmsk/DCS-SchedulingService/pkg/types"
)

func TestNewInterval(t *testing.T) {
	interval, err := NewInterval("10:00", 30)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 600, End: 630}, interval)

	_, err = NewInterval("10:00", 0)
	assert.Error(t, err)

	_, err = NewInterval("10:00", -15)
	assert.Error(t, err)

	_, err = NewInterval("bad", 30)
	assert.Error(t, err)

	// Интервал не может пересекать полночь
	_, err = NewInterval("23:30", 60)
	assert.Error(t, err)

	// Но может заканчиваться ровно в конце дня
	interval, err = NewInterval("23:00", 60)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 1380, End: 1440}, interval)
}

func TestInterval_Overlaps(t *testing.T) {
	mustInterval := func(start types.TimeString, duration int) Interval {
		interval, err := NewInterval(start, duration)
		require.NoError(t, err)
		return interval
	}

	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals",
			a:    mustInterval("10:00", 30),
			b:    mustInterval("10:00", 30),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustInterval("10:00", 60),
			b:    mustInterval("10:30", 60),
			want: true,
		},
		{
			name: "containment",
			a:    mustInterval("09:00", 180),
			b:    mustInterval("10:00", 30),
			want: true,
		},
		{
			name: "touching bounds do not overlap",
			a:    mustInterval("09:00", 60), // [09:00, 10:00)
			b:    mustInterval("10:00", 30), // [10:00, 10:30)
			want: false,
		},
		{
			name: "one minute into the previous slot overlaps",
			a:    mustInterval("09:59", 31),
			b:    mustInterval("10:00", 30),
			want: true,
		},
		{
			name: "disjoint",
			a:    mustInterval("08:00", 30),
			b:    mustInterval("12:00", 30),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	interval, err := NewInterval("10:00", 30)
	require.NoError(t, err)

	assert.True(t, interval.Contains(600))
	assert.True(t, interval.Contains(629))
	assert.False(t, interval.Contains(630), "end bound is exclusive")
	assert.False(t, interval.Contains(599))
}

func TestInterval_Duration(t *testing.T) {
	interval, err := NewInterval("10:00", 45)
	require.NoError(t, err)
	assert.Equal(t, 45, interval.Duration())
}
