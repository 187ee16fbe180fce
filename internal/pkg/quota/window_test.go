package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	ref := time.Date(2024, 3, 4, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), StartOfDay(ref))

	// Non-UTC input is normalized to UTC first.
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 3, 5, 1, 30, 0, 0, loc) // 2024-03-04T20:00:00Z
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), StartOfDay(local))
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			ref:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps to previous monday",
			ref:  time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC),
			want: time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "midweek",
			ref:  time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week spanning a month boundary",
			ref:  time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC),
			want: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeek(tt.ref))
		})
	}
}

func TestStartOfYear(t *testing.T) {
	ref := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StartOfYear(ref))
}
