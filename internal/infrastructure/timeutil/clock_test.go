package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before), "clock time should not be before start")
	assert.False(t, now.After(after), "clock time should not be after end")
}

func TestFixedClock_Now(t *testing.T) {
	at := time.Date(2026, 4, 24, 15, 30, 0, 0, time.UTC)
	clock := NewFixedClock(at)

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, at, clock.Now(), "a fixed clock never moves")
}

func TestToday(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "afternoon UTC",
			at:   time.Date(2026, 4, 24, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 4, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local evening keeps the local date",
			at:   time.Date(2026, 6, 1, 23, 45, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			want: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Today(NewFixedClock(tt.at)))
		})
	}
}
