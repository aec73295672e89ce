package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefineIntersection(t *testing.T) {
	i1 := DateInterval{
		CreateDate: date(2005, 3, 1),
		EffDate:    date(2005, 3, 5),
		DiscDate:   date(2005, 3, 8),
		ExpireDate: date(2005, 3, 10),
	}

	tests := []struct {
		name   string
		other  DateInterval
		wantOK bool
		want   DateInterval
	}{
		{
			name: "starts on disc date of the first interval",
			other: DateInterval{
				CreateDate: date(2005, 3, 2),
				EffDate:    date(2005, 3, 8),
				DiscDate:   date(2005, 3, 28),
				ExpireDate: date(2005, 3, 25),
			},
			wantOK: true,
			want: DateInterval{
				CreateDate: date(2005, 3, 2),
				EffDate:    date(2005, 3, 8),
				DiscDate:   date(2005, 3, 8),
				ExpireDate: date(2005, 3, 10),
			},
		},
		{
			name: "starts after the first interval ends",
			other: DateInterval{
				CreateDate: date(2005, 3, 2),
				EffDate:    date(2005, 3, 26),
				DiscDate:   date(2005, 3, 28),
				ExpireDate: date(2005, 3, 25),
			},
			wantOK: false,
		},
		{
			name: "contains the first interval",
			other: DateInterval{
				EffDate: date(2005, 1, 1),
			},
			wantOK: true,
			want: DateInterval{
				CreateDate: date(2005, 3, 1),
				EffDate:    date(2005, 3, 5),
				DiscDate:   date(2005, 3, 8),
				ExpireDate: date(2005, 3, 10),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefineIntersection(i1, tt.other)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}

			// symmetric
			_, okReverse := DefineIntersection(tt.other, i1)
			assert.Equal(t, tt.wantOK, okReverse)
		})
	}
}

func TestDefineIntersectionH_IgnoresTimeOfDay(t *testing.T) {
	a := DateInterval{
		EffDate:    date(2024, 5, 1),
		ExpireDate: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC),
	}
	b := DateInterval{
		EffDate: time.Date(2024, 5, 10, 17, 30, 0, 0, time.UTC),
	}

	_, ok := DefineIntersection(a, b)
	assert.False(t, ok)

	got, ok := DefineIntersectionH(a, b)
	require.True(t, ok)
	assert.Equal(t, b.EffDate, got.EffDate)
}

func TestDefineUnion(t *testing.T) {
	a := DateInterval{EffDate: date(2024, 1, 1), ExpireDate: date(2024, 6, 30)}
	b := DateInterval{EffDate: date(2024, 3, 1)}

	got, ok := DefineUnion(a, b)
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 1), got.EffDate)
	assert.True(t, got.ExpireDate.IsZero(), "open end must stay open")

	_, ok = DefineUnion(a, DateInterval{EffDate: date(2025, 1, 1)})
	assert.False(t, ok)
}

func TestDateInterval_IsEffective(t *testing.T) {
	interval := DateInterval{
		CreateDate: date(2024, 1, 1),
		EffDate:    date(2024, 2, 1),
		ExpireDate: date(2024, 12, 31),
		DiscDate:   date(2024, 6, 30),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"before effective", date(2024, 1, 31), false},
		{"on effective", date(2024, 2, 1), true},
		{"late in the day of disc", time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC), true},
		{"after disc", date(2024, 7, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.IsEffective(tt.date))
		})
	}
}

func TestDateInterval_IsEffectiveAt(t *testing.T) {
	interval := DateInterval{
		CreateDate: date(2024, 1, 1),
		EffDate:    date(2024, 2, 1),
		ExpireDate: date(2024, 12, 31),
		DiscDate:   date(2024, 6, 30),
	}

	tests := []struct {
		name   string
		ticket time.Time
		travel time.Time
		want   bool
	}{
		{"ticketed and travelling inside", date(2024, 3, 1), date(2024, 10, 1), true},
		{"ticketed before create", date(2023, 12, 31), date(2024, 3, 1), false},
		{"ticketed after disc", date(2024, 7, 1), date(2024, 8, 1), false},
		{"travel before effective", date(2024, 1, 15), date(2024, 1, 20), false},
		{"travel after expire", date(2024, 3, 1), date(2025, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.IsEffectiveAt(tt.ticket, tt.travel))
		})
	}
}
