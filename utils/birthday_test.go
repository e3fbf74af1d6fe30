package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextBirthday(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		today     time.Time
		wantNext  time.Time
		wantDays  int
	}{
		{
			name:      "later this year",
			birthDate: date(1990, time.May, 14),
			today:     date(2025, time.May, 7),
			wantNext:  date(2025, time.May, 14),
			wantDays:  7,
		},
		{
			name:      "birthday today",
			birthDate: date(1990, time.May, 14),
			today:     date(2025, time.May, 14),
			wantNext:  date(2025, time.May, 14),
			wantDays:  0,
		},
		{
			name:      "already passed rolls to next year",
			birthDate: date(1990, time.May, 14),
			today:     date(2025, time.May, 15),
			wantNext:  date(2026, time.May, 14),
			wantDays:  364,
		},
		{
			name:      "year boundary",
			birthDate: date(1985, time.January, 2),
			today:     date(2025, time.December, 30),
			wantNext:  date(2026, time.January, 2),
			wantDays:  3,
		},
		{
			name:      "leap day in non-leap year becomes Feb 28",
			birthDate: date(1996, time.February, 29),
			today:     date(2025, time.February, 25),
			wantNext:  date(2025, time.February, 28),
			wantDays:  3,
		},
		{
			name:      "leap day in leap year stays Feb 29",
			birthDate: date(1996, time.February, 29),
			today:     date(2028, time.February, 25),
			wantNext:  date(2028, time.February, 29),
			wantDays:  4,
		},
		{
			name:      "leap day passed in non-leap year rolls forward",
			birthDate: date(1996, time.February, 29),
			today:     date(2025, time.March, 1),
			wantNext:  date(2026, time.February, 28),
			wantDays:  364,
		},
		{
			name:      "time of day on today is ignored",
			birthDate: date(1990, time.May, 14),
			today:     time.Date(2025, time.May, 13, 23, 45, 0, 0, time.UTC),
			wantNext:  date(2025, time.May, 14),
			wantDays:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NextBirthday(tt.birthDate, tt.today)
			assert.Equal(t, tt.wantNext, info.NextBirthday)
			assert.Equal(t, tt.wantDays, info.DaysUntil)
		})
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, isLeapYear(2024))
	assert.True(t, isLeapYear(2000))
	assert.False(t, isLeapYear(2025))
	assert.False(t, isLeapYear(1900))
}

func TestBirthdayMessage(t *testing.T) {
	assert.Equal(t, "Mary Okafor has a birthday today! 🎉", BirthdayMessage("Mary Okafor", 0))
	assert.Equal(t, "3 days to Mary Okafor's birthday 🎂", BirthdayMessage("Mary Okafor", 3))
}
