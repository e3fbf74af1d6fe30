package utils

import (
	"fmt"
	"time"
)

// BirthdayInfo describes the next occurrence of a realtor's birthday
// relative to a reference day.
type BirthdayInfo struct {
	NextBirthday time.Time
	DaysUntil    int
}

// Midnight truncates t to UTC midnight of its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextBirthday computes the next occurrence of birthDate's month/day on
// or after today, and the whole-day countdown to it. A birthday on today
// yields DaysUntil == 0.
//
// Feb 29 birthdays fall back to Feb 28 in non-leap target years; Go's
// time.Date would otherwise normalize Feb 29 to Mar 1.
func NextBirthday(birthDate, today time.Time) BirthdayInfo {
	today = Midnight(today)

	next := occurrenceInYear(birthDate, today.Year())
	if next.Before(today) {
		next = occurrenceInYear(birthDate, today.Year()+1)
	}

	days := int(next.Sub(today).Hours() / 24)

	return BirthdayInfo{NextBirthday: next, DaysUntil: days}
}

func occurrenceInYear(birthDate time.Time, year int) time.Time {
	month, day := birthDate.Month(), birthDate.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// BirthdayMessage renders the human-readable countdown line shown to
// admins and stored on notification records.
func BirthdayMessage(name string, daysUntil int) string {
	if daysUntil == 0 {
		return fmt.Sprintf("%s has a birthday today! 🎉", name)
	}
	return fmt.Sprintf("%d days to %s's birthday 🎂", daysUntil, name)
}
