package entities

import (
	"regexp"
	"strconv"
	"time"
)

// timestampPattern matches git's ISO-like date rendering, e.g. "2019-12-20 6:56:00 +0100".
// The zone offset is optional.
var timestampPattern = regexp.MustCompile(
	`(\d+)-(\d+)-(\d+)\s+(\d+):(\d+):(\d+)(?:\s+([+-])(\d{2})(\d{2}))?`,
)

const (
	maxYear          = 9999
	monthsPerYear    = 12
	hoursPerDay      = 23
	minutesPerHour   = 59
	secondsPerMinute = 59
	secondsPerHour   = 3600
	secondsPerOffMin = 60
)

// ParseTimestamp extracts the first ISO-like timestamp found in text.
// It reports false when the text holds no such timestamp or when the matched
// fields are out of range. It never panics.
func ParseTimestamp(text string) (time.Time, bool) {
	match := timestampPattern.FindStringSubmatch(text)
	if match == nil {
		return time.Time{}, false
	}

	fields := make([]int, 0, 6) //nolint:mnd // year, month, day, hour, minute, second
	for _, raw := range match[1:7] {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, false
		}
		fields = append(fields, value)
	}

	year, month, day := fields[0], fields[1], fields[2]
	hour, minute, second := fields[3], fields[4], fields[5]
	if year < 1 || year > maxYear || month < 1 || month > monthsPerYear {
		return time.Time{}, false
	}
	if hour > hoursPerDay || minute > minutesPerHour || second > secondsPerMinute {
		return time.Time{}, false
	}

	location := time.Local
	if match[7] != "" {
		offsetHours, _ := strconv.Atoi(match[8])
		offsetMinutes, _ := strconv.Atoi(match[9])
		offset := offsetHours*secondsPerHour + offsetMinutes*secondsPerOffMin
		if match[7] == "-" {
			offset = -offset
		}
		location = time.FixedZone("", offset)
	}

	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, location), true
}

// daysIn returns the number of days of the given month.
func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
