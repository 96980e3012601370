package scheduler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/models"
)

// EntityKind namespaces entity IDs inside the availability and occupancy
// indexes.
type EntityKind string

// Entity kinds.
const (
	KindApplicant EntityKind = "applicant"
	KindRecruiter EntityKind = "recruiter"
	KindRoom      EntityKind = "room"
)

func entityKey(kind EntityKind, id string) string {
	return string(kind) + ":" + id
}

// AvailabilityIndex maps every entity to the set of grid slots that lie
// entirely within one of its availability intervals. Immutable after
// construction and shared read-only by all strategies.
type AvailabilityIndex struct {
	free map[string]map[string]struct{}
}

// BuildAvailabilityIndex resolves raw availability intervals against the
// slot grid.
func BuildAvailabilityIndex(grid *SlotGrid, applicants []*models.Applicant, recruiters []*models.Recruiter, rooms []*models.Room) *AvailabilityIndex {
	ix := &AvailabilityIndex{free: make(map[string]map[string]struct{})}
	for _, a := range applicants {
		ix.add(grid, KindApplicant, a.Email, a.Availability)
	}
	for _, r := range recruiters {
		ix.add(grid, KindRecruiter, r.ID, r.Availability)
	}
	for _, r := range rooms {
		ix.add(grid, KindRoom, r.ID, r.Availability)
	}
	return ix
}

func (ix *AvailabilityIndex) add(grid *SlotGrid, kind EntityKind, id string, intervals []models.TimeSlot) {
	key := entityKey(kind, id)
	set := make(map[string]struct{})
	for _, duration := range grid.Durations() {
		for _, slot := range grid.Slots(duration) {
			for _, interval := range intervals {
				if interval.Contains(slot) {
					set[slot.Key()] = struct{}{}
					break
				}
			}
		}
	}
	ix.free[key] = set
}

// Available reports whether the entity is free for the whole slot.
func (ix *AvailabilityIndex) Available(kind EntityKind, id string, slot models.TimeSlot) bool {
	set, ok := ix.free[entityKey(kind, id)]
	if !ok {
		return false
	}
	_, ok = set[slot.Key()]
	return ok
}

// SlotCount returns how many grid slots the entity can attend. Used for
// scarcity ordering.
func (ix *AvailabilityIndex) SlotCount(kind EntityKind, id string) int {
	return len(ix.free[entityKey(kind, id)])
}

// --- Free-text availability grammars ---

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(AM|PM)$`)

// parseClock understands "5pm", "5 PM" and "5:30 pm".
func parseClock(raw string) (hour, minute int, err error) {
	match := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return 0, 0, fmt.Errorf("unrecognised clock value %q", raw)
	}
	hour, _ = strconv.Atoi(match[1])
	if match[2] != "" {
		minute, _ = strconv.Atoi(match[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", raw)
	}
	isPM := strings.EqualFold(match[3], "PM")
	if isPM && hour != 12 {
		hour += 12
	} else if !isPM && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}

// ParseDayRange parses an applicant-style range such as "5pm-9pm" or
// "5 PM - 6 PM" relative to the given calendar day.
func ParseDayRange(raw string, day time.Time) (models.TimeSlot, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return models.TimeSlot{}, fmt.Errorf("range %q has no start-end separator", raw)
	}
	startHour, startMin, err := parseClock(parts[0])
	if err != nil {
		return models.TimeSlot{}, err
	}
	endHour, endMin, err := parseClock(parts[1])
	if err != nil {
		return models.TimeSlot{}, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMin, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMin, 0, 0, time.UTC)
	if !start.Before(end) {
		return models.TimeSlot{}, fmt.Errorf("range %q ends before it starts", raw)
	}
	return models.TimeSlot{Start: start, End: end}, nil
}

// ParseDateTimeRange parses a recruiter-style range such as
// "2025-09-11 17:00-21:00".
func ParseDateTimeRange(raw string) (models.TimeSlot, error) {
	fields := strings.SplitN(strings.TrimSpace(raw), " ", 2)
	if len(fields) != 2 {
		return models.TimeSlot{}, fmt.Errorf("range %q has no date part", raw)
	}
	day, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("range %q has invalid date: %w", raw, err)
	}
	times := strings.SplitN(fields[1], "-", 2)
	if len(times) != 2 {
		return models.TimeSlot{}, fmt.Errorf("range %q has no start-end separator", raw)
	}
	start, err := parse24hClock(times[0], day)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("range %q: %w", raw, err)
	}
	end, err := parse24hClock(times[1], day)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("range %q: %w", raw, err)
	}
	if !start.Before(end) {
		return models.TimeSlot{}, fmt.Errorf("range %q ends before it starts", raw)
	}
	return models.TimeSlot{Start: start, End: end}, nil
}

func parse24hClock(raw string, day time.Time) (time.Time, error) {
	clock, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q", raw)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}

var monthDayPattern = regexp.MustCompile(`(?i)^([A-Za-z]{3})\s+(\d{1,2})\s+(\d{4})\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm))\s*-\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm))$`)

// ParseMonthDayRange parses a room-style range such as "Sep 11 2025 5pm-9pm".
func ParseMonthDayRange(raw string) (models.TimeSlot, error) {
	match := monthDayPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return models.TimeSlot{}, fmt.Errorf("unrecognised room range %q", raw)
	}
	monthName := strings.ToUpper(match[1][:1]) + strings.ToLower(match[1][1:])
	month, err := time.Parse("Jan", monthName)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("range %q has invalid month: %w", raw, err)
	}
	dayNum, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	day := time.Date(year, month.Month(), dayNum, 0, 0, 0, 0, time.UTC)
	return ParseDayRange(match[4]+"-"+match[5], day)
}

// ParseLongDate parses a date column header such as
// "Thursday, September 11, 2025" (the weekday name is optional).
func ParseLongDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if day, err := time.Parse("Monday, January 2, 2006", trimmed); err == nil {
		return day, nil
	}
	day, err := time.Parse("January 2, 2006", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
	}
	return day, nil
}
