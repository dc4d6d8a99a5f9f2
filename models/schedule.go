package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClosedSummary is stored in BusinessHours when no weekday is enabled.
const ClosedSummary = "Fechado temporariamente"

const (
	DefaultOpenTime  = "08:00"
	DefaultCloseTime = "18:00"
)

// DayAbbreviations are indexed by weekday, 0=Sunday.
var DayAbbreviations = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

type DaySchedule struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`  // HH:MM
	Close   string `json:"close"` // HH:MM
}

// WeekSchedule maps weekday index (0=Sunday..6=Saturday) to that day's hours.
type WeekSchedule map[int]DaySchedule

// DefaultSchedule returns Monday to Friday enabled, 08:00-18:00. Weekend entries keep
// the same hours so enabling them later starts from sensible values.
func DefaultSchedule() WeekSchedule {
	s := make(WeekSchedule, 7)
	for day := 0; day <= 6; day++ {
		s[day] = DaySchedule{
			Enabled: day >= 1 && day <= 5,
			Open:    DefaultOpenTime,
			Close:   DefaultCloseTime,
		}
	}
	return s
}

// SummarizeSchedule renders the enabled days as "Seg: 08:00-18:00 | Ter: ...".
func SummarizeSchedule(s WeekSchedule) string {
	var parts []string
	for day := 0; day <= 6; day++ {
		d, ok := s[day]
		if !ok || !d.Enabled {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s-%s", DayAbbreviations[day], d.Open, d.Close))
	}
	if len(parts) == 0 {
		return ClosedSummary
	}
	return strings.Join(parts, " | ")
}

// IsOpen reports whether the schedule is open at now. The wall clock of now is used
// as-is; callers pick the location. A close time earlier than the open time means the
// window runs past midnight. The close minute itself is closed.
func IsOpen(s WeekSchedule, now time.Time) bool {
	if s == nil {
		return false
	}
	day, ok := s[int(now.Weekday())]
	if !ok || !day.Enabled {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	open := clockMinutes(day.Open)
	close := clockMinutes(day.Close)

	if close < open {
		return current >= open || current < close
	}
	return current >= open && current < close
}

// clockMinutes converts "HH:MM" to minutes since midnight. Unparsable parts count as zero.
func clockMinutes(clock string) int {
	hh, mm, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// ValidClock reports whether s is a zero-padded 24h "HH:MM" string.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
