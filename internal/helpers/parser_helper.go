package helpers

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseID parses a positive numeric identifier from a path or query value.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock parses a time of day (HH:MM:SS or HH:MM).
func ParseClock(s string) (datatypes.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q", s)
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
