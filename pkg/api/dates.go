package api

import (
	"fmt"
	"time"
)

// localDateString formats t's local calendar date as YYYY-MM-DD using the
// local year/month/day fields directly. UTC-serializing formats shift the
// effective date after roughly 7 PM US Eastern, which would show tomorrow's
// slate prematurely on the evening game feeds.
func localDateString(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// TodayLocal returns today's local calendar date as used by the per-sport
// game feeds.
func TodayLocal() string {
	return localDateString(time.Now())
}
