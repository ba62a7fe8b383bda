package utils

import "time"

const DateLayout = "2006-01-02"

// DB timestamps are stored as unix seconds.
func NowUnixSeconds() int64 { return time.Now().Unix() }

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DaysBetween returns whole calendar days from a to b, ignoring the
// time-of-day component.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
