// Package thaitime formats timestamps the way the operators read them:
// Asia/Bangkok wall clock with Buddhist-era years, matching the th-TH
// locale output the previous system produced.
package thaitime

import (
	"fmt"
	"time"
)

// Bangkok is the service timezone.  Falls back to a fixed UTC+7 zone when
// the tz database is unavailable (e.g. minimal containers).
var Bangkok = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}()

// Date renders t as d/m/yyyy in Bangkok time with the Buddhist-era year
// (Gregorian + 543), e.g. "2/11/2568".
func Date(t time.Time) string {
	t = t.In(Bangkok)
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

// Clock renders the Bangkok wall-clock time of t as HH:MM:SS.
func Clock(t time.Time) string {
	return t.In(Bangkok).Format("15:04:05")
}

// Timestamp renders both date and clock, used for audit rows and notices.
func Timestamp(t time.Time) string {
	return Date(t) + " " + Clock(t)
}
