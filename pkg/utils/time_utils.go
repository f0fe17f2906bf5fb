// utils/timeutil.go
package utils

import "time"

// India time location (IST, +05:30); all billing windows anchor here.
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

func ISTLocation() *time.Location { return istLoc }

// Use explicit "seconds" variant for DB storage (recommended)
func NowUnixSeconds() int64 { return time.Now().Unix() }

// Convert an epoch value in **seconds** to IST.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsIST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(istLoc)
}

// Format helpers
func FormatRFC3339IST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}
