// Package time wraps the clock so tests can pin the submission timestamp.
package time

import (
	"time"
)

// ISO8601 is the layout of a JavaScript Date.toISOString(): UTC with
// millisecond precision.
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

var (
	fakeTime *time.Time
)

func Now() time.Time {
	if fakeTime != nil {
		return *fakeTime
	}
	return time.Now()
}

// Timestamp formats t in UTC using ISO8601. The UTC zone renders as "Z".
func Timestamp(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

func SetFake() (undo func()) {
	f := time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)
	fakeTime = &f
	return ClearFake
}

func ClearFake() {
	fakeTime = nil
}
