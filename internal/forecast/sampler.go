// Package forecast reduces a dense forecast time series to one reading per
// calendar day.
package forecast

import "time"

const (
	// MaxDays bounds the number of samples returned by Sample.
	MaxDays = 5

	noonStartHour = 11
	noonEndHour   = 14
)

// Entry is a single point-in-time forecast reading.
type Entry struct {
	Timestamp   int64   `json:"dt"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Time returns the entry timestamp in loc.
func (e Entry) Time(loc *time.Location) time.Time {
	return time.Unix(e.Timestamp, 0).In(loc)
}

// DailySample is the entry chosen to represent one calendar day.
type DailySample struct {
	Entry
	Day string `json:"day"`
}

// Sample picks at most MaxDays entries, one per calendar day in loc, in
// ascending order. Entries whose local hour falls in [11, 14] are preferred;
// when that rule covers fewer than MaxDays days the first entry of every day
// is used instead. entries must be sorted by timestamp.
func Sample(entries []Entry, loc *time.Location) []DailySample {
	if loc == nil {
		loc = time.Local
	}

	noon := firstPerDay(entries, loc, inNoonWindow)
	if len(noon) >= MaxDays {
		return noon[:MaxDays]
	}

	days := firstPerDay(entries, loc, func(time.Time) bool { return true })
	if len(days) > MaxDays {
		days = days[:MaxDays]
	}
	return days
}

func inNoonWindow(t time.Time) bool {
	h := t.Hour()
	return h >= noonStartHour && h <= noonEndHour
}

func firstPerDay(entries []Entry, loc *time.Location, keep func(time.Time) bool) []DailySample {
	samples := make([]DailySample, 0, MaxDays)
	seen := make(map[string]struct{}, MaxDays+1)

	for _, e := range entries {
		t := e.Time(loc)
		if !keep(t) {
			continue
		}

		day := DayKey(t)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		samples = append(samples, DailySample{Entry: e, Day: day})
	}

	return samples
}

// DayKey names the calendar day of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// CityLocation returns a fixed zone for a UTC offset in seconds, as reported
// by the forecast payload.
func CityLocation(offsetSeconds int) *time.Location {
	if offsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone("city", offsetSeconds)
}

// ResolveLocation maps the forecast.timezone setting to a location.
// "city" (or empty) uses offsetSeconds, "local" the process zone, anything
// else is loaded as an IANA name.
func ResolveLocation(setting string, offsetSeconds int) (*time.Location, error) {
	switch setting {
	case "", "city":
		return CityLocation(offsetSeconds), nil
	case "local":
		return time.Local, nil
	default:
		return time.LoadLocation(setting)
	}
}
