package testutil

import "time"

// NowAt pins a store clock to one instant so calendar-day assertions
// stay deterministic.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses a timestamp or panics. Test setup only.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
