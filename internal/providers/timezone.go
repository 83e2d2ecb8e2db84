package providers

import "time"

// ResolveTimezone loads the zone the fortune day should roll over in.
// An empty or unknown name returns nil so the caller can pick its own
// fallback.
func ResolveTimezone(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}
