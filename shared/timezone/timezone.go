// Package timezone pins calendar arithmetic to APP_TIMEZONE. Booking days,
// dashboard windows and date-only filters all use this location.
package timezone

import (
	"careops/config"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = loadLocation(config.Get().App.Timezone)

// loadLocation falls back to UTC when name is empty or not an IANA zone.
func loadLocation(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

func GetLocation() *time.Location {
	return appLocation
}

// Now is the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Parse reads value as wall-clock time in the application timezone unless
// the layout carries its own offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// StartOfDay returns midnight of t's calendar day in the application timezone.
func StartOfDay(t time.Time) time.Time {
	local := ToAppTime(t)
	year, month, day := local.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, appLocation)
}

// DayRange is the half-open span [start, end) covering days calendar days
// from the day containing t. Days are counted on the calendar so a DST
// change does not shift the end off midnight.
func DayRange(t time.Time, days int) (start, end time.Time) {
	start = StartOfDay(t)

	return start, start.AddDate(0, 0, days)
}
