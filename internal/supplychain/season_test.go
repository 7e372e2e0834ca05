package supplychain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 12, 0, 0, 0, time.UTC)
}

func TestSeasonIn_Northern(t *testing.T) {
	tests := []struct {
		when time.Time
		want string
	}{
		{date(time.January, 15), SeasonWinter},
		{date(time.March, 19), SeasonWinter},
		{date(time.March, 20), SeasonSpring}, // boundary day starts the season
		{date(time.June, 20), SeasonSpring},
		{date(time.June, 21), SeasonSummer},
		{date(time.September, 21), SeasonSummer},
		{date(time.September, 22), SeasonAutumn},
		{date(time.December, 20), SeasonAutumn},
		{date(time.December, 21), SeasonWinter}, // wraps across the year boundary
		{date(time.December, 31), SeasonWinter},
	}

	for _, tt := range tests {
		t.Run(tt.when.Format("Jan 2"), func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonIn(tt.when, HemisphereNorthern))
		})
	}
}

func TestSeasonIn_Southern(t *testing.T) {
	assert.Equal(t, SeasonSummer, SeasonIn(date(time.January, 15), HemisphereSouthern))
	assert.Equal(t, SeasonAutumn, SeasonIn(date(time.April, 1), HemisphereSouthern))
	assert.Equal(t, SeasonWinter, SeasonIn(date(time.July, 1), HemisphereSouthern))
	assert.Equal(t, SeasonSpring, SeasonIn(date(time.October, 1), HemisphereSouthern))
}

func TestSeasonIn_UnknownHemisphereDefaultsToNorthern(t *testing.T) {
	assert.Equal(t, SeasonWinter, SeasonIn(date(time.January, 15), Hemisphere("equatorial")))
}

func TestSeasonFromDate(t *testing.T) {
	assert.Equal(t, SeasonSummer, SeasonFromDate(date(time.July, 4)))
}
