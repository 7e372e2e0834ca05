package supplychain

import "time"

// Season names, capitalized the way they appear in generated prompts.
const (
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonAutumn = "Autumn"
)

// Hemisphere selects which set of season boundaries applies.
type Hemisphere string

const (
	HemisphereNorthern Hemisphere = "northern"
	HemisphereSouthern Hemisphere = "southern"
)

// seasonDates holds the (month, day) each season starts on.
type seasonDates struct {
	spring, summer, autumn, winter [2]int
}

var seasonsByHemisphere = map[Hemisphere]seasonDates{
	HemisphereNorthern: {
		spring: [2]int{3, 20},
		summer: [2]int{6, 21},
		autumn: [2]int{9, 22},
		winter: [2]int{12, 21},
	},
	HemisphereSouthern: {
		spring: [2]int{9, 22},
		summer: [2]int{12, 21},
		autumn: [2]int{3, 20},
		winter: [2]int{6, 21},
	},
}

// SeasonFromDate maps a date to its astronomical season in the northern
// hemisphere.
func SeasonFromDate(t time.Time) string {
	return SeasonIn(t, HemisphereNorthern)
}

// SeasonIn maps a date to its astronomical season in the given hemisphere.
// Unknown hemispheres fall back to northern.
func SeasonIn(t time.Time, hemisphere Hemisphere) string {
	dates, ok := seasonsByHemisphere[hemisphere]
	if !ok {
		dates = seasonsByHemisphere[HemisphereNorthern]
	}

	current := dayOfYear(int(t.Month()), t.Day())

	switch {
	case between(current, dates.winter, dates.spring):
		return SeasonWinter
	case between(current, dates.spring, dates.summer):
		return SeasonSpring
	case between(current, dates.summer, dates.autumn):
		return SeasonSummer
	case between(current, dates.autumn, dates.winter):
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// between reports whether day falls in [start, end), handling ranges that
// cross the year boundary.
func between(day int, start, end [2]int) bool {
	startDay := dayOfYear(start[0], start[1])
	endDay := dayOfYear(end[0], end[1])

	if startDay <= endDay {
		return day >= startDay && day < endDay
	}
	return day >= startDay || day < endDay
}

var daysBeforeMonth = [13]int{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

func dayOfYear(month, day int) int {
	return daysBeforeMonth[month] + day
}
