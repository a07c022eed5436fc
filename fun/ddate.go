package fun

import (
	"fmt"
	"time"
)

var (
	DiscordianDays    = []string{"Sweetmorn", "Boomtime", "Pungenday", "Prickle-Prickle", "Setting Orange"}
	DiscordianSeasons = []string{"Chaos", "Discord", "Confusion", "Bureaucracy", "The Aftermath"}
)

const (
	daysPerSeason = 73
	yoldOffset    = 1166
	tibsDayIndex  = 59
)

// DDate is a date in the Discordian calendar.
type DDate struct {
	Year    int
	Season  int
	Day     int // 1-based day of the season
	Weekday int
	TibsDay bool
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ToDDate converts a Gregorian date. St. Tib's Day (February 29th) sits
// outside the week and the seasons.
func ToDDate(t time.Time) DDate {
	d := DDate{Year: t.Year() + yoldOffset}
	yday := t.YearDay() - 1
	if isLeap(t.Year()) {
		if yday == tibsDayIndex {
			d.TibsDay = true
			return d
		}
		if yday > tibsDayIndex {
			yday--
		}
	}
	d.Season = yday / daysPerSeason
	d.Day = yday%daysPerSeason + 1
	d.Weekday = yday % len(DiscordianDays)
	return d
}

func (d DDate) String() string {
	if d.TibsDay {
		return fmt.Sprintf("Today is St. Tib's Day in the YOLD %v", d.Year)
	}
	return fmt.Sprintf("Today is %v, the %v%v day of %v in the YOLD %v",
		DiscordianDays[d.Weekday],
		d.Day,
		OrdinalSuffix(d.Day),
		DiscordianSeasons[d.Season],
		d.Year,
	)
}

func OrdinalSuffix(n int) string {
	if (n/10)%10 == 1 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
