package climate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysInAxis is the length of the normalized day-of-year axis. Feb 29 shares
// the Feb 28 slot so every year maps onto the same 365 positions.
const DaysInAxis = 365

var cumDays = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

var monthLen = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Date returns midnight UTC of the given calendar day.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	return Date(t.Year(), int(t.Month()), t.Day())
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(time.Hour).Hours() / 24)
}

func nextDay(a, b time.Time) bool { return daysBetween(a, b) == 1 }

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DayOfYear maps t onto the 1..365 axis. Feb 29 lands on slot 59 with Feb 28.
func DayOfYear(t time.Time) int {
	m, d := int(t.Month()), t.Day()
	if m == 2 && d == 29 {
		d = 28
	}
	return cumDays[m-1] + d
}

// AxisMonthDay is the inverse of DayOfYear on the non-leap calendar.
func AxisMonthDay(doy int) MonthDay {
	for m := 12; m >= 1; m-- {
		if doy > cumDays[m-1] {
			return MonthDay{Month: m, Day: doy - cumDays[m-1]}
		}
	}
	return MonthDay{Month: 1, Day: 1}
}

// MonthDay is a calendar position without a year.
type MonthDay struct {
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

func (md MonthDay) key() int { return md.Month*100 + md.Day }

func (md MonthDay) String() string {
	if md.Month < 1 || md.Month > 12 {
		return fmt.Sprintf("%d/%d", md.Month, md.Day)
	}
	return fmt.Sprintf("%s %d", monthAbbr[md.Month-1], md.Day)
}

// Validate checks the month and that the day exists in that month of a leap year.
func (md MonthDay) Validate() error {
	if md.Month < 1 || md.Month > 12 {
		return invalidParam("month", md.Month, "must be between 1 and 12")
	}
	if md.Day < 1 || md.Day > monthLen[md.Month-1] {
		return invalidParam("day", md.Day, fmt.Sprintf("must be between 1 and %d for %s", monthLen[md.Month-1], monthAbbr[md.Month-1]))
	}
	return nil
}

// in returns the concrete date in year, clamping Feb 29 to Feb 28 off leap years.
func (md MonthDay) in(year int) time.Time {
	d := md.Day
	if md.Month == 2 && d == 29 && !isLeap(year) {
		d = 28
	}
	return Date(year, md.Month, d)
}

func monthDayOf(t time.Time) MonthDay { return MonthDay{Month: int(t.Month()), Day: t.Day()} }

// DateRange is a recurring month/day window. When End precedes Start the
// window crosses New Year and each instance belongs to the year it starts in.
type DateRange struct {
	Start MonthDay `json:"start" yaml:"start"`
	End   MonthDay `json:"end" yaml:"end"`
}

// NewDateRange builds and validates a window.
func NewDateRange(startMonth, startDay, endMonth, endDay int) (DateRange, error) {
	r := DateRange{Start: MonthDay{startMonth, startDay}, End: MonthDay{endMonth, endDay}}
	return r, r.Validate()
}

// ParseDateRange parses "M/D-M/D", e.g. "12/20-1/5".
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return DateRange{}, invalidParam("date range", s, "use M/D-M/D (e.g. 1/3-1/20)")
	}
	start, err := parseMonthDay(parts[0])
	if err != nil {
		return DateRange{}, invalidParam("date range", s, "use M/D-M/D (e.g. 1/3-1/20)")
	}
	end, err := parseMonthDay(parts[1])
	if err != nil {
		return DateRange{}, invalidParam("date range", s, "use M/D-M/D (e.g. 1/3-1/20)")
	}
	r := DateRange{Start: start, End: end}
	return r, r.Validate()
}

func parseMonthDay(s string) (MonthDay, error) {
	mStr, dStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return MonthDay{}, fmt.Errorf("missing '/' in %q", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mStr))
	if err != nil {
		return MonthDay{}, err
	}
	d, err := strconv.Atoi(strings.TrimSpace(dStr))
	if err != nil {
		return MonthDay{}, err
	}
	return MonthDay{Month: m, Day: d}, nil
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	return r.End.Validate()
}

func (r DateRange) String() string { return r.Start.String() + " - " + r.End.String() }

// Wraps reports whether the window crosses New Year.
func (r DateRange) Wraps() bool { return r.End.key() < r.Start.key() }

func (r DateRange) containsMonthDay(md MonthDay) bool {
	k := md.key()
	if r.Wraps() {
		return k >= r.Start.key() || k <= r.End.key()
	}
	return k >= r.Start.key() && k <= r.End.key()
}

// Contains reports whether t falls inside any instance of the window.
func (r DateRange) Contains(t time.Time) bool { return r.containsMonthDay(monthDayOf(t)) }

// InstanceYear is the start year of the instance containing t. Only
// meaningful when Contains(t) is true.
func (r DateRange) InstanceYear(t time.Time) int {
	if r.Wraps() && monthDayOf(t).key() < r.Start.key() {
		return t.Year() - 1
	}
	return t.Year()
}

// Bounds returns the first and last date of the instance starting in year.
func (r DateRange) Bounds(year int) (time.Time, time.Time) {
	endYear := year
	if r.Wraps() {
		endYear++
	}
	return r.Start.in(year), r.End.in(endYear)
}

// axisSlots lists the day-of-year slots covered by the window in window order,
// so a Dec 1 - Feb 28 range yields 335..365 followed by 1..59. Each slot is
// listed once even when Feb 29 and Feb 28 both bound the window.
func (r DateRange) axisSlots() []int {
	start := DayOfYear(r.Start.in(2001))
	end := DayOfYear(r.End.in(2001))
	var out []int
	if r.Wraps() {
		for d := start; d <= DaysInAxis; d++ {
			out = append(out, d)
		}
		for d := 1; d <= end && d < start; d++ {
			out = append(out, d)
		}
		return out
	}
	for d := start; d <= end; d++ {
		out = append(out, d)
	}
	return out
}

// Season is a meteorological season of three whole months.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

func ParseSeason(s string) (Season, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "winter", "spring", "summer", "fall":
		return Season(v), nil
	case "autumn":
		return Fall, nil
	}
	return "", invalidParam("season", s, "use winter, spring, summer or fall")
}

// Title is the capitalized season name.
func (s Season) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// SeasonOf returns the season of t and its anchor year. December anchors to
// its own year, so Dec 2020, Jan 2021 and Feb 2021 all belong to winter 2020.
func SeasonOf(t time.Time) (Season, int) {
	switch t.Month() {
	case time.December:
		return Winter, t.Year()
	case time.January, time.February:
		return Winter, t.Year() - 1
	case time.March, time.April, time.May:
		return Spring, t.Year()
	case time.June, time.July, time.August:
		return Summer, t.Year()
	default:
		return Fall, t.Year()
	}
}

// SeasonLabel renders "Winter 2020-2021" or "Summer 2020".
func SeasonLabel(s Season, year int) string {
	if s == Winter {
		return fmt.Sprintf("%s %d-%d", s.Title(), year, year+1)
	}
	return fmt.Sprintf("%s %d", s.Title(), year)
}
