package forecast

import (
	"fmt"
	"time"
)

// Vacation lever levels. Unlike parking and weather this lever does not scale
// counts: it selects which is_school_vacation flag value feeds the model.
const (
	VacationCalendar  = "calendar"
	VacationForced    = "force_vacation"
	VacationForcedOff = "force_no_vacation"
)

// Belgian public holidays, 2025-2026.
var belgianHolidays = map[string]string{
	"2025-01-01": "New Year's Day",
	"2025-04-21": "Easter Monday",
	"2025-05-01": "Labour Day",
	"2025-05-29": "Ascension Day",
	"2025-06-09": "Whit Monday",
	"2025-07-21": "Belgian National Day",
	"2025-08-15": "Assumption of Mary",
	"2025-11-01": "All Saints' Day",
	"2025-11-11": "Armistice Day",
	"2025-12-25": "Christmas Day",
	"2026-01-01": "New Year's Day",
	"2026-04-06": "Easter Monday",
	"2026-05-01": "Labour Day",
	"2026-05-14": "Ascension Day",
	"2026-05-25": "Whit Monday",
	"2026-07-21": "Belgian National Day",
	"2026-08-15": "Assumption of Mary",
	"2026-11-01": "All Saints' Day",
	"2026-11-11": "Armistice Day",
	"2026-12-25": "Christmas Day",
}

type vacationPeriod struct {
	start string
	end   string // inclusive
	name  string
}

// Flanders school vacation periods, 2025-2026.
var schoolVacations = []vacationPeriod{
	{"2025-02-24", "2025-03-02", "Carnival Break"},
	{"2025-04-14", "2025-04-27", "Easter Break"},
	{"2025-07-01", "2025-08-31", "Summer Break"},
	{"2025-11-03", "2025-11-09", "Autumn Break"},
	{"2025-12-22", "2026-01-05", "Christmas Break"},
	{"2026-02-16", "2026-02-22", "Carnival Break"},
	{"2026-04-06", "2026-04-19", "Easter Break"},
	{"2026-07-01", "2026-08-31", "Summer Break"},
}

// Calendar answers holiday and school-vacation lookups by date.
type Calendar struct {
	holidays  map[string]string
	vacations []vacationPeriod
}

func NewBelgianCalendar() *Calendar {
	return &Calendar{holidays: belgianHolidays, vacations: schoolVacations}
}

func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format(dateLayout)]
	return ok
}

func (c *Calendar) HolidayName(t time.Time) string {
	return c.holidays[t.Format(dateLayout)]
}

func (c *Calendar) IsSchoolVacation(t time.Time) bool {
	day := t.Format(dateLayout)
	for _, p := range c.vacations {
		if day >= p.start && day <= p.end {
			return true
		}
	}
	return false
}

// ResolveVacationFlag maps a vacation lever level to the is_school_vacation
// flag for one timestamp. Resolution happens before the model runs, upstream
// of the multiplicative scenario pass.
func (c *Calendar) ResolveVacationFlag(level string, t time.Time) (bool, error) {
	switch level {
	case VacationCalendar:
		return c.IsSchoolVacation(t), nil
	case VacationForced:
		return true, nil
	case VacationForcedOff:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unknown level %q for lever vacation", ErrConfiguration, level)
	}
}
