package billing

import (
	"fmt"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
)

// billingCycleEndDay is the day of month used as the end of every billing
// cycle. The legacy system used day 30 for all months, February included;
// time.Date normalizes the overflow (Feb 30 becomes early March), which is
// the same behavior the legacy date library had. Kept as a single named
// policy so it can be revisited in one place.
const billingCycleEndDay = 30

// Period identifies one monthly billing cycle. Months are 1-indexed
// (1 = January).
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewPeriod creates a validated billing period
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Month must be between 1 and 12, got %d", month))
	}
	if year < 2000 || year > 2200 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Year %d is out of range", year))
	}
	return Period{Month: month, Year: year}, nil
}

// CurrentPeriod returns the period containing the given instant
func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// Next returns the following period, wrapping December into January of the
// next year
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Compare returns -1, 0 or 1 when p is before, equal to or after other
func (p Period) Compare(other Period) int {
	switch {
	case p.Year < other.Year:
		return -1
	case p.Year > other.Year:
		return 1
	case p.Month < other.Month:
		return -1
	case p.Month > other.Month:
		return 1
	default:
		return 0
	}
}

// IsBefore returns true if p is strictly before other
func (p Period) IsBefore(other Period) bool {
	return p.Compare(other) < 0
}

// IsOnOrAfter returns true if p is other's period or later
func (p Period) IsOnOrAfter(other Period) bool {
	return p.Compare(other) >= 0
}

// String renders the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// EndOfBillingCycle returns the calendar end of the period's cycle,
// the legacy day-30 policy applied to the period's month.
func EndOfBillingCycle(p Period) time.Time {
	return time.Date(p.Year, time.Month(p.Month), billingCycleEndDay, 0, 0, 0, 0, time.UTC)
}

// DueDate returns the date a payment for the period is due. The legacy
// system used the cycle end itself as the due date.
func DueDate(p Period) time.Time {
	return EndOfBillingCycle(p)
}

// GraceCutoff returns the 5th of the month containing today. Residents
// whose next payment date is before this cutoff are past the grace period.
func GraceCutoff(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), graceEndDay, 0, 0, 0, 0, time.UTC)
}

// graceEndDay is the last day of the monthly grace period. Escalation to
// overdue never happens on or before this day of the month.
const graceEndDay = 5

// InGracePeriod returns true while escalation is suspended for the month
func InGracePeriod(today time.Time) bool {
	return today.Day() <= graceEndDay
}
