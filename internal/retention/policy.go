// Package retention implements the retention-policy evaluation.
package retention

import (
	"math"
	"time"

	"github.com/vmunix/janitarr/internal/media"
)

// Policy decides when media should be reminded about and when it should
// be removed. Ages are floored to whole days; boundaries are inclusive
// on both windows.
type Policy struct {
	RetentionDays int
	ReminderDays  int
}

// Decision is the outcome of evaluating one snapshot. DaysLeft goes
// negative once the media is past its retention window. Remind is also
// true whenever Delete is; the windows overlap.
type Decision struct {
	Remind   bool `json:"remind"`
	Delete   bool `json:"delete"`
	DaysLeft int  `json:"days_left"`
}

// Evaluate maps a snapshot's age at now to a Decision. A granted
// extension shifts the effective availability date forward by
// extensionDays. Media without a timestamp is never acted on.
func (p Policy) Evaluate(info *media.Info, extensionDays int, now time.Time) Decision {
	if info == nil || !info.Available || info.AvailableSince == nil {
		return Decision{}
	}

	effective := *info.AvailableSince
	if extensionDays > 0 {
		effective = effective.AddDate(0, 0, extensionDays)
	}

	// Floor, not truncate: a freshly extended item can have an
	// effective date in the future, and a partial day ahead must not
	// round toward zero and read a day short.
	ageDays := int(math.Floor(now.Sub(effective).Hours() / 24))
	daysLeft := p.RetentionDays - ageDays
	return Decision{
		Remind:   daysLeft <= p.ReminderDays,
		Delete:   ageDays >= p.RetentionDays,
		DaysLeft: daysLeft,
	}
}
