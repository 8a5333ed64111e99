package prediction

import (
	"math"
	"time"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// Intervals are calendar-day arithmetic on fixed 24-hour days.
const day = 24 * time.Hour

// calculate forecasts the next due date for a single service type. last is
// the most recent record of that type, or nil when the vehicle has no history
// of it. now must be sampled once by the caller and threaded through so the
// whole forecast is computed against a single instant.
//
// Returns nil when neither a mileage-based nor a time-based estimate can be
// produced.
func calculate(rule Rule, last *models.ServiceRecord, vehicle models.Vehicle, now time.Time) *models.Prediction {
	if last == nil {
		return firstService(rule, vehicle, now)
	}

	lastMileage := last.Mileage
	milesSince := vehicle.CurrentMileage - lastMileage

	// Mileage-based estimate: extrapolate from the average usage rate since
	// the last service. The rate is indeterminate when the vehicle has not
	// moved or the record is dated now or later; in that case no mileage
	// date is produced (distinct from the already-due case below).
	var mileageDue *time.Time
	if rule.MileageInterval > 0 {
		milesRemaining := rule.MileageInterval - milesSince
		if milesRemaining <= 0 {
			due := now
			mileageDue = &due
		} else {
			daysSince := now.Sub(last.ServiceDate).Hours() / 24
			if daysSince > 0 && milesSince > 0 {
				avgMilesPerDay := milesSince / daysSince
				due := now.Add(time.Duration(milesRemaining / avgMilesPerDay * float64(day)))
				mileageDue = &due
			}
		}
	}

	// Time-based estimate: fixed calendar interval from the last service.
	var timeDue *time.Time
	if rule.TimeIntervalDays > 0 {
		due := last.ServiceDate.Add(time.Duration(rule.TimeIntervalDays) * day)
		timeDue = &due
	}

	// Whichever comes first wins.
	var next *time.Time
	switch {
	case mileageDue != nil && timeDue != nil:
		if mileageDue.Before(*timeDue) {
			next = mileageDue
		} else {
			next = timeDue
		}
	case mileageDue != nil:
		next = mileageDue
	case timeDue != nil:
		next = timeDue
	}
	if next == nil {
		return nil
	}

	daysUntil := ceilDays(next.Sub(now))
	lastDate := last.ServiceDate
	return &models.Prediction{
		ServiceType:             rule.ServiceType,
		ServiceName:             rule.DisplayName,
		NextServiceDate:         *next,
		DaysUntil:               daysUntil,
		IsOverdue:               daysUntil < 0,
		LastServiceDate:         &lastDate,
		LastServiceMileage:      &lastMileage,
		CurrentMileage:          vehicle.CurrentMileage,
		RecommendedMileage:      lastMileage + rule.MileageInterval,
		RecommendedTimeInterval: rule.TimeIntervalDays,
	}
}

// firstService builds the default forecast for a service type with no prior
// history: a pure calendar projection from now. Without a usage-rate baseline
// there is nothing to extrapolate mileage from, even when the rule has a
// mileage interval.
func firstService(rule Rule, vehicle models.Vehicle, now time.Time) *models.Prediction {
	return &models.Prediction{
		ServiceType:             rule.ServiceType,
		ServiceName:             rule.DisplayName,
		NextServiceDate:         now.Add(time.Duration(rule.TimeIntervalDays) * day),
		DaysUntil:               rule.TimeIntervalDays,
		IsOverdue:               false,
		CurrentMileage:          vehicle.CurrentMileage,
		RecommendedMileage:      vehicle.CurrentMileage + rule.MileageInterval,
		RecommendedTimeInterval: rule.TimeIntervalDays,
		IsFirstService:          true,
	}
}

// ceilDays converts a duration to whole days, rounding up, so a due date a
// few hours out reads as "due in 1 day". A result of exactly 0 is due today,
// not overdue.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
