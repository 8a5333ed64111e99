package prediction

import (
	"sort"
	"time"

	"github.com/uygardev/vehicle-maintenance/internal/models"
)

// Engine computes maintenance forecasts for a vehicle against a fixed rule
// table. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rules RuleTable
}

// NewEngine creates an engine backed by the given rule table.
func NewEngine(rules RuleTable) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rule table.
func (e *Engine) Rules() RuleTable {
	return e.rules
}

// Calculate forecasts a single service type. last may be nil when the vehicle
// has no history of that type. Returns nil for an unknown service type or
// when no due date can be determined.
func (e *Engine) Calculate(last *models.ServiceRecord, vehicle models.Vehicle, serviceType string, now time.Time) *models.Prediction {
	rule, ok := e.rules.Lookup(serviceType)
	if !ok {
		return nil
	}
	return calculate(rule, last, vehicle, now)
}

// Forecast computes a prediction for every rule in the table, ordered with
// overdue services first and the soonest due date next within each group.
// Records referencing a service type absent from the rule table are ignored.
func (e *Engine) Forecast(vehicle models.Vehicle, records []models.ServiceRecord, now time.Time) []models.Prediction {
	latest := latestByType(records)

	predictions := make([]models.Prediction, 0, e.rules.Len())
	for _, rule := range e.rules.rules {
		var last *models.ServiceRecord
		if rec, ok := latest[rule.ServiceType]; ok {
			last = &rec
		}
		if p := calculate(rule, last, vehicle, now); p != nil {
			predictions = append(predictions, *p)
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].IsOverdue != predictions[j].IsOverdue {
			return predictions[i].IsOverdue
		}
		return predictions[i].DaysUntil < predictions[j].DaysUntil
	})
	return predictions
}

// latestByType keeps the most recent record per service type. When two
// records share the same service date the one with the higher mileage wins,
// and if mileage ties as well the one later in the input wins.
func latestByType(records []models.ServiceRecord) map[string]models.ServiceRecord {
	latest := make(map[string]models.ServiceRecord)
	for _, rec := range records {
		cur, ok := latest[rec.ServiceType]
		if !ok || supersedes(rec, cur) {
			latest[rec.ServiceType] = rec
		}
	}
	return latest
}

func supersedes(candidate, current models.ServiceRecord) bool {
	if candidate.ServiceDate.After(current.ServiceDate) {
		return true
	}
	return candidate.ServiceDate.Equal(current.ServiceDate) && candidate.Mileage >= current.Mileage
}
