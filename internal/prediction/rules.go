package prediction

// Rule defines the recurrence policy for one service type.
type Rule struct {
	ServiceType      string  // identifier, e.g. "oil_change"
	MileageInterval  float64 // miles between services; 0 means time-only
	TimeIntervalDays int     // calendar days between services
	DisplayName      string  // human-readable label
}

// RuleTable is an immutable, ordered set of service rules. The order of the
// rules is the order predictions are computed in.
type RuleTable struct {
	rules  []Rule
	byType map[string]Rule
}

// NewRuleTable builds a rule table from the given rules, preserving order.
func NewRuleTable(rules []Rule) RuleTable {
	byType := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byType[r.ServiceType] = r
	}
	return RuleTable{
		rules:  append([]Rule(nil), rules...),
		byType: byType,
	}
}

// Lookup returns the rule for a service type, if one exists.
func (t RuleTable) Lookup(serviceType string) (Rule, bool) {
	r, ok := t.byType[serviceType]
	return r, ok
}

// Rules returns a copy of the rules in table order.
func (t RuleTable) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Len returns the number of rules in the table.
func (t RuleTable) Len() int {
	return len(t.rules)
}

// DefaultRules returns the standard maintenance schedule shared by every
// caller in the system.
func DefaultRules() RuleTable {
	return NewRuleTable([]Rule{
		{ServiceType: "oil_change", MileageInterval: 5000, TimeIntervalDays: 180, DisplayName: "Oil Change"},
		{ServiceType: "brake_check", MileageInterval: 15000, TimeIntervalDays: 365, DisplayName: "Brake Check"},
		{ServiceType: "tire_rotation", MileageInterval: 7500, TimeIntervalDays: 180, DisplayName: "Tire Rotation"},
		{ServiceType: "air_filter", MileageInterval: 15000, TimeIntervalDays: 365, DisplayName: "Air Filter Replacement"},
		{ServiceType: "battery_check", MileageInterval: 0, TimeIntervalDays: 365, DisplayName: "Battery Check"},
		{ServiceType: "transmission_service", MileageInterval: 30000, TimeIntervalDays: 730, DisplayName: "Transmission Service"},
		{ServiceType: "coolant_flush", MileageInterval: 30000, TimeIntervalDays: 730, DisplayName: "Coolant Flush"},
	})
}
