package taskgen

import "github.com/foyer-app/foyer-voice/internal/domain/entities"

// Per-category base weights for the four load components. The totals are
// deliberately distinct across categories (health above household above
// social) so effort ordering is stable.
var categoryBase = map[entities.TaskCategory]entities.ChargeWeight{
	entities.CategoryTransport:  {Mental: 1.5, Time: 2.5, Emotional: 1.0, Physical: 1.5},
	entities.CategoryHealth:     {Mental: 3.0, Time: 2.5, Emotional: 3.0, Physical: 1.5},
	entities.CategoryEducation:  {Mental: 2.5, Time: 2.0, Emotional: 2.0, Physical: 1.0},
	entities.CategoryFood:       {Mental: 2.0, Time: 2.5, Emotional: 1.0, Physical: 2.0},
	entities.CategoryHousehold:  {Mental: 1.5, Time: 2.0, Emotional: 1.0, Physical: 3.0},
	entities.CategoryActivities: {Mental: 1.5, Time: 2.5, Emotional: 1.5, Physical: 1.5},
	entities.CategorySocial:     {Mental: 2.0, Time: 1.5, Emotional: 2.0, Physical: 1.0},
	entities.CategoryOther:      {Mental: 1.5, Time: 1.5, Emotional: 1.0, Physical: 1.0},
}

// Priority multipliers are strictly increasing so the total is monotonic in
// priority for a fixed category.
var priorityMultiplier = map[entities.TaskPriority]float64{
	entities.PriorityLow:      0.8,
	entities.PriorityMedium:   1.0,
	entities.PriorityHigh:     1.3,
	entities.PriorityCritical: 1.6,
}

// CalculateChargeWeight returns the workload estimate for a task: the
// category's fixed base components plus a total scaled by the priority
// multiplier. Deterministic by construction.
func CalculateChargeWeight(category entities.TaskCategory, priority entities.TaskPriority) entities.ChargeWeight {
	base, ok := categoryBase[category]
	if !ok {
		base = categoryBase[entities.CategoryOther]
	}
	multiplier, ok := priorityMultiplier[priority]
	if !ok {
		multiplier = priorityMultiplier[entities.PriorityMedium]
	}
	weight := base
	weight.Total = (base.Mental + base.Time + base.Emotional + base.Physical) * multiplier
	return weight
}
