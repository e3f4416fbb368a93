package taskgen

import (
	"sort"

	"github.com/google/uuid"

	"github.com/foyer-app/foyer-voice/internal/domain/entities"
)

// SuggestAssignee picks the member with the lowest load-to-capacity ratio
// after hypothetically adding the new task's weight. Members who would exceed
// their capacity are skipped; when every candidate would, the suggestion is
// nil and the surrounding product asks the family to rebalance. Ties break by
// lowest absolute current load, then roster order, for determinism.
func SuggestAssignee(members []entities.Member, category entities.TaskCategory, weight entities.ChargeWeight) *uuid.UUID {
	ranked := RankAssignees(members, category, weight)
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	return &best
}

// RankAssignees returns all eligible members ordered by projected
// load-to-capacity ratio. Used to surface alternatives in the preview.
func RankAssignees(members []entities.Member, _ entities.TaskCategory, weight entities.ChargeWeight) []uuid.UUID {
	type candidate struct {
		id    uuid.UUID
		ratio float64
		load  float64
		order int
	}

	var candidates []candidate
	for i, member := range members {
		if member.Capacity <= 0 {
			continue
		}
		projected := member.CurrentLoad + weight.Total
		if projected > member.Capacity {
			continue
		}
		candidates = append(candidates, candidate{
			id:    member.ID,
			ratio: projected / member.Capacity,
			load:  member.CurrentLoad,
			order: i,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ratio != b.ratio {
			return a.ratio < b.ratio
		}
		if a.load != b.load {
			return a.load < b.load
		}
		return a.order < b.order
	})

	ranked := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.id
	}
	return ranked
}
