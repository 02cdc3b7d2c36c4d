package scheduler

import (
	"time"

	"scheduled/internal/calendar"
	"scheduled/internal/model"
	"scheduled/internal/rules"
)

// Recalculate re-derives every feature's dates from its predecessors,
// rule-aware and working-day based (spec.md §4.3.2). Updates are returned
// in topological processing order.
func Recalculate(features []model.Feature, deps []model.Dependency, ruleSet []model.SchedulingRule) []model.FeatureUpdate {
	reg := rules.New(ruleSet)
	cal := calendar.New(rules.NewHolidayAdapter(reg))

	byID := make(map[string]model.Feature, len(features))
	order := make([]string, 0, len(features))
	for _, f := range features {
		if _, exists := byID[f.ID]; !exists {
			order = append(order, f.ID)
		}
		byID[f.ID] = f
	}

	forward := make(map[string][]model.Dependency)
	reverse := make(map[string][]model.Dependency)
	indegree := make(map[string]int)
	for _, d := range deps {
		if _, ok := byID[d.SourceID]; !ok {
			continue
		}
		if _, ok := byID[d.TargetID]; !ok {
			continue
		}
		forward[d.SourceID] = append(forward[d.SourceID], d)
		reverse[d.TargetID] = append(reverse[d.TargetID], d)
		indegree[d.TargetID]++
	}

	topo := topologicalOrder(order, forward, indegree)

	var updates []model.FeatureUpdate

	for _, id := range topo {
		feature := byID[id]

		if reg.FeatureConstraint(id) != nil {
			continue // fixed_start, fixed_end, fixed_both all block recalculation (spec.md §4.3.2, §9)
		}

		incoming := reverse[id]
		if len(incoming) == 0 {
			continue
		}

		duration := cal.WorkingDaysBetween(feature.StartAt, feature.EndAt)

		var best time.Time
		haveCandidate := false
		for _, dep := range incoming {
			source, ok := byID[dep.SourceID]
			if !ok {
				continue // missing predecessor: ignore this edge (spec.md §7)
			}
			slack := reg.TotalSlackDays(dep.Type, dep.SourceID, id)
			candidate := candidateStart(dep.Type, source, slack, duration, cal)
			candidate = cal.AddWorkingDays(candidate, reg.LagDays(dep.SourceID, id))

			if !haveCandidate || candidate.After(best) {
				best = candidate
				haveCandidate = true
			}
		}
		if !haveCandidate {
			continue
		}
		newStart := best

		if align := reg.AlignmentDay(id); align != nil {
			newStart = snapForward(newStart, *align)
		}

		newEnd := cal.AddWorkingDays(newStart, duration)

		if !newStart.Equal(feature.StartAt) || !newEnd.Equal(feature.EndAt) {
			feature.StartAt = newStart
			feature.EndAt = newEnd
			byID[id] = feature
			updates = append(updates, model.FeatureUpdate{ID: id, StartAt: newStart, EndAt: newEnd})
		}
	}

	return updates
}

// candidateStart computes the pre-lag candidate start date for one
// incoming edge, per the per-type formulas of spec.md §4.3.2.
func candidateStart(depType model.DependencyType, source model.Feature, slack, duration int, cal *calendar.Calendar) time.Time {
	switch depType {
	case model.FinishToStart:
		return cal.AddWorkingDays(source.EndAt, slack)
	case model.StartToStart:
		return cal.AddWorkingDays(source.StartAt, slack)
	case model.FinishToFinish:
		end := cal.AddWorkingDays(source.EndAt, slack)
		return cal.SubtractWorkingDays(end, duration)
	case model.StartToFinish:
		end := cal.AddWorkingDays(source.StartAt, slack)
		return cal.SubtractWorkingDays(end, duration)
	default:
		return source.EndAt
	}
}

// snapForward advances start to the next occurrence of weekday, leaving it
// unchanged if it is already on it (spec.md §4.3.2, §9 "snaps forward").
func snapForward(start time.Time, weekday int) time.Time {
	for int(start.Weekday()) != weekday {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

// topologicalOrder starts from features with no incoming edges (roots)
// and DFS-walks forward through the forward map, emitting each walk in
// reverse post-order so every source precedes its dependents; it then
// appends any remaining feature (cyclic or disconnected) so every feature
// is still processed, in deterministic order for a given input order
// (spec.md §4.3.2).
func topologicalOrder(ids []string, forward map[string][]model.Dependency, indegree map[string]int) []string {
	visited := make(map[string]bool, len(ids))
	var out []string

	var post []string
	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range forward[id] {
			visit(dep.TargetID)
		}
		post = append(post, id)
	}
	flush := func() {
		for i := len(post) - 1; i >= 0; i-- {
			out = append(out, post[i])
		}
		post = post[:0]
	}

	for _, id := range ids {
		if indegree[id] == 0 {
			visit(id)
		}
	}
	flush()
	for _, id := range ids {
		visit(id) // remaining cyclic/disconnected nodes
	}
	flush()

	return out
}
