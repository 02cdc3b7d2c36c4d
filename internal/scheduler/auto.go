// Package scheduler propagates dependency constraints: an incremental
// downstream BFS for fast drag-response (spec.md §4.3.1), and a full
// rule-aware topological recalculation (spec.md §4.3.2), plus the
// advisory capacity sweep (spec.md §4.3.3). Every exported function is a
// pure function of its arguments — no package state, no I/O.
package scheduler

import "scheduled/internal/model"

// AutoSchedule applies newDates to movedID and propagates the change
// downstream through deps, preserving every target's current duration in
// calendar days (spec.md §4.3.1). It does not consult rules at all — it
// is the fast, visual drag-response path; Recalculate is the rule-aware
// one.
func AutoSchedule(movedID string, newDates model.DateRange, features []model.Feature, deps []model.Dependency) []model.FeatureUpdate {
	byID := make(map[string]model.Feature, len(features))
	for _, f := range features {
		byID[f.ID] = f
	}
	if _, ok := byID[movedID]; !ok {
		return nil
	}

	forward := make(map[string][]model.Dependency)
	for _, d := range deps {
		forward[d.SourceID] = append(forward[d.SourceID], d)
	}

	var updates []model.FeatureUpdate

	moved := byID[movedID]
	moved.StartAt = newDates.StartAt
	moved.EndAt = newDates.EndAt
	byID[movedID] = moved
	updates = append(updates, model.FeatureUpdate{ID: movedID, StartAt: moved.StartAt, EndAt: moved.EndAt})

	visited := map[string]bool{movedID: true}
	queue := []string{movedID}

	for len(queue) > 0 {
		sourceID := queue[0]
		queue = queue[1:]
		source := byID[sourceID]

		for _, dep := range forward[sourceID] {
			target, ok := byID[dep.TargetID]
			if !ok {
				continue // missing predecessor/target: ignore this edge (spec.md §7)
			}
			duration := target.EndAt.Sub(target.StartAt)

			var start, end = target.StartAt, target.EndAt
			switch dep.Type {
			case model.FinishToStart:
				start = source.EndAt
				end = start.Add(duration)
			case model.StartToStart:
				start = source.StartAt
				end = start.Add(duration)
			case model.FinishToFinish:
				end = source.EndAt
				start = end.Add(-duration)
			case model.StartToFinish:
				end = source.StartAt
				start = end.Add(-duration)
			}

			if start.Equal(target.StartAt) && end.Equal(target.EndAt) {
				continue
			}

			target.StartAt = start
			target.EndAt = end
			byID[dep.TargetID] = target
			updates = append(updates, model.FeatureUpdate{ID: dep.TargetID, StartAt: start, EndAt: end})

			if !visited[dep.TargetID] {
				visited[dep.TargetID] = true
				queue = append(queue, dep.TargetID)
			}
		}
	}

	return updates
}
