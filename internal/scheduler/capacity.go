package scheduler

import (
	"sort"

	"scheduled/internal/model"
	"scheduled/internal/rules"
)

// CheckCapacity runs the advisory peak-concurrency sweep for every enabled
// Capacity rule, grouping features by owner or group (spec.md §4.3.3). It
// never reschedules anything.
func CheckCapacity(features []model.Feature, ruleSet []model.SchedulingRule) []model.CapacityWarning {
	reg := rules.New(ruleSet)

	var warnings []model.CapacityWarning
	for _, rule := range reg.CapacityRules() {
		groups := groupFeatures(features, rule.GroupBy)
		for resourceID, group := range groups {
			peak, overlapping := peakConcurrency(group)
			if peak > rule.MaxConcurrent {
				warnings = append(warnings, model.CapacityWarning{
					ResourceID:    resourceID,
					ResourceName:  resourceID,
					ResourceKind:  rule.GroupBy,
					MaxConcurrent: rule.MaxConcurrent,
					Actual:        peak,
					FeatureNames:  overlapping,
				})
			}
		}
	}
	return warnings
}

func groupFeatures(features []model.Feature, by model.CapacityGroupBy) map[string][]model.Feature {
	groups := make(map[string][]model.Feature)
	for _, f := range features {
		var key string
		switch by {
		case model.GroupByOwner:
			key = f.OwnerID
		case model.GroupByGroup:
			key = f.GroupID
		}
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], f)
	}
	return groups
}

// peakConcurrency runs the +1/-1 sweep-line over a group's start/end
// events and returns the running maximum, along with the names of every
// feature present at the peak moment (spec.md §4.3.3).
func peakConcurrency(group []model.Feature) (int, []string) {
	type event struct {
		at    int64
		delta int
		name  string
	}
	events := make([]event, 0, len(group)*2)
	for _, f := range group {
		events = append(events, event{at: f.StartAt.Unix(), delta: 1, name: f.Name})
		events = append(events, event{at: f.EndAt.Unix(), delta: -1, name: f.Name})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].delta < events[j].delta // process -1 before +1 at shared instants
	})

	running := 0
	peak := 0
	active := map[string]bool{}
	var peakNames []string
	for _, e := range events {
		if e.delta > 0 {
			active[e.name] = true
		} else {
			delete(active, e.name)
		}
		running += e.delta
		if running > peak {
			peak = running
			peakNames = activeNames(active)
		}
	}
	if peak == 0 {
		for _, f := range group {
			peakNames = append(peakNames, f.Name)
		}
	}
	return peak, peakNames
}

func activeNames(active map[string]bool) []string {
	names := make([]string, 0, len(active))
	for name := range active {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDuration checks feature against every applicable Duration rule
// (spec.md §4.2). A thin wrapper so callers outside this package never
// need to construct a rules.Registry themselves.
func ValidateDuration(feature model.Feature, ruleSet []model.SchedulingRule) model.DurationValidation {
	return rules.New(ruleSet).ValidateDuration(feature)
}
