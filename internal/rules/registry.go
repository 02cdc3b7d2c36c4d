// Package rules holds the Rule Registry (spec.md §4.2): it filters a
// caller-supplied rule set down to the enabled ones and answers the
// per-feature/per-pair queries the scheduler needs. It is pure — built
// once from a []model.SchedulingRule and queried any number of times.
package rules

import (
	"time"

	"scheduled/internal/model"
)

// Registry answers targeted rule queries against one fixed, enabled-only
// view of a rule set.
type Registry struct {
	all []model.SchedulingRule
}

// New filters nothing up front beyond what the helpers below check —
// Registry keeps every rule and re-checks Enabled per query, which is
// cheap at the sizes this engine operates on and keeps New a trivial
// constructor with no hidden precomputation to get wrong.
func New(rs []model.SchedulingRule) *Registry {
	return &Registry{all: rs}
}

// Rules returns every rule in the registry, enabled or not.
func (r *Registry) Rules() []model.SchedulingRule {
	return r.all
}

func scopeAllows(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func pairScoped(pairs []model.FeaturePair, sourceID, targetID string) bool {
	if len(pairs) == 0 {
		return true
	}
	for _, p := range pairs {
		if p.SourceID == sourceID && p.TargetID == targetID {
			return true
		}
	}
	return false
}

func typeScoped(types []model.DependencyType, t model.DependencyType) bool {
	if len(types) == 0 {
		return true
	}
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

// TotalSlackDays sums the Days of every enabled Slack rule whose scope
// (optional dependency types, optional feature-pair list) admits this
// edge. A slack rule with neither scope applies to every edge (spec.md
// §4.2).
func (r *Registry) TotalSlackDays(depType model.DependencyType, sourceID, targetID string) int {
	total := 0
	for _, rule := range r.all {
		if !rule.Enabled || rule.Kind != model.RuleSlack || rule.Slack == nil {
			continue
		}
		s := rule.Slack
		if typeScoped(s.DependencyTypes, depType) && pairScoped(s.BetweenFeatures, sourceID, targetID) {
			total += s.Days
		}
	}
	return total
}

// LagDays returns the signed days from the first matching enabled Lag
// rule for this exact (source, target) pair, or zero if none (spec.md
// §4.2).
func (r *Registry) LagDays(sourceID, targetID string) int {
	for _, rule := range r.all {
		if !rule.Enabled || rule.Kind != model.RuleLag || rule.Lag == nil {
			continue
		}
		if rule.Lag.SourceID == sourceID && rule.Lag.TargetID == targetID {
			return rule.Lag.Days
		}
	}
	return 0
}

// FeatureConstraint returns the first enabled Constraint rule whose
// allow-list contains featureID or is empty, or nil if none apply
// (spec.md §4.2).
func (r *Registry) FeatureConstraint(featureID string) *model.ConstraintRule {
	for _, rule := range r.all {
		if !rule.Enabled || rule.Kind != model.RuleConstraint || rule.Constraint == nil {
			continue
		}
		if scopeAllows(rule.Constraint.FeatureIDs, featureID) {
			return rule.Constraint
		}
	}
	return nil
}

// AlignmentDay returns the target weekday (0-6) from the first matching
// enabled Alignment rule, or nil if none apply (spec.md §4.2).
func (r *Registry) AlignmentDay(featureID string) *int {
	for _, rule := range r.all {
		if !rule.Enabled || rule.Kind != model.RuleAlignment || rule.Alignment == nil {
			continue
		}
		if scopeAllows(rule.Alignment.FeatureIDs, featureID) {
			weekday := rule.Alignment.Weekday
			return &weekday
		}
	}
	return nil
}

// ValidateDuration checks feature's current day count against every
// enabled Duration rule whose allow-list admits it, returning the first
// violation found, or a valid result if none fire (spec.md §4.2).
func (r *Registry) ValidateDuration(feature model.Feature) model.DurationValidation {
	actualDays := feature.DurationDays()
	for _, rule := range r.all {
		if !rule.Enabled || rule.Kind != model.RuleDuration || rule.Duration == nil {
			continue
		}
		d := rule.Duration
		if !scopeAllows(d.FeatureIDs, feature.ID) {
			continue
		}
		if d.MinDays > 0 && actualDays < d.MinDays {
			min := d.MinDays
			return model.DurationValidation{
				Valid:   false,
				Min:     &min,
				Message: "duration below minimum",
			}
		}
		if d.MaxDays > 0 && actualDays > d.MaxDays {
			max := d.MaxDays
			return model.DurationValidation{
				Valid:   false,
				Max:     &max,
				Message: "duration above maximum",
			}
		}
	}
	return model.DurationValidation{Valid: true}
}

// CapacityRules returns every enabled Capacity rule, for the scheduler's
// advisory sweep (spec.md §4.3.3).
func (r *Registry) CapacityRules() []model.CapacityRule {
	var out []model.CapacityRule
	for _, rule := range r.all {
		if rule.Enabled && rule.Kind == model.RuleCapacity && rule.Capacity != nil {
			out = append(out, *rule.Capacity)
		}
	}
	return out
}

// HolidayAdapter exposes the registry's enabled Holiday and Blackout
// rules as a calendar.HolidaySource, so internal/calendar stays unaware
// of model.SchedulingRule entirely.
type HolidayAdapter struct {
	reg *Registry
}

// NewHolidayAdapter wraps r for calendar.New.
func NewHolidayAdapter(r *Registry) HolidayAdapter {
	return HolidayAdapter{reg: r}
}

func (h HolidayAdapter) Weekdays() []int {
	var out []int
	for _, rule := range h.reg.all {
		if rule.Enabled && rule.Kind == model.RuleHoliday && rule.Holiday != nil {
			out = append(out, rule.Holiday.Weekdays...)
		}
	}
	return out
}

func (h HolidayAdapter) ExplicitDates() []time.Time {
	var out []time.Time
	for _, rule := range h.reg.all {
		if rule.Enabled && rule.Kind == model.RuleHoliday && rule.Holiday != nil {
			for _, d := range rule.Holiday.ExplicitDates {
				out = append(out, time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC))
			}
		}
	}
	return out
}

func (h HolidayAdapter) RecurringDates() []struct{ Month, Day int } {
	var out []struct{ Month, Day int }
	for _, rule := range h.reg.all {
		if rule.Enabled && rule.Kind == model.RuleHoliday && rule.Holiday != nil {
			for _, md := range rule.Holiday.Recurring {
				out = append(out, struct{ Month, Day int }{md.Month, md.Day})
			}
		}
	}
	return out
}

func (h HolidayAdapter) Blackouts() []struct{ Start, End time.Time } {
	var out []struct{ Start, End time.Time }
	for _, rule := range h.reg.all {
		if rule.Enabled && rule.Kind == model.RuleBlackout && rule.Blackout != nil {
			b := rule.Blackout
			out = append(out, struct{ Start, End time.Time }{
				Start: time.Date(b.StartAt.Year, time.Month(b.StartAt.Month), b.StartAt.Day, 0, 0, 0, 0, time.UTC),
				End:   time.Date(b.EndAt.Year, time.Month(b.EndAt.Month), b.EndAt.Day, 0, 0, 0, 0, time.UTC),
			})
		}
	}
	return out
}
