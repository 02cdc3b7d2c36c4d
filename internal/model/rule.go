package model

import "encoding/json"

// RuleKind is the closed set of scheduling rule kinds (spec.md §3,
// "Scheduling Rule"). Modeled as a tagged variant per the design note in
// spec.md §9 ("Polymorphism over rule kinds ... avoid class hierarchies"):
// one Kind discriminator plus one populated payload pointer, rather than a
// rule interface with eight implementations.
type RuleKind string

const (
	RuleHoliday    RuleKind = "holiday"
	RuleBlackout   RuleKind = "blackout"
	RuleSlack      RuleKind = "slack"
	RuleLag        RuleKind = "lag"
	RuleConstraint RuleKind = "constraint"
	RuleDuration   RuleKind = "duration"
	RuleAlignment  RuleKind = "alignment"
	RuleCapacity   RuleKind = "capacity"
)

// SchedulingRule carries exactly one non-nil payload matching Kind. The
// rule registry (internal/rules) switches on Kind and reads the matching
// field; it never inspects the others.
type SchedulingRule struct {
	ID      string
	Kind    RuleKind
	Enabled bool

	Holiday    *HolidayRule
	Blackout   *BlackoutRule
	Slack      *SlackRule
	Lag        *LagRule
	Constraint *ConstraintRule
	Duration   *DurationRule
	Alignment  *AlignmentRule
	Capacity   *CapacityRule
}

// HolidayRule blocks scheduling on a recurring or fixed calendar pattern.
// A rule usually sets one of the three fields; nothing enforces that, and
// every field that is set is applied.
type HolidayRule struct {
	Weekdays      []int        // 0=Sunday..6=Saturday
	ExplicitDates []DateOnly   // specific calendar dates
	Recurring     []MonthDay   // recurring (month, day) pairs, e.g. Dec 25 every year
}

// MonthDay is a recurring calendar anniversary (month 1-12, day 1-31).
type MonthDay struct {
	Month int
	Day   int
}

// BlackoutRule blocks an inclusive date range entirely.
type BlackoutRule struct {
	StartAt DateOnly
	EndAt   DateOnly
}

// SlackRule adds a buffer between a predecessor and its dependent. Scope is
// optional on both axes; an unscoped rule (both nil/empty) applies to every
// edge (spec.md §4.2).
type SlackRule struct {
	Days             int
	DependencyTypes  []DependencyType    // optional scope
	BetweenFeatures  []FeaturePair       // optional scope
}

// FeaturePair scopes a rule to one specific (source, target) edge.
type FeaturePair struct {
	SourceID string
	TargetID string
}

// LagRule is a signed working-day offset for one specific edge. Positive
// delays the target; negative lets it start before its predecessor
// finishes (lead/overlap).
type LagRule struct {
	SourceID string
	TargetID string
	Days     int
}

// ConstraintKind is the closed set of date-locking constraints.
type ConstraintKind string

const (
	FixedStart ConstraintKind = "fixed_start"
	FixedEnd   ConstraintKind = "fixed_end"
	FixedBoth  ConstraintKind = "fixed_both"
)

// ConstraintRule locks one or both ends of the features it applies to. An
// empty FeatureIDs means "applies to every feature" (spec.md §3).
type ConstraintRule struct {
	Kind       ConstraintKind
	FeatureIDs []string
}

// DurationRule bounds a feature's day count. Either bound may be zero,
// meaning "unbounded" on that side; both zero would be meaningless and is
// rejected by the rule config codec (internal/rules/decode.go), not by the
// registry itself.
type DurationRule struct {
	MinDays    int
	MaxDays    int
	FeatureIDs []string
}

// AlignmentRule snaps feature starts forward onto a fixed weekday.
type AlignmentRule struct {
	Weekday    int // 0=Sunday..6=Saturday
	FeatureIDs []string
}

// CapacityGroupBy selects how CapacityRule groups features for the sweep.
type CapacityGroupBy string

const (
	GroupByOwner CapacityGroupBy = "owner"
	GroupByGroup CapacityGroupBy = "group"
)

// CapacityRule is advisory: it produces warnings, never reschedules
// (spec.md §3, §4.3.3).
type CapacityRule struct {
	MaxConcurrent int
	GroupBy       CapacityGroupBy
}

// DateOnly is a day-resolution calendar date independent of time.Time's
// monotonic/location baggage, used inside rule payloads that are decoded
// from JSON/YAML where only Y-M-D matters.
type DateOnly struct {
	Year  int
	Month int
	Day   int
}

// RawConfig is the on-the-wire shape of a rule before it is decoded into a
// typed payload (spec.md §6, "config_blob"). The host persists rules this
// way; internal/rules.Decode turns one of these into a SchedulingRule.
type RawConfig struct {
	ID      string          `json:"id" yaml:"id"`
	Kind    RuleKind        `json:"type" yaml:"type"`
	Name    string          `json:"name" yaml:"name"`
	Enabled bool            `json:"enabled" yaml:"enabled"`
	Config  json.RawMessage `json:"config" yaml:"config"`
}
