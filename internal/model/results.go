package model

// CapacityWarning is emitted by scheduler.CheckCapacity when a resource's
// peak concurrency exceeds its configured maximum (spec.md §4.3.3). It is
// advisory only; nothing in the engine acts on it.
type CapacityWarning struct {
	ResourceID    string
	ResourceName  string
	ResourceKind  CapacityGroupBy
	MaxConcurrent int
	Actual        int
	FeatureNames  []string
}

// DurationValidation is the result of checking one feature against every
// applicable DurationRule (spec.md §4.2, "validate_duration"). Valid is
// false only on the first violation found; Message then explains why.
type DurationValidation struct {
	Valid   bool
	Min     *int
	Max     *int
	Message string
}
