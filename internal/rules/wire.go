package rules

import "scheduled/internal/model"

// These wire* types mirror the JSON Schema documents in schemas/*.json —
// snake_case field names matching what a host stores in config_blob — and
// each converts into the corresponding model payload used internally.

type wireDateOnly struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (w wireDateOnly) toModel() model.DateOnly {
	return model.DateOnly{Year: w.Year, Month: w.Month, Day: w.Day}
}

type wireMonthDay struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

type wireHoliday struct {
	Weekdays      []int          `json:"weekdays"`
	ExplicitDates []wireDateOnly `json:"explicit_dates"`
	Recurring     []wireMonthDay `json:"recurring"`
}

func (w wireHoliday) toModel() *model.HolidayRule {
	h := &model.HolidayRule{Weekdays: w.Weekdays}
	for _, d := range w.ExplicitDates {
		h.ExplicitDates = append(h.ExplicitDates, d.toModel())
	}
	for _, md := range w.Recurring {
		h.Recurring = append(h.Recurring, model.MonthDay{Month: md.Month, Day: md.Day})
	}
	return h
}

type wireBlackout struct {
	StartAt wireDateOnly `json:"start_at"`
	EndAt   wireDateOnly `json:"end_at"`
}

func (w wireBlackout) toModel() *model.BlackoutRule {
	return &model.BlackoutRule{StartAt: w.StartAt.toModel(), EndAt: w.EndAt.toModel()}
}

type wireFeaturePair struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

type wireSlack struct {
	Days             int                     `json:"days"`
	DependencyTypes  []model.DependencyType  `json:"dependency_types"`
	BetweenFeatures  []wireFeaturePair       `json:"between_features"`
}

func (w wireSlack) toModel() *model.SlackRule {
	s := &model.SlackRule{Days: w.Days, DependencyTypes: w.DependencyTypes}
	for _, p := range w.BetweenFeatures {
		s.BetweenFeatures = append(s.BetweenFeatures, model.FeaturePair{SourceID: p.SourceID, TargetID: p.TargetID})
	}
	return s
}

type wireLag struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Days     int    `json:"days"`
}

func (w wireLag) toModel() *model.LagRule {
	return &model.LagRule{SourceID: w.SourceID, TargetID: w.TargetID, Days: w.Days}
}

type wireConstraint struct {
	Kind       model.ConstraintKind `json:"kind"`
	FeatureIDs []string             `json:"feature_ids"`
}

func (w wireConstraint) toModel() *model.ConstraintRule {
	return &model.ConstraintRule{Kind: w.Kind, FeatureIDs: w.FeatureIDs}
}

type wireDuration struct {
	MinDays    int      `json:"min_days"`
	MaxDays    int      `json:"max_days"`
	FeatureIDs []string `json:"feature_ids"`
}

func (w wireDuration) toModel() *model.DurationRule {
	return &model.DurationRule{MinDays: w.MinDays, MaxDays: w.MaxDays, FeatureIDs: w.FeatureIDs}
}

type wireAlignment struct {
	Weekday    int      `json:"weekday"`
	FeatureIDs []string `json:"feature_ids"`
}

func (w wireAlignment) toModel() *model.AlignmentRule {
	return &model.AlignmentRule{Weekday: w.Weekday, FeatureIDs: w.FeatureIDs}
}

type wireCapacity struct {
	MaxConcurrent int                    `json:"max_concurrent"`
	GroupBy       model.CapacityGroupBy  `json:"group_by"`
}

func (w wireCapacity) toModel() *model.CapacityRule {
	return &model.CapacityRule{MaxConcurrent: w.MaxConcurrent, GroupBy: w.GroupBy}
}
