package rules_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduled/internal/model"
	"scheduled/internal/rules"
)

func rawConfig(t *testing.T, kind model.RuleKind, config string) model.RawConfig {
	t.Helper()
	return model.RawConfig{
		ID:      "r1",
		Kind:    kind,
		Name:    "test rule",
		Enabled: true,
		Config:  json.RawMessage(config),
	}
}

func TestDecode_Holiday(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleHoliday, `{"weekdays":[0,6]}`))
	require.NoError(t, err)
	assert.Equal(t, model.RuleHoliday, rule.Kind)
	require.NotNil(t, rule.Holiday)
	assert.Equal(t, []int{0, 6}, rule.Holiday.Weekdays)
}

func TestDecode_Blackout(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleBlackout, `{"start_at":{"year":2026,"month":7,"day":1},"end_at":{"year":2026,"month":7,"day":10}}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Blackout)
	assert.Equal(t, 7, rule.Blackout.StartAt.Month)
}

func TestDecode_Slack(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleSlack, `{"days":3,"dependency_types":["FS"]}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Slack)
	assert.Equal(t, 3, rule.Slack.Days)
	assert.Equal(t, []model.DependencyType{model.FinishToStart}, rule.Slack.DependencyTypes)
}

func TestDecode_Lag(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleLag, `{"source_id":"A","target_id":"B","days":-2}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Lag)
	assert.Equal(t, -2, rule.Lag.Days)
}

func TestDecode_Constraint(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleConstraint, `{"kind":"fixed_both","feature_ids":["A","B"]}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Constraint)
	assert.Equal(t, model.FixedBoth, rule.Constraint.Kind)
}

func TestDecode_Duration(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleDuration, `{"min_days":1,"max_days":10}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Duration)
	assert.Equal(t, 1, rule.Duration.MinDays)
	assert.Equal(t, 10, rule.Duration.MaxDays)
}

func TestDecode_Alignment(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleAlignment, `{"weekday":1}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Alignment)
	assert.Equal(t, 1, rule.Alignment.Weekday)
}

func TestDecode_Capacity(t *testing.T) {
	rule, err := rules.Decode(rawConfig(t, model.RuleCapacity, `{"max_concurrent":2,"group_by":"owner"}`))
	require.NoError(t, err)
	require.NotNil(t, rule.Capacity)
	assert.Equal(t, 2, rule.Capacity.MaxConcurrent)
	assert.Equal(t, model.GroupByOwner, rule.Capacity.GroupBy)
}

func TestDecode_RejectsMissingRequiredField(t *testing.T) {
	_, err := rules.Decode(rawConfig(t, model.RuleLag, `{"source_id":"A","target_id":"B"}`)) // missing "days"
	assert.Error(t, err)
}

func TestDecode_RejectsAdditionalProperties(t *testing.T) {
	_, err := rules.Decode(rawConfig(t, model.RuleAlignment, `{"weekday":1,"bogus_field":true}`))
	assert.Error(t, err)
}

func TestDecode_RejectsUnknownKind(t *testing.T) {
	_, err := rules.Decode(rawConfig(t, model.RuleKind("not_a_real_kind"), `{}`))
	assert.Error(t, err)
}

func TestDecode_RejectsOutOfRangeWeekday(t *testing.T) {
	_, err := rules.Decode(rawConfig(t, model.RuleAlignment, `{"weekday":9}`))
	assert.Error(t, err)
}
