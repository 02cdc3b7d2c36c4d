package rules

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"scheduled/internal/model"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaNames = map[model.RuleKind]string{
	model.RuleHoliday:    "schemas/holiday.json",
	model.RuleBlackout:   "schemas/blackout.json",
	model.RuleSlack:      "schemas/slack.json",
	model.RuleLag:        "schemas/lag.json",
	model.RuleConstraint: "schemas/constraint.json",
	model.RuleDuration:   "schemas/duration.json",
	model.RuleAlignment:  "schemas/alignment.json",
	model.RuleCapacity:   "schemas/capacity.json",
}

var compiled = map[model.RuleKind]*jsonschema.Schema{}

func schemaFor(kind model.RuleKind) (*jsonschema.Schema, error) {
	if s, ok := compiled[kind]; ok {
		return s, nil
	}
	name, ok := schemaNames[kind]
	if !ok {
		return nil, fmt.Errorf("rules: unknown rule kind %q", kind)
	}
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("rules: reading schema for %q: %w", kind, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("rules: loading schema for %q: %w", kind, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("rules: compiling schema for %q: %w", kind, err)
	}
	compiled[kind] = schema
	return schema, nil
}

// Decode validates raw against the JSON Schema for kind and unmarshals it
// into a fully populated model.SchedulingRule (spec.md §6, "config_blob").
// This is boundary code, not engine code: a malformed config never reaches
// the registry, mirroring spec.md §7's note that invalid-shape data is the
// host's responsibility to reject before the engine sees it.
func Decode(raw model.RawConfig) (model.SchedulingRule, error) {
	schema, err := schemaFor(raw.Kind)
	if err != nil {
		return model.SchedulingRule{}, err
	}

	var instance interface{}
	if err := json.Unmarshal(raw.Config, &instance); err != nil {
		return model.SchedulingRule{}, fmt.Errorf("rules: decoding config for %q: %w", raw.ID, err)
	}
	if err := schema.Validate(instance); err != nil {
		return model.SchedulingRule{}, fmt.Errorf("rules: config for %q failed validation: %w", raw.ID, err)
	}

	rule := model.SchedulingRule{ID: raw.ID, Kind: raw.Kind, Enabled: raw.Enabled}
	switch raw.Kind {
	case model.RuleHoliday:
		var p wireHoliday
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Holiday = p.toModel()
	case model.RuleBlackout:
		var p wireBlackout
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Blackout = p.toModel()
	case model.RuleSlack:
		var p wireSlack
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Slack = p.toModel()
	case model.RuleLag:
		var p wireLag
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Lag = p.toModel()
	case model.RuleConstraint:
		var p wireConstraint
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Constraint = p.toModel()
	case model.RuleDuration:
		var p wireDuration
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		if p.MinDays == 0 && p.MaxDays == 0 {
			return model.SchedulingRule{}, fmt.Errorf("rules: duration config for %q has neither a min_days nor a max_days bound", raw.ID)
		}
		rule.Duration = p.toModel()
	case model.RuleAlignment:
		var p wireAlignment
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Alignment = p.toModel()
	case model.RuleCapacity:
		var p wireCapacity
		if err := json.Unmarshal(raw.Config, &p); err != nil {
			return model.SchedulingRule{}, err
		}
		rule.Capacity = p.toModel()
	default:
		return model.SchedulingRule{}, fmt.Errorf("rules: unknown rule kind %q", raw.Kind)
	}
	return rule, nil
}
