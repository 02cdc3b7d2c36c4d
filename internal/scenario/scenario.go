// Package scenario decodes a YAML scenario document into the plain
// engine values the scheduler and router operate on (SPEC_FULL.md §4.5).
// Its Config-as-struct-with-yaml-tags shape and its "default scenario vs.
// named file" loading pattern both mirror the teacher repo's own
// Config/getDefaultConfig/loadConfig trio in
// dBitech-timeline2svg/main.go — the same structural role, generalized
// from timeline-rendering knobs to a full (features, dependencies, rules,
// positions) tuple.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"scheduled/internal/model"
	"scheduled/internal/router"
	"scheduled/internal/rules"
)

// Document is the on-disk YAML shape. Every field maps 1:1 onto a section
// of the scenario file, the way the teacher's Config maps 1:1 onto its own
// YAML config file.
type Document struct {
	Features     []featureDoc   `yaml:"features"`
	Dependencies []dependencyDoc `yaml:"dependencies"`
	Rules        []ruleDoc      `yaml:"rules"`
	Positions    map[string]positionDoc `yaml:"positions"`
}

type featureDoc struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	StartAt  string `yaml:"start_at"`
	EndAt    string `yaml:"end_at"`
	StatusID string `yaml:"status_id"`
	OwnerID  string `yaml:"owner_id"`
	GroupID  string `yaml:"group_id"`
}

type dependencyDoc struct {
	ID       string `yaml:"id"`
	SourceID string `yaml:"source_id"`
	TargetID string `yaml:"target_id"`
	Type     string `yaml:"type"`
	Color    string `yaml:"color"`
}

type ruleDoc struct {
	ID      string                 `yaml:"id"`
	Type    string                 `yaml:"type"`
	Name    string                 `yaml:"name"`
	Enabled bool                   `yaml:"enabled"`
	Config  map[string]interface{} `yaml:"config"`
}

type positionDoc struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Result is the fully decoded scenario, ready for the scheduler and
// router packages.
type Result struct {
	Features     []model.Feature
	Dependencies []model.Dependency
	Rules        []model.SchedulingRule
	Positions    map[string]router.FeaturePosition
}

// dateFormats mirrors the multi-format fallback the teacher's
// parseCSVRowConfigurable uses for its own timestamp column — a scenario
// author should not have to match one exact layout.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("scenario: unable to parse date %q: %w", s, lastErr)
}

// Load reads and decodes a scenario file from path. An empty path returns
// Default(), mirroring the teacher's loadConfig("") short-circuit.
func Load(path string) (Result, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("scenario: reading %q: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("scenario: parsing %q: %w", path, err)
	}
	return decode(doc)
}

func decode(doc Document) (Result, error) {
	var result Result

	for _, fd := range doc.Features {
		start, err := parseDate(fd.StartAt)
		if err != nil {
			return Result{}, err
		}
		end, err := parseDate(fd.EndAt)
		if err != nil {
			return Result{}, err
		}
		id := fd.ID
		if id == "" {
			id = uuid.NewString()
		}
		result.Features = append(result.Features, model.Feature{
			ID:       id,
			Name:     fd.Name,
			StartAt:  start,
			EndAt:    end,
			StatusID: fd.StatusID,
			OwnerID:  fd.OwnerID,
			GroupID:  fd.GroupID,
		})
	}

	for _, dd := range doc.Dependencies {
		id := dd.ID
		if id == "" {
			id = uuid.NewString()
		}
		result.Dependencies = append(result.Dependencies, model.Dependency{
			ID:       id,
			SourceID: dd.SourceID,
			TargetID: dd.TargetID,
			Type:     model.DependencyType(dd.Type),
			Color:    dd.Color,
		})
	}

	for _, rd := range doc.Rules {
		configJSON, err := json.Marshal(rd.Config)
		if err != nil {
			return Result{}, fmt.Errorf("scenario: re-encoding rule %q config: %w", rd.ID, err)
		}
		id := rd.ID
		if id == "" {
			id = uuid.NewString()
		}
		rule, err := rules.Decode(model.RawConfig{
			ID:      id,
			Kind:    model.RuleKind(rd.Type),
			Name:    rd.Name,
			Enabled: rd.Enabled,
			Config:  configJSON,
		})
		if err != nil {
			return Result{}, fmt.Errorf("scenario: decoding rule %q: %w", id, err)
		}
		result.Rules = append(result.Rules, rule)
	}

	if len(doc.Positions) > 0 {
		result.Positions = make(map[string]router.FeaturePosition, len(doc.Positions))
		for id, p := range doc.Positions {
			result.Positions[id] = router.FeaturePosition{
				Left: p.Left, Top: p.Top, Width: p.Width, Height: p.Height,
			}
		}
	}

	return result, nil
}

// Default returns a small built-in FS-chain scenario (spec.md §8, "S1 —
// FS chain, no rules") so the CLI has something runnable without a
// --scenario flag, the way getDefaultConfig gives the teacher's CLI a
// usable config with no --config flag.
func Default() Result {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return Result{
		Features: []model.Feature{
			{ID: "A", Name: "Design", StartAt: day(2026, 1, 1), EndAt: day(2026, 1, 5)},
			{ID: "B", Name: "Build", StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 12)},
			{ID: "C", Name: "Ship", StartAt: day(2026, 1, 20), EndAt: day(2026, 1, 25)},
		},
		Dependencies: []model.Dependency{
			{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart},
			{ID: "d2", SourceID: "B", TargetID: "C", Type: model.FinishToStart},
		},
	}
}
