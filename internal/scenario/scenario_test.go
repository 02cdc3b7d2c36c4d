package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduled/internal/model"
	"scheduled/internal/scenario"
)

func TestDefault_MatchesFSChainScenario(t *testing.T) {
	result := scenario.Default()
	require.Len(t, result.Features, 3)
	require.Len(t, result.Dependencies, 2)
	assert.Equal(t, "A", result.Features[0].ID)
	assert.Equal(t, model.FinishToStart, result.Dependencies[0].Type)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	result, err := scenario.Load("")
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), result)
}

func TestLoad_ParsesYAMLScenarioFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := []byte(`
features:
  - id: A
    name: Design
    start_at: "2026-01-01"
    end_at: "2026-01-05"
    owner_id: u1
  - id: B
    name: Build
    start_at: "2026-01-05"
    end_at: "2026-01-09"
    owner_id: u1
dependencies:
  - id: d1
    source_id: A
    target_id: B
    type: FS
rules:
  - id: r1
    type: slack
    name: buffer
    enabled: true
    config:
      days: 2
positions:
  A:
    left: 0
    top: 0
    width: 100
    height: 20
  B:
    left: 200
    top: 0
    width: 100
    height: 20
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	result, err := scenario.Load(path)
	require.NoError(t, err)

	require.Len(t, result.Features, 2)
	assert.Equal(t, "A", result.Features[0].ID)
	assert.Equal(t, "u1", result.Features[0].OwnerID)

	require.Len(t, result.Dependencies, 1)
	assert.Equal(t, model.FinishToStart, result.Dependencies[0].Type)

	require.Len(t, result.Rules, 1)
	assert.Equal(t, model.RuleSlack, result.Rules[0].Kind)
	require.NotNil(t, result.Rules[0].Slack)
	assert.Equal(t, 2, result.Rules[0].Slack.Days)

	require.Contains(t, result.Positions, "A")
	assert.Equal(t, 100.0, result.Positions["A"].Width)
}

func TestLoad_GeneratesIDsWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := []byte(`
features:
  - name: Design
    start_at: "2026-01-01"
    end_at: "2026-01-05"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	result, err := scenario.Load(path)
	require.NoError(t, err)
	require.Len(t, result.Features, 1)
	assert.NotEmpty(t, result.Features[0].ID)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := scenario.Load("/nonexistent/path/scenario.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidRuleConfigIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	data := []byte(`
rules:
  - id: r1
    type: slack
    name: bad
    enabled: true
    config:
      days: "not a number"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := scenario.Load(path)
	assert.Error(t, err)
}
