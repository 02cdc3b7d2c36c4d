package router_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduled/internal/model"
	"scheduled/internal/router"
)

func TestComputeDependencyPath_MissingPositionReturnsFalse(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	path, ok := router.ComputeDependencyPath(dep, map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
	})
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestComputeDependencyPath_SameRowIsDirectLine(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 100, Width: 50, Height: 20},
		"B": {Left: 200, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	assert.Equal(t, "M 50 110 L 200 110", path)
}

func TestComputeDependencyPath_FinishToStartDifferentRowsProducesPath(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 200, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(path, "M 50 10"))
	assert.Contains(t, path, "L")
}

func TestComputeDependencyPath_FinishToStartNarrowGapUsesSRoute(t *testing.T) {
	// target is to the left of / barely past source's right edge: dx <=
	// 2*padding forces the 5-segment S-route instead of the 3-segment one.
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 55, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	// 6 points (M + 5 L) for the S-route.
	assert.Equal(t, 5, strings.Count(path, "L"))
}

func TestComputeDependencyPath_FinishToStartWideGapUsesThreeSegmentRoute(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 500, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	assert.Equal(t, 3, strings.Count(path, "L"))
}

func TestComputeDependencyPath_FinishToFinishRightEntryWideProducesFourSegments(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToFinish}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 500, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	assert.Equal(t, 4, strings.Count(path, "L"))
}

func TestComputeDependencyPath_FinishToFinishRightEntryNarrowProducesSixSegments(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToFinish}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 500, Height: 20},
		"B": {Left: 0, Top: 100, Width: 50, Height: 20},
	}
	path, ok := router.ComputeDependencyPath(dep, positions)
	require.True(t, ok)
	assert.Equal(t, 6, strings.Count(path, "L"))
}

func TestComputeDependencyPath_Deterministic(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 200, Top: 100, Width: 50, Height: 20},
	}
	path1, _ := router.ComputeDependencyPath(dep, positions)
	path2, _ := router.ComputeDependencyPath(dep, positions)
	assert.Equal(t, path1, path2)
}

func TestCachingRouter_ReturnsSameResultAsUncached(t *testing.T) {
	dep := model.Dependency{ID: "d1", SourceID: "A", TargetID: "B", Type: model.FinishToStart}
	positions := map[string]router.FeaturePosition{
		"A": {Left: 0, Top: 0, Width: 50, Height: 20},
		"B": {Left: 200, Top: 100, Width: 50, Height: 20},
	}
	direct, directOK := router.ComputeDependencyPath(dep, positions)

	cache, err := router.NewCachingRouter(16)
	require.NoError(t, err)
	cached1, ok1 := cache.ComputeDependencyPath(dep, positions)
	cached2, ok2 := cache.ComputeDependencyPath(dep, positions) // second call hits the cache

	assert.Equal(t, directOK, ok1)
	assert.Equal(t, direct, cached1)
	assert.Equal(t, cached1, cached2)
	assert.Equal(t, ok1, ok2)
}
