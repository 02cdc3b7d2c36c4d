// Package router computes orthogonal SVG paths between feature bars with
// obstacle avoidance (spec.md §4.4). Its two search primitives
// (findSafeHorizontalY, findSafeVerticalX) and its "step outward, test for
// collision, take the first safe candidate" shape are a direct
// generalization of the teacher repo's own collision-avoidance loop —
// compare calculateBestPositionsForCallouts and
// solveConstraintBasedPositioning in dBitech-timeline2svg/main.go, which
// do the same "try a step, test overlap, keep the first that clears" walk
// over 1-D text-box spacing instead of 2-D rectangle obstacles.
package router

import (
	"fmt"
	"strings"

	"scheduled/internal/model"
)

// FeaturePosition is the pixel rectangle of one feature bar, produced by
// the host renderer (spec.md §3).
type FeaturePosition struct {
	Left, Top, Width, Height float64
}

func (p FeaturePosition) centerY() float64 { return p.Top + p.Height/2 }
func (p FeaturePosition) right() float64   { return p.Left + p.Width }

// Obstacle is a margin-inflated bounding box used for collision avoidance
// (spec.md §3).
type Obstacle struct {
	Left, Top, Right, Bottom float64
}

const (
	padding     = 12.0
	margin      = 4.0
	sameRowSlop = 5.0
	stepSize    = 20.0
	maxSteps    = 20
)

// obstaclesFor inflates every feature position other than sourceID and
// targetID by margin on each side (spec.md §3, §4.4.2).
func obstaclesFor(positions map[string]FeaturePosition, sourceID, targetID string) []Obstacle {
	var out []Obstacle
	for id, p := range positions {
		if id == sourceID || id == targetID {
			continue
		}
		out = append(out, Obstacle{
			Left:   p.Left - margin,
			Top:    p.Top - margin,
			Right:  p.right() + margin,
			Bottom: p.Top + p.Height + margin,
		})
	}
	return out
}

// endpoints resolves the source/target (x, y) pair for dep's type
// according to the table in spec.md §4.4.1.
func endpoints(depType model.DependencyType, source, target FeaturePosition) (sx, sy, tx, ty float64) {
	sy = source.centerY()
	ty = target.centerY()
	switch depType {
	case model.FinishToStart:
		sx, tx = source.right(), target.Left
	case model.StartToStart:
		sx, tx = source.Left, target.Left
	case model.FinishToFinish:
		sx, tx = source.right(), target.right()
	case model.StartToFinish:
		sx, tx = source.Left, target.right()
	}
	return
}

// entersFromLeft reports whether depType's routing table enters the
// target bar from its left edge (spec.md §4.4.1) — true for FS and SS.
func entersFromLeft(depType model.DependencyType) bool {
	return depType == model.FinishToStart || depType == model.StartToStart
}

// ComputeDependencyPath returns the SVG polyline path string routing dep
// from its source bar to its target bar, or false if either endpoint has
// no known position (spec.md §4.4).
func ComputeDependencyPath(dep model.Dependency, positions map[string]FeaturePosition) (string, bool) {
	source, ok := positions[dep.SourceID]
	if !ok {
		return "", false
	}
	target, ok := positions[dep.TargetID]
	if !ok {
		return "", false
	}

	sx, sy, tx, ty := endpoints(dep.Type, source, target)
	obstacles := obstaclesFor(positions, dep.SourceID, dep.TargetID)
	dy := ty - sy

	if abs(dy) < sameRowSlop {
		return pathString(sx, sy, tx, ty), true
	}

	if entersFromLeft(dep.Type) {
		return routeLeftEntry(sx, sy, tx, ty, obstacles), true
	}
	return routeRightEntry(sx, sy, tx, ty, obstacles), true
}

func routeLeftEntry(sx, sy, tx, ty float64, obstacles []Obstacle) string {
	dx := tx - sx
	if dx > 2*padding {
		turnX := findSafeVerticalX(sx+padding, 1, minF(sy, ty), maxF(sy, ty), obstacles)
		return pathString(sx, sy, turnX, sy, turnX, ty, tx, ty)
	}

	direction := -1.0
	if ty > sy {
		direction = 1.0
	}
	midY := findSafeHorizontalY(sy, direction, minF(sx, tx)-padding, maxF(sx, tx)+padding, obstacles)

	x1 := sx + padding
	x2 := tx - padding
	return pathString(sx, sy, x1, sy, x1, midY, x2, midY, x2, ty, tx, ty)
}

func routeRightEntry(sx, sy, tx, ty float64, obstacles []Obstacle) string {
	if tx-sx > 0 {
		exitX := findSafeVerticalX(tx+padding, 1, minF(sy, ty), maxF(sy, ty), obstacles)
		return pathString(sx, sy, sx+padding, sy, exitX, sy, exitX, ty, tx, ty)
	}

	direction := -1.0
	if ty > sy {
		direction = 1.0
	}
	rightmost := maxF(sx, tx) + padding
	midY := findSafeHorizontalY(sy, direction, minF(sx, tx), rightmost, obstacles)

	return pathString(sx, sy, sx+padding, sy, sx+padding, midY, rightmost, midY, rightmost, ty, tx+padding, ty, tx, ty)
}

// findSafeHorizontalY steps from baseY by stepSize in direction, up to
// maxSteps iterations, returning the first Y whose horizontal segment
// [minX, maxX] at that height crosses no obstacle. Falls back to baseY if
// none is found within the step budget (spec.md §4.4.3).
func findSafeHorizontalY(baseY, direction, minX, maxX float64, obstacles []Obstacle) float64 {
	y := baseY
	for i := 0; i < maxSteps; i++ {
		if !horizontalCrossesAny(minX, maxX, y, obstacles) {
			return y
		}
		y += direction * stepSize
	}
	return baseY
}

// findSafeVerticalX is the vertical-segment mirror of
// findSafeHorizontalY (spec.md §4.4.3).
func findSafeVerticalX(baseX, direction, minY, maxY float64, obstacles []Obstacle) float64 {
	x := baseX
	for i := 0; i < maxSteps; i++ {
		if !verticalCrossesAny(x, minY, maxY, obstacles) {
			return x
		}
		x += direction * stepSize
	}
	return baseX
}

// horizontalCrossesAny reports whether the horizontal segment [minX, maxX]
// at height y intersects any obstacle. Obstacle edges are exclusive
// (spec.md §4.4.3): a segment lying exactly on an edge is not a collision,
// so endpoints touching a bar's own edge are never flagged.
func horizontalCrossesAny(minX, maxX, y float64, obstacles []Obstacle) bool {
	lo, hi := minF(minX, maxX), maxF(minX, maxX)
	for _, o := range obstacles {
		if y > o.Top && y < o.Bottom && hi > o.Left && lo < o.Right {
			return true
		}
	}
	return false
}

func verticalCrossesAny(x, minY, maxY float64, obstacles []Obstacle) bool {
	lo, hi := minF(minY, maxY), maxF(minY, maxY)
	for _, o := range obstacles {
		if x > o.Left && x < o.Right && hi > o.Top && lo < o.Bottom {
			return true
		}
	}
	return false
}

func pathString(coords ...float64) string {
	var b strings.Builder
	for i := 0; i+1 < len(coords); i += 2 {
		if i == 0 {
			b.WriteString(fmt.Sprintf("M %g %g", coords[i], coords[i+1]))
		} else {
			b.WriteString(fmt.Sprintf(" L %g %g", coords[i], coords[i+1]))
		}
	}
	return b.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
