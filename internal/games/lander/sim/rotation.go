package sim

import "github.com/vovakirdan/tui-lander/internal/core"

// Rotate returns a copy of points rotated counter-clockwise by angle radians
// around center. The input slice is never modified.
func Rotate(points []core.Vec2, center core.Vec2, angle float64) []core.Vec2 {
	out := make([]core.Vec2, len(points))
	if angle == 0 {
		copy(out, points)
		return out
	}
	for i, p := range points {
		out[i] = p.Sub(center).Rotate(angle).Add(center)
	}
	return out
}

// Translate returns a copy of points shifted by offset.
func Translate(points []core.Vec2, offset core.Vec2) []core.Vec2 {
	out := make([]core.Vec2, len(points))
	for i, p := range points {
		out[i] = p.Add(offset)
	}
	return out
}
