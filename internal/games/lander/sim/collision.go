package sim

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// parallelEpsilon is the determinant magnitude below which two segments are
// treated as parallel (or degenerate) and never intersect.
const parallelEpsilon = 1e-12

// SegmentsIntersect reports whether segment p1-p2 intersects segment q1-q2.
// It solves p1 + t·r = q1 + u·s for t, u in [0, 1].
func SegmentsIntersect(p1, p2, q1, q2 core.Vec2) bool {
	r := p2.Sub(p1)
	s := q2.Sub(q1)

	det := r.Cross(s)
	if math.Abs(det) < parallelEpsilon {
		return false
	}

	qp := q1.Sub(p1)
	t := qp.Cross(s) / det
	u := qp.Cross(r) / det
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// DetectCollision tests the craft silhouette against every segment of the
// world-space outline and returns the first intersecting segment in scan order.
func DetectCollision(c Craft, outline []core.Vec2) (int, bool) {
	n := len(outline)
	if n < 2 {
		return -1, false
	}

	corners := c.Corners()
	for i := 0; i < n; i++ {
		a := outline[i]
		b := outline[(i+1)%n]
		for e := 0; e < len(corners); e++ {
			if SegmentsIntersect(corners[e], corners[(e+1)%len(corners)], a, b) {
				return i, true
			}
		}
	}
	return -1, false
}

// DetectBodyCollision runs the edge test against the body's current outline.
// When no edge crosses but the craft center is already below the lowest
// surface point (the craft skipped through the ring within one step), the
// segment beneath the craft is reported instead.
func DetectBodyCollision(c Craft, body *Body) (int, bool) {
	if seg, ok := DetectCollision(c, body.Outline()); ok {
		return seg, true
	}
	if c.Pos.Distance(body.Center) < body.Surface.MinRadius() {
		return body.SegmentBeneath(c.Pos), true
	}
	return -1, false
}
