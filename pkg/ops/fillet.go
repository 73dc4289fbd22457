package ops

import (
	"math"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// FilletResult is a fillet arc plus the two input lines trimmed back
// to its tangent points.
type FilletResult struct {
	Arc   *entity.Arc
	LineA *entity.Line
	LineB *entity.Line
}

// cornerFrame describes two lines meeting at a corner: the corner
// point, the unit directions from the corner toward each line's far
// endpoint, and those far endpoints.
type cornerFrame struct {
	corner     geom.Vector2
	dirA, dirB geom.Vector2
	farA, farB geom.Vector2
}

// cornerOf intersects the infinite extensions of two lines. The second
// result is false when they are parallel or either line degenerates.
func cornerOf(a, b *entity.Line, tol geom.Tolerance) (cornerFrame, bool) {
	da := a.End().Sub(a.Start())
	db := b.End().Sub(b.Start())
	corner, ok := infiniteIntersect(a.Start(), da, b.Start(), db, tol)
	if !ok {
		return cornerFrame{}, false
	}

	farOf := func(l *entity.Line) geom.Vector2 {
		if corner.DistanceSqTo(l.Start()) >= corner.DistanceSqTo(l.End()) {
			return l.Start()
		}
		return l.End()
	}
	farA, farB := farOf(a), farOf(b)

	dirA := farA.Sub(corner).Normalize()
	dirB := farB.Sub(corner).Normalize()
	if dirA.LengthSq() == 0 || dirB.LengthSq() == 0 {
		return cornerFrame{}, false
	}
	// Collinear through the corner: no wedge to fill.
	if math.Abs(dirA.Cross(dirB)) < tol.Cross {
		return cornerFrame{}, false
	}
	return cornerFrame{corner: corner, dirA: dirA, dirB: dirB, farA: farA, farB: farB}, true
}

// Fillet rounds the corner between two lines with an arc of the given
// radius and trims both lines to the tangent points. Parallel or
// collinear lines and a non-positive radius decline with a nil result;
// non-line inputs are a caller error.
func Fillet(a, b entity.Entity, radius float64, tol geom.Tolerance) (*FilletResult, error) {
	lineA, err := asLine("fillet", a)
	if err != nil {
		return nil, err
	}
	lineB, err := asLine("fillet", b)
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, nil
	}

	frame, ok := cornerOf(lineA, lineB, tol)
	if !ok {
		return nil, nil
	}

	// Wedge angle between the outward directions.
	cos := math.Max(-1, math.Min(1, frame.dirA.Dot(frame.dirB)))
	theta := math.Acos(cos)

	// Tangent distance back from the corner along each line.
	d := radius / math.Tan(theta/2)
	tanA := frame.corner.Add(frame.dirA.Scale(d))
	tanB := frame.corner.Add(frame.dirB.Scale(d))

	// Arc center: perpendicular from a tangent point, on the wedge's
	// interior side (toward the other direction).
	perp := frame.dirA.Perpendicular()
	if perp.Dot(frame.dirB) < 0 {
		perp = perp.Neg()
	}
	center := tanA.Add(perp.Scale(radius))

	start := tanA.Sub(center).Angle()
	end := tanB.Sub(center).Angle()
	ccw := tanA.Sub(center).Cross(tanB.Sub(center)) > 0
	arc, err := entity.NewArc(center, radius, start, end, ccw)
	if err != nil {
		return nil, err
	}

	return &FilletResult{
		Arc:   arc,
		LineA: entity.NewLine(tanA, frame.farA),
		LineB: entity.NewLine(tanB, frame.farB),
	}, nil
}
