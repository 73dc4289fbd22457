package ops

import (
	"math"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// ChamferResult is a chamfer line plus the two input lines trimmed
// back to the chamfer points.
type ChamferResult struct {
	Chamfer *entity.Line
	LineA   *entity.Line
	LineB   *entity.Line
}

// Chamfer bevels the corner between two lines with a straight segment
// set back distA along the first line and distB along the second, and
// trims both lines to the chamfer points. Parallel or collinear lines
// and non-positive distances decline with a nil result; non-line
// inputs are a caller error.
func Chamfer(a, b entity.Entity, distA, distB float64, tol geom.Tolerance) (*ChamferResult, error) {
	lineA, err := asLine("chamfer", a)
	if err != nil {
		return nil, err
	}
	lineB, err := asLine("chamfer", b)
	if err != nil {
		return nil, err
	}
	if distA <= 0 || distB <= 0 {
		return nil, nil
	}

	frame, ok := cornerOf(lineA, lineB, tol)
	if !ok {
		return nil, nil
	}

	ptA := frame.corner.Add(frame.dirA.Scale(distA))
	ptB := frame.corner.Add(frame.dirB.Scale(distB))

	return &ChamferResult{
		Chamfer: entity.NewLine(ptA, ptB),
		LineA:   entity.NewLine(ptA, frame.farA),
		LineB:   entity.NewLine(ptB, frame.farB),
	}, nil
}

// ChamferSymmetric bevels with the same setback on both lines.
func ChamferSymmetric(a, b entity.Entity, dist float64, tol geom.Tolerance) (*ChamferResult, error) {
	return Chamfer(a, b, dist, dist, tol)
}

// ChamferAngle bevels with a setback of distA along the first line and
// an angle-derived setback distA*tan(angle) along the second.
func ChamferAngle(a, b entity.Entity, distA, angle float64, tol geom.Tolerance) (*ChamferResult, error) {
	return Chamfer(a, b, distA, distA*math.Tan(angle), tol)
}
