package ops

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

func TestFilletRightAngle(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))

	res, err := Fillet(a, b, 2, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a fillet result")
	}

	// For a right angle, the tangent points sit radius away from the
	// corner along each line.
	if !res.LineA.Start().Equals(geom.V(2, 0), eps) {
		t.Errorf("LineA tangency = %v, want (2, 0)", res.LineA.Start())
	}
	if !res.LineB.Start().Equals(geom.V(0, 2), eps) {
		t.Errorf("LineB tangency = %v, want (0, 2)", res.LineB.Start())
	}
	// Trimmed lines keep their far endpoints.
	if !res.LineA.End().Equals(geom.V(10, 0), eps) {
		t.Errorf("LineA far end = %v, want (10, 0)", res.LineA.End())
	}
	if !res.LineB.End().Equals(geom.V(0, 10), eps) {
		t.Errorf("LineB far end = %v, want (0, 10)", res.LineB.End())
	}

	if !res.Arc.Center().Equals(geom.V(2, 2), eps) {
		t.Errorf("arc center = %v, want (2, 2)", res.Arc.Center())
	}
	if math.Abs(res.Arc.Radius()-2) > eps {
		t.Errorf("arc radius = %v, want 2", res.Arc.Radius())
	}
	// Quarter-circle arc length.
	if got := res.Arc.Length(); math.Abs(got-2*math.Pi/2) > eps {
		t.Errorf("arc length = %v, want pi", got)
	}
}

func TestFilletArcTangency(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))

	res, err := Fillet(a, b, 3, tol())
	if err != nil || res == nil {
		t.Fatalf("fillet failed: %v", err)
	}
	// Arc endpoints coincide with the trimmed line tangent points.
	startsAtA := res.Arc.StartPoint().Equals(res.LineA.Start(), eps)
	endsAtB := res.Arc.EndPoint().Equals(res.LineB.Start(), eps)
	if !startsAtA || !endsAtB {
		t.Errorf("arc span %v -> %v does not meet tangent points %v, %v",
			res.Arc.StartPoint(), res.Arc.EndPoint(),
			res.LineA.Start(), res.LineB.Start())
	}
}

func TestFilletParallelDeclines(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 5), geom.V(10, 5))
	res, err := Fillet(a, b, 2, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Errorf("parallel lines: got %v, want nil", res)
	}
}

func TestFilletBadRadiusDeclines(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))
	res, err := Fillet(a, b, 0, tol())
	if err != nil || res != nil {
		t.Errorf("zero radius: got %v, %v, want nil, nil", res, err)
	}
}

func TestFilletNonLineRejected(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	c, _ := entity.NewCircle(geom.V(0, 0), 1)
	_, err := Fillet(a, c, 2, tol())
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

func TestChamferRightAngle(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))

	res, err := Chamfer(a, b, 2, 3, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a chamfer result")
	}
	if !res.Chamfer.Start().Equals(geom.V(2, 0), eps) {
		t.Errorf("chamfer start = %v, want (2, 0)", res.Chamfer.Start())
	}
	if !res.Chamfer.End().Equals(geom.V(0, 3), eps) {
		t.Errorf("chamfer end = %v, want (0, 3)", res.Chamfer.End())
	}
	if !res.LineA.Start().Equals(geom.V(2, 0), eps) || !res.LineA.End().Equals(geom.V(10, 0), eps) {
		t.Errorf("LineA = %v -> %v", res.LineA.Start(), res.LineA.End())
	}
	if !res.LineB.Start().Equals(geom.V(0, 3), eps) || !res.LineB.End().Equals(geom.V(0, 10), eps) {
		t.Errorf("LineB = %v -> %v", res.LineB.Start(), res.LineB.End())
	}
}

func TestChamferSymmetric(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))
	res, err := ChamferSymmetric(a, b, 2, tol())
	if err != nil || res == nil {
		t.Fatalf("chamfer failed: %v", err)
	}
	// Equal setbacks on a right angle give a 45-degree chamfer of
	// length 2*sqrt(2).
	want := 2 * math.Sqrt2
	if got := res.Chamfer.Length(); math.Abs(got-want) > eps {
		t.Errorf("chamfer length = %v, want %v", got, want)
	}
}

func TestChamferAngle(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))
	// 45 degrees from line a with setback 2 gives an equal setback on b.
	res, err := ChamferAngle(a, b, 2, math.Pi/4, tol())
	if err != nil || res == nil {
		t.Fatalf("chamfer failed: %v", err)
	}
	if !res.Chamfer.End().Equals(geom.V(0, 2), eps) {
		t.Errorf("chamfer end = %v, want (0, 2)", res.Chamfer.End())
	}
}

func TestChamferBadDistanceDeclines(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	b := entity.NewLine(geom.V(0, 0), geom.V(0, 10))
	res, err := Chamfer(a, b, 0, 2, tol())
	if err != nil || res != nil {
		t.Errorf("zero distance: got %v, %v, want nil, nil", res, err)
	}
}
