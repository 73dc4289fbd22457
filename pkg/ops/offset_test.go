package ops

import (
	"math"
	"testing"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

func tol() geom.Tolerance { return geom.DefaultTolerance() }

func TestOffsetLineLeft(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	got, err := Offset(l, 2, SideLeft, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ol := got.(*entity.Line)
	if !ol.Start().Equals(geom.V(0, 2), eps) || !ol.End().Equals(geom.V(10, 2), eps) {
		t.Errorf("left offset = %v -> %v, want (0,2) -> (10,2)", ol.Start(), ol.End())
	}
}

func TestOffsetLineRoundTrip(t *testing.T) {
	l := entity.NewLine(geom.V(1, 2), geom.V(7, 5))
	left, err := Offset(l, 3, SideLeft, tol())
	if err != nil {
		t.Fatalf("left offset: %v", err)
	}
	back, err := Offset(left, 3, SideRight, tol())
	if err != nil {
		t.Fatalf("right offset: %v", err)
	}
	bl := back.(*entity.Line)
	if !bl.Start().Equals(l.Start(), 1e-9) || !bl.End().Equals(l.End(), 1e-9) {
		t.Errorf("round trip = %v -> %v, want original %v -> %v",
			bl.Start(), bl.End(), l.Start(), l.End())
	}
}

func TestOffsetNonPositiveDistanceDeclines(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(10, 0))
	got, err := Offset(l, 0, SideLeft, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("zero distance: got %v, want nil", got)
	}
	got, err = Offset(l, -1, SideLeft, tol())
	if err != nil || got != nil {
		t.Errorf("negative distance: got %v, %v, want nil, nil", got, err)
	}
}

func TestOffsetCircle(t *testing.T) {
	c, _ := entity.NewCircle(geom.V(0, 0), 5)

	// Left is outward: the radius grows.
	out, err := Offset(c, 2, SideLeft, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*entity.Circle).Radius(); math.Abs(got-7) > eps {
		t.Errorf("outward radius = %v, want 7", got)
	}

	in, err := Offset(c, 2, SideRight, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := in.(*entity.Circle).Radius(); math.Abs(got-3) > eps {
		t.Errorf("inward radius = %v, want 3", got)
	}
}

func TestOffsetCircleCollapseDeclines(t *testing.T) {
	c, _ := entity.NewCircle(geom.V(0, 0), 2)
	got, err := Offset(c, 2, SideRight, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("collapsing inward offset: got %v, want nil", got)
	}
}

func TestOffsetRectangle(t *testing.T) {
	r := entity.NewRectangle(geom.V(0, 0), geom.V(10, 6))

	out, err := Offset(r, 1, SideLeft, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	box := out.BoundingBox()
	if !box.Min.Equals(geom.V(-1, -1), eps) || !box.Max.Equals(geom.V(11, 7), eps) {
		t.Errorf("outward rect = %v", box)
	}

	in, err := Offset(r, 1, SideRight, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ibox := in.BoundingBox()
	if !ibox.Min.Equals(geom.V(1, 1), eps) || !ibox.Max.Equals(geom.V(9, 5), eps) {
		t.Errorf("inward rect = %v", ibox)
	}
}

func TestOffsetRectangleCollapseDeclines(t *testing.T) {
	r := entity.NewRectangle(geom.V(0, 0), geom.V(4, 2))
	got, err := Offset(r, 1.5, SideRight, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("collapsing rect offset: got %v, want nil", got)
	}
}

func TestOffsetPolylineMiters(t *testing.T) {
	// L-shaped polyline along +x then +y. Offsetting left pushes both
	// segments outward and re-miters the shared corner.
	p, _ := entity.NewPolyline([]geom.Vector2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}, false)

	got, err := Offset(p, 1, SideLeft, tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op := got.(*entity.Polyline)
	if op.VertexCount() != 3 {
		t.Fatalf("vertex count = %d, want 3", op.VertexCount())
	}
	if !op.Vertex(0).Equals(geom.V(0, 1), eps) {
		t.Errorf("v0 = %v, want (0, 1)", op.Vertex(0))
	}
	// Mitered corner: intersection of y=1 and x=9.
	if !op.Vertex(1).Equals(geom.V(9, 1), eps) {
		t.Errorf("v1 = %v, want (9, 1)", op.Vertex(1))
	}
	if !op.Vertex(2).Equals(geom.V(9, 10), eps) {
		t.Errorf("v2 = %v, want (9, 10)", op.Vertex(2))
	}
}

func TestOffsetArcUnsupported(t *testing.T) {
	a, _ := entity.NewArc(geom.V(0, 0), 1, 0, 1, true)
	_, err := Offset(a, 1, SideLeft, tol())
	if err == nil {
		t.Error("expected error for arc offset")
	}
}

func TestOffsetToward(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(10, 0))

	up, err := OffsetToward(l, 2, geom.V(5, 5), tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := up.(*entity.Line).Start(); !got.Equals(geom.V(0, 2), eps) {
		t.Errorf("toward above: start = %v, want (0, 2)", got)
	}

	down, err := OffsetToward(l, 2, geom.V(5, -5), tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := down.(*entity.Line).Start(); !got.Equals(geom.V(0, -2), eps) {
		t.Errorf("toward below: start = %v, want (0, -2)", got)
	}
}

func TestOffsetTowardCircle(t *testing.T) {
	c, _ := entity.NewCircle(geom.V(0, 0), 5)

	// Reference inside the circle offsets inward.
	in, err := OffsetToward(c, 1, geom.V(0, 0), tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := in.(*entity.Circle).Radius(); math.Abs(got-4) > eps {
		t.Errorf("inward radius = %v, want 4", got)
	}

	out, err := OffsetToward(c, 1, geom.V(100, 0), tol())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*entity.Circle).Radius(); math.Abs(got-6) > eps {
		t.Errorf("outward radius = %v, want 6", got)
	}
}
