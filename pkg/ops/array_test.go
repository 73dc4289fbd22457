package ops

import (
	"math"
	"testing"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

func TestArrayRectangular(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	out, err := ArrayRectangular(l, 2, 3, geom.V(0, 10), geom.V(5, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("got %d entities, want 6", len(out))
	}
	// First cell sits at the source position.
	if got := out[0].(*entity.Line).Start(); !got.Equals(geom.V(0, 0), eps) {
		t.Errorf("first cell start = %v, want (0, 0)", got)
	}
	// Last cell: row 1, col 2.
	last := out[len(out)-1].(*entity.Line)
	if !last.Start().Equals(geom.V(10, 10), eps) {
		t.Errorf("last cell start = %v, want (10, 10)", last.Start())
	}
	// Every clone has a fresh identity.
	seen := map[entity.ID]bool{l.ID(): true}
	for _, e := range out {
		if seen[e.ID()] {
			t.Fatal("duplicate entity ID in array result")
		}
		seen[e.ID()] = true
	}
}

func TestArrayRectangularAngledRow(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	out, err := ArrayRectangular(l, 2, 1, geom.V(3, 4), geom.V(0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out[1].(*entity.Line).Start(); !got.Equals(geom.V(3, 4), eps) {
		t.Errorf("angled row start = %v, want (3, 4)", got)
	}
}

func TestArrayRectangularBadCountsDecline(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	out, err := ArrayRectangular(l, 0, 3, geom.V(0, 1), geom.V(1, 0))
	if err != nil || out != nil {
		t.Errorf("zero rows: got %v, %v, want nil, nil", out, err)
	}
}

func TestArrayPolarPartialSpan(t *testing.T) {
	// A point-ish line at (5, 0) swept a half turn in 3 steps lands at
	// 0, 90 and 180 degrees.
	l := entity.NewLine(geom.V(5, 0), geom.V(5.001, 0))
	out, err := ArrayPolar(l, geom.V(0, 0), 3, math.Pi, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d entities, want 3", len(out))
	}
	wants := []geom.Vector2{{X: 5, Y: 0}, {X: 0, Y: 5}, {X: -5, Y: 0}}
	for i, e := range out {
		got := e.(*entity.Line).Start()
		if !got.Equals(wants[i], 1e-6) {
			t.Errorf("clone %d at %v, want %v", i, got, wants[i])
		}
	}
}

func TestArrayPolarFullTurnAvoidsOverlap(t *testing.T) {
	l := entity.NewLine(geom.V(5, 0), geom.V(5.001, 0))
	out, err := ArrayPolar(l, geom.V(0, 0), 4, 2*math.Pi, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d entities, want 4", len(out))
	}
	// Full-turn spacing is span/count, so the last clone sits at 270
	// degrees, not back at the start.
	last := out[3].(*entity.Line).Start()
	if !last.Equals(geom.V(0, -5), 1e-6) {
		t.Errorf("last clone at %v, want (0, -5)", last)
	}
}

func TestArrayPolarWithoutRotation(t *testing.T) {
	// Clones keep their orientation; only their position moves along
	// the circle.
	l := entity.NewLine(geom.V(4, 0), geom.V(6, 0))
	out, err := ArrayPolar(l, geom.V(0, 0), 2, math.Pi, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	moved := out[1].(*entity.Line)
	dir := moved.End().Sub(moved.Start())
	if !dir.Equals(geom.V(2, 0), 1e-6) {
		t.Errorf("orientation changed: direction = %v, want (2, 0)", dir)
	}
	// Center translated to the opposite side.
	if got := moved.Midpoint(); !got.Equals(geom.V(-5, 0), 1e-6) {
		t.Errorf("midpoint = %v, want (-5, 0)", got)
	}
}

func TestArrayPathOpen(t *testing.T) {
	path, _ := entity.NewPolyline([]geom.Vector2{
		{X: 0, Y: 0}, {X: 10, Y: 0},
	}, false)
	l := entity.NewLine(geom.V(-0.5, 0), geom.V(0.5, 0))

	out, err := ArrayPath(l, path, 3, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d entities, want 3", len(out))
	}
	// Open paths include both ends: stations at 0, 5, 10.
	wants := []float64{0, 5, 10}
	for i, e := range out {
		if got := e.BoundingBox().Center().X; math.Abs(got-wants[i]) > 1e-6 {
			t.Errorf("station %d center = %v, want %v", i, got, wants[i])
		}
	}
}

func TestArrayPathClosedSpacing(t *testing.T) {
	// Unit square loop, perimeter 4, four stations one unit apart.
	path, _ := entity.NewPolyline([]geom.Vector2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, true)
	l := entity.NewLine(geom.V(-0.01, 0), geom.V(0.01, 0))

	out, err := ArrayPath(l, path, 4, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d entities, want 4", len(out))
	}
	wants := []geom.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i, e := range out {
		if got := e.BoundingBox().Center(); !got.Equals(wants[i], 1e-6) {
			t.Errorf("station %d center = %v, want %v", i, got, wants[i])
		}
	}
}

func TestArrayPathAligned(t *testing.T) {
	// L-shaped path: the last station sits on the vertical leg, so an
	// aligned clone is rotated a quarter turn.
	path, _ := entity.NewPolyline([]geom.Vector2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}, false)
	l := entity.NewLine(geom.V(-1, 0), geom.V(1, 0))

	out, err := ArrayPath(l, path, 3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := out[2].(*entity.Line)
	dir := last.End().Sub(last.Start()).Normalize()
	if !dir.Equals(geom.V(0, 1), 1e-6) {
		t.Errorf("aligned direction = %v, want (0, 1)", dir)
	}
}
