package ops

import (
	"math"
	"testing"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

func TestMoveClonesInputs(t *testing.T) {
	l := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	out, err := Move([]entity.Entity{l}, geom.V(5, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d entities, want 1", len(out))
	}
	moved := out[0].(*entity.Line)
	if !moved.Start().Equals(geom.V(5, 5), eps) {
		t.Errorf("moved start = %v, want (5, 5)", moved.Start())
	}
	// The original is untouched and the result has a new identity.
	if !l.Start().Equals(geom.V(0, 0), eps) {
		t.Errorf("original mutated: %v", l.Start())
	}
	if moved.ID() == l.ID() {
		t.Error("result shares ID with input")
	}
}

func TestRotateAboutPivot(t *testing.T) {
	l := entity.NewLine(geom.V(1, 0), geom.V(2, 0))
	out, err := Rotate([]entity.Entity{l}, geom.V(0, 0), math.Pi/2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := out[0].(*entity.Line)
	if !r.Start().Equals(geom.V(0, 1), eps) || !r.End().Equals(geom.V(0, 2), eps) {
		t.Errorf("rotated = %v -> %v", r.Start(), r.End())
	}
}

func TestScaleNonUniformRejectsCircle(t *testing.T) {
	c, _ := entity.NewCircle(geom.V(0, 0), 1)
	_, err := Scale([]entity.Entity{c}, geom.V(0, 0), 2, 3)
	if err == nil {
		t.Error("expected error scaling circle non-uniformly")
	}

	out, err := Scale([]entity.Entity{c}, geom.V(0, 0), 2, 2)
	if err != nil {
		t.Fatalf("uniform scale failed: %v", err)
	}
	if got := out[0].(*entity.Circle).Radius(); math.Abs(got-2) > eps {
		t.Errorf("scaled radius = %v, want 2", got)
	}
}

func TestMirror(t *testing.T) {
	l := entity.NewLine(geom.V(1, 0), geom.V(2, 0))
	// Mirror across the y axis.
	out, err := Mirror([]entity.Entity{l}, geom.V(0, 0), geom.V(0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out[0].(*entity.Line)
	if !m.Start().Equals(geom.V(-1, 0), eps) || !m.End().Equals(geom.V(-2, 0), eps) {
		t.Errorf("mirrored = %v -> %v", m.Start(), m.End())
	}
}

func TestMirrorPreservesArcOrientationFlip(t *testing.T) {
	a, _ := entity.NewArc(geom.V(0, 0), 1, 0, math.Pi/2, true)
	out, err := Mirror([]entity.Entity{a}, geom.V(0, 0), geom.V(0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ma := out[0].(*entity.Arc)
	// Reflection reverses winding; the sweep magnitude stays a quarter
	// turn.
	if ma.CCW() == a.CCW() {
		t.Error("expected winding flip under reflection")
	}
	if math.Abs(ma.Sweep()-math.Pi/2) > eps {
		t.Errorf("sweep = %v, want pi/2", ma.Sweep())
	}
}

func TestApplyAbortsOnError(t *testing.T) {
	c, _ := entity.NewCircle(geom.V(0, 0), 1)
	l := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	_, err := Apply([]entity.Entity{l, c}, geom.Scaling(geom.V(0, 0), 2, 3))
	if err == nil {
		t.Error("expected error when any entity rejects the transform")
	}
}

func TestAlignLeft(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(2, 0))
	b := entity.NewLine(geom.V(5, 3), geom.V(8, 3))
	out, err := Align([]entity.Entity{a, b}, AlignLeft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, e := range out {
		if got := e.BoundingBox().Min.X; math.Abs(got) > eps {
			t.Errorf("entity %d left edge = %v, want 0", i, got)
		}
	}
}

func TestAlignCenterY(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(2, 0))
	b := entity.NewLine(geom.V(0, 10), geom.V(2, 10))
	out, err := Align([]entity.Entity{a, b}, AlignCenterY)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, e := range out {
		if got := e.BoundingBox().Center().Y; math.Abs(got-5) > eps {
			t.Errorf("entity %d center y = %v, want 5", i, got)
		}
	}
}

func TestAlignSingleEntityNoOp(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(2, 0))
	out, err := Align([]entity.Entity{a}, AlignLeft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != entity.Entity(a) {
		t.Error("single-entity align should return inputs unchanged")
	}
}

func TestDistributeX(t *testing.T) {
	// Centers at 0, 1, 10: the middle entity moves to 5.
	mk := func(cx float64) entity.Entity {
		return entity.NewLine(geom.V(cx-0.5, 0), geom.V(cx+0.5, 0))
	}
	a, b, c := mk(0), mk(1), mk(10)
	out, err := Distribute([]entity.Entity{a, b, c}, DistributeX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Results keep input order.
	wants := []float64{0, 5, 10}
	for i, e := range out {
		if got := e.BoundingBox().Center().X; math.Abs(got-wants[i]) > eps {
			t.Errorf("entity %d center = %v, want %v", i, got, wants[i])
		}
	}
}

func TestDistributeTooFewNoOp(t *testing.T) {
	a := entity.NewLine(geom.V(0, 0), geom.V(1, 0))
	b := entity.NewLine(geom.V(5, 0), geom.V(6, 0))
	out, err := Distribute([]entity.Entity{a, b}, DistributeX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0] != entity.Entity(a) {
		t.Error("two-entity distribute should return inputs unchanged")
	}
}
