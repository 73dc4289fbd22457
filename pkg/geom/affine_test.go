package geom

import (
	"math"
	"testing"
)

func TestTranslation(t *testing.T) {
	m := Translation(V(3, -2))
	got := m.Apply(V(1, 1))
	if !got.Equals(V(4, -1), eps) {
		t.Errorf("Apply = %v, want (4, -1)", got)
	}
	// Vectors are unaffected by translation.
	if v := m.ApplyVector(V(1, 1)); !v.Equals(V(1, 1), eps) {
		t.Errorf("ApplyVector = %v, want (1, 1)", v)
	}
}

func TestRotationAboutPivot(t *testing.T) {
	m := Rotation(V(1, 1), math.Pi/2)
	// The pivot is fixed.
	if got := m.Apply(V(1, 1)); !got.Equals(V(1, 1), eps) {
		t.Errorf("pivot moved to %v", got)
	}
	if got := m.Apply(V(2, 1)); !got.Equals(V(1, 2), eps) {
		t.Errorf("Apply = %v, want (1, 2)", got)
	}
}

func TestScalingAboutBase(t *testing.T) {
	m := Scaling(V(1, 1), 2, 3)
	if got := m.Apply(V(1, 1)); !got.Equals(V(1, 1), eps) {
		t.Errorf("base moved to %v", got)
	}
	if got := m.Apply(V(2, 2)); !got.Equals(V(3, 4), eps) {
		t.Errorf("Apply = %v, want (3, 4)", got)
	}
}

func TestReflection(t *testing.T) {
	// Mirror across the vertical line x=2.
	m := Reflection(V(2, 0), V(0, 1))
	if got := m.Apply(V(0, 5)); !got.Equals(V(4, 5), eps) {
		t.Errorf("Apply = %v, want (4, 5)", got)
	}
	// Points on the mirror line are fixed.
	if got := m.Apply(V(2, 7)); !got.Equals(V(2, 7), eps) {
		t.Errorf("axis point moved to %v", got)
	}
	// Reflecting twice is the identity.
	twice := m.Mul(m)
	if got := twice.Apply(V(3, 4)); !got.Equals(V(3, 4), eps) {
		t.Errorf("double reflection = %v, want (3, 4)", got)
	}
}

func TestMulComposesRightToLeft(t *testing.T) {
	rot := Rotation(V(0, 0), math.Pi/2)
	tr := Translation(V(1, 0))
	// tr.Mul(rot): rotate first, then translate.
	m := tr.Mul(rot)
	got := m.Apply(V(1, 0))
	if !got.Equals(V(1, 1), eps) {
		t.Errorf("composed Apply = %v, want (1, 1)", got)
	}
}

func TestIsConformal(t *testing.T) {
	cases := []struct {
		name string
		m    Affine
		want bool
	}{
		{"identity", Identity(), true},
		{"rotation", Rotation(V(3, 3), 0.7), true},
		{"uniform scale", Scaling(V(0, 0), 2, 2), true},
		{"non-uniform scale", Scaling(V(0, 0), 2, 3), false},
		{"reflection", Reflection(V(0, 0), V(1, 1)), true},
	}
	for _, tc := range cases {
		if got := tc.m.IsConformal(1e-9); got != tc.want {
			t.Errorf("%s: IsConformal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScaleFactorAndDet(t *testing.T) {
	m := Scaling(V(0, 0), 2, 2)
	if got := m.ScaleFactor(); !near(got, 2) {
		t.Errorf("ScaleFactor = %v, want 2", got)
	}
	if got := m.Det(); !near(got, 4) {
		t.Errorf("Det = %v, want 4", got)
	}
	// Reflections have negative determinant.
	if d := Reflection(V(0, 0), V(1, 0)).Det(); d >= 0 {
		t.Errorf("reflection Det = %v, want negative", d)
	}
}
