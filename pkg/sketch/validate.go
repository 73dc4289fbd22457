package sketch

import (
	"fmt"
	"math"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationError is a blocking defect in the drawing.
type ValidationError struct {
	EntityID entity.ID
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string { return e.Message }

// ValidationWarning is an advisory finding that does not block edits.
type ValidationWarning struct {
	EntityID entity.ID
	Message  string
}

// Validate runs all document checks. Errors (non-finite coordinates)
// are blocking; degenerate but representable geometry (zero-length
// lines, zero-area rectangles) is reported as warnings only.
func (s *Sketch) Validate() ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	for _, e := range s.All() {
		errs = append(errs, validateFinite(e)...)
		warnings = append(warnings, validateDegenerate(e, s.Defaults.Tolerance)...)
	}
	return errs, warnings
}

func finite(v geom.Vector2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// validateFinite checks that every defining coordinate is a finite
// number.
func validateFinite(e entity.Entity) []ValidationError {
	box := e.BoundingBox()
	if finite(box.Min) && finite(box.Max) {
		return nil
	}
	return []ValidationError{{
		EntityID: e.ID(),
		Message:  fmt.Sprintf("%s has non-finite coordinates", e.Kind()),
		Severity: SeverityError,
	}}
}

// validateDegenerate flags geometry that queries tolerate but edits
// will decline.
func validateDegenerate(e entity.Entity, tol geom.Tolerance) []ValidationWarning {
	var warnings []ValidationWarning
	switch src := e.(type) {
	case *entity.Line:
		if src.Length() < tol.Distance {
			warnings = append(warnings, ValidationWarning{
				EntityID: e.ID(),
				Message:  fmt.Sprintf("line length is %.6f, effectively a point", src.Length()),
			})
		}
	case *entity.Rectangle:
		box := src.BoundingBox()
		if box.Width() < tol.Distance || box.Height() < tol.Distance {
			warnings = append(warnings, ValidationWarning{
				EntityID: e.ID(),
				Message:  fmt.Sprintf("rectangle is %.6f x %.6f, effectively degenerate", box.Width(), box.Height()),
			})
		}
	case *entity.Polyline:
		for i := 0; i < src.SegmentCount(); i++ {
			a, b := src.Segment(i)
			if a.DistanceTo(b) < tol.Distance {
				warnings = append(warnings, ValidationWarning{
					EntityID: e.ID(),
					Message:  fmt.Sprintf("polyline segment %d has zero length", i),
				})
			}
		}
	}
	return warnings
}
