// Package profile bridges closed 2D drafting geometry to solid models.
// A detected room boundary or closed polyline becomes a signed distance
// field polygon, which can be extruded to a 3D solid and tessellated
// into a triangle mesh for visualization or export.
package profile

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/vellum/pkg/boundary"
	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Profile is a closed 2D region backed by a signed distance field.
type Profile struct {
	s sdf.SDF2
}

// BoundingBox returns the axis-aligned bounds of the profile.
func (p *Profile) BoundingBox() geom.BoundingBox {
	bb := p.s.BoundingBox()
	return geom.NewBox(geom.V(bb.Min.X, bb.Min.Y), geom.V(bb.Max.X, bb.Max.Y))
}

// fromVertices builds a profile from a closed vertex loop.
func fromVertices(verts []geom.Vector2) (*Profile, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("profile: need at least 3 vertices, got %d", len(verts))
	}
	pts := make([]v2.Vec, 0, len(verts))
	for _, v := range verts {
		pts = append(pts, v2.Vec{X: v.X, Y: v.Y})
	}
	s, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &Profile{s: s}, nil
}

// FromBoundary builds a profile from a detected room boundary.
func FromBoundary(b boundary.DetectedBoundary) (*Profile, error) {
	return fromVertices(b.Vertices)
}

// FromPolyline builds a profile from a closed polyline. Open polylines
// are rejected since they do not enclose a region.
func FromPolyline(p *entity.Polyline) (*Profile, error) {
	if !p.Closed() {
		return nil, fmt.Errorf("profile: polyline is not closed")
	}
	return fromVertices(p.Vertices())
}

// FromRectangle builds a profile from a rectangle's corner loop.
func FromRectangle(r *entity.Rectangle) (*Profile, error) {
	c := r.Corners()
	return fromVertices(c[:])
}

// Extrude sweeps the profile along the Z axis to produce a solid of
// the given height. The solid spans z in [0, height].
func (p *Profile) Extrude(height float64) (*Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("profile: extrusion height must be positive, got %g", height)
	}
	s := sdf.Extrude3D(p.s, height)
	// sdf.Extrude3D centers the solid on z=0; shift so the profile
	// plane sits at the floor.
	m := sdf.Translate3d(vec3(0, 0, height/2))
	return &Solid{s: sdf.Transform3D(s, m)}, nil
}
