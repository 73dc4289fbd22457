package ops

import (
	"math"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// ArrayRectangular returns rows*cols clones of e laid out on the grid
// spanned by rowVec and colVec, the source position included as the
// first cell. The row vector may be angled. Non-positive counts
// decline with a nil result.
func ArrayRectangular(e entity.Entity, rows, cols int, rowVec, colVec geom.Vector2) ([]entity.Entity, error) {
	if rows < 1 || cols < 1 {
		return nil, nil
	}
	out := make([]entity.Entity, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			offset := rowVec.Scale(float64(r)).Add(colVec.Scale(float64(c)))
			clones, err := Move([]entity.Entity{e}, offset)
			if err != nil {
				return nil, err
			}
			out = append(out, clones[0])
		}
	}
	return out, nil
}

// ArrayPolar returns count clones of e spaced over span radians around
// center. With rotateItems each clone is rotated into place; without
// it clones are only translated along the arc, keeping their original
// orientation. A full-turn span spaces clones by span/count so the
// last clone does not land on the first.
func ArrayPolar(e entity.Entity, center geom.Vector2, count int, span float64, rotateItems bool) ([]entity.Entity, error) {
	if count < 1 {
		return nil, nil
	}

	var step float64
	switch {
	case count == 1:
		step = 0
	case math.Abs(math.Abs(span)-2*math.Pi) < 1e-9:
		step = span / float64(count)
	default:
		step = span / float64(count-1)
	}

	ref := e.BoundingBox().Center()
	out := make([]entity.Entity, 0, count)
	for i := 0; i < count; i++ {
		theta := step * float64(i)
		var (
			clones []entity.Entity
			err    error
		)
		if rotateItems {
			clones, err = Rotate([]entity.Entity{e}, center, theta)
		} else {
			delta := ref.RotateAround(center, theta).Sub(ref)
			clones, err = Move([]entity.Entity{e}, delta)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, clones[0])
	}
	return out, nil
}

// pathStation is a point on a polyline at a given arc length, with the
// local tangent direction.
type pathStation struct {
	point   geom.Vector2
	tangent geom.Vector2
}

// stationsAlong resamples the polyline at count evenly arc-length
// spaced stations. Closed paths space by length/count; open paths
// place the first station at the start and the last at the end.
func stationsAlong(path *entity.Polyline, count int) []pathStation {
	total := path.Length()
	if total == 0 || count < 1 {
		return nil
	}

	targets := make([]float64, count)
	if path.Closed() {
		for i := range targets {
			targets[i] = total * float64(i) / float64(count)
		}
	} else if count == 1 {
		targets[0] = 0
	} else {
		for i := range targets {
			targets[i] = total * float64(i) / float64(count-1)
		}
	}

	stations := make([]pathStation, 0, count)
	seg := 0
	segStartLen := 0.0
	a, b := path.Segment(0)
	segLen := a.DistanceTo(b)
	for _, s := range targets {
		for s > segStartLen+segLen && seg < path.SegmentCount()-1 {
			segStartLen += segLen
			seg++
			a, b = path.Segment(seg)
			segLen = a.DistanceTo(b)
		}
		t := 0.0
		if segLen > 0 {
			t = (s - segStartLen) / segLen
			if t > 1 {
				t = 1
			}
		}
		stations = append(stations, pathStation{
			point:   a.Lerp(b, t),
			tangent: b.Sub(a).Normalize(),
		})
	}
	return stations
}

// ArrayPath returns count clones of e placed at evenly arc-length
// spaced stations along the path, each clone centered on its station.
// With alignToPath each clone is additionally rotated to the local
// tangent. Non-positive counts and zero-length paths decline with a
// nil result.
func ArrayPath(e entity.Entity, path *entity.Polyline, count int, alignToPath bool) ([]entity.Entity, error) {
	stations := stationsAlong(path, count)
	if stations == nil {
		return nil, nil
	}

	ref := e.BoundingBox().Center()
	out := make([]entity.Entity, 0, count)
	for _, st := range stations {
		m := geom.Translation(st.point.Sub(ref))
		if alignToPath {
			m = geom.Rotation(st.point, st.tangent.Angle()).Mul(m)
		}
		clones, err := Apply([]entity.Entity{e}, m)
		if err != nil {
			return nil, err
		}
		out = append(out, clones[0])
	}
	return out, nil
}
