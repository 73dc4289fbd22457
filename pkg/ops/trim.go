package ops

import (
	"sort"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
	"github.com/chazu/vellum/pkg/intersect"
)

// paramEps is the minimum parametric spread between interval breaks;
// closer breaks collapse into one.
const paramEps = 1e-9

// Trim partitions the target line at every intersection with the
// cutter set and drops the sub-interval containing the click point,
// returning new lines for the surviving intervals. With no
// intersections the target is returned unchanged. Only lines can be
// trimmed.
func Trim(calc *intersect.Calculator, target entity.Entity, cutters []entity.Entity, click geom.Vector2) ([]entity.Entity, error) {
	line, err := asLine("trim", target)
	if err != nil {
		return nil, err
	}

	hits := calc.FindAll(line, cutters)
	if len(hits) == 0 {
		return []entity.Entity{target}, nil
	}

	// Interval breaks: 0, every hit parameter, 1.
	breaks := make([]float64, 0, len(hits)+2)
	breaks = append(breaks, 0)
	for _, h := range hits {
		breaks = append(breaks, h.T1)
	}
	breaks = append(breaks, 1)
	sort.Float64s(breaks)

	clickT := line.ParamAt(click)

	var out []entity.Entity
	dropped := false
	for i := 0; i+1 < len(breaks); i++ {
		lo, hi := breaks[i], breaks[i+1]
		if hi-lo < paramEps {
			continue
		}
		if !dropped && clickT >= lo && clickT <= hi {
			// The clicked interval is the one removed.
			dropped = true
			continue
		}
		out = append(out, entity.NewLine(line.PointAt(lo), line.PointAt(hi)))
	}
	return out, nil
}
