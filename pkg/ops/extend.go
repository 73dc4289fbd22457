package ops

import (
	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
	"github.com/chazu/vellum/pkg/intersect"
)

// Extend lengthens the target line to the nearest boundary entity.
// The endpoint nearer the click point is the one extended; the chosen
// boundary intersection is the closest one lying beyond that endpoint
// along the line's ray. The second result is false when no boundary
// qualifies. Only lines can be extended.
func Extend(calc *intersect.Calculator, target entity.Entity, boundaries []entity.Entity, click geom.Vector2) (entity.Entity, bool, error) {
	line, err := asLine("extend", target)
	if err != nil {
		return nil, false, err
	}

	extendStart := click.DistanceSqTo(line.Start()) < click.DistanceSqTo(line.End())

	// Probe travels toward the endpoint being extended.
	probe := line
	if extendStart {
		probe = entity.NewLine(line.End(), line.Start())
	}

	var best geom.Vector2
	bestSq := -1.0
	anchor := probe.End()
	for _, b := range boundaries {
		if b.ID() == line.ID() {
			continue
		}
		hit, ok := calc.ExtendToEntity(probe, b)
		if !ok {
			continue
		}
		if d := anchor.DistanceSqTo(hit); bestSq < 0 || d < bestSq {
			best, bestSq = hit, d
		}
	}
	if bestSq < 0 {
		return nil, false, nil
	}

	if extendStart {
		return entity.NewLine(best, line.End()), true, nil
	}
	return entity.NewLine(line.Start(), best), true, nil
}
