package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/vellum/pkg/boundary"
	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
	"github.com/chazu/vellum/pkg/intersect"
	"github.com/chazu/vellum/pkg/ops"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Vellum Lisp source code before passing
// it to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals,
//     which would conflict with user-defined variables of the same
//     name.
//
//  2. Kebab-case to underscore: detect-rooms -> detect_rooms
//     zygomys does not allow hyphens in identifiers (it interprets
//     them as the subtraction operator).
//
// Both transformations respect string literal boundaries and line
// comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpEntityRef wraps an entity.ID so entities can be passed between
// builtins.
type sexpEntityRef struct {
	id   entity.ID
	kind entity.Kind
	name string // human-readable name for error messages
}

func (r *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(entref %s %q)", r.kind, r.name)
	}
	return fmt.Sprintf("(entref %s)", r.kind)
}
func (r *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by
// preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning
// the keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go
// slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloats extracts a flat number list.
func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(items))
	for _, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// degToRad converts DSL angles (degrees) to kernel radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinCtx carries the evaluation target through the builtins.
type builtinCtx struct {
	res  *Result
	calc *intersect.Calculator
}

// refOf wraps an entity into a ref and records it in the sketch.
func (c *builtinCtx) refOf(e entity.Entity, name string) (zygo.Sexp, error) {
	if name != "" {
		if err := c.res.Sketch.AddNamed(name, e); err != nil {
			return zygo.SexpNull, err
		}
	} else {
		c.res.Sketch.Add(e)
	}
	return &sexpEntityRef{id: e.ID(), kind: e.Kind(), name: name}, nil
}

// entOf resolves a ref Sexp to a live sketch entity.
func (c *builtinCtx) entOf(s zygo.Sexp) (entity.Entity, error) {
	ref, ok := s.(*sexpEntityRef)
	if !ok {
		return nil, fmt.Errorf("expected entity reference, got %T (%s)", s, s.SexpString(nil))
	}
	e := c.res.Sketch.Get(ref.id)
	if e == nil {
		return nil, fmt.Errorf("entity reference is stale (entity was removed)")
	}
	return e, nil
}

// entsOf resolves a list of refs.
func (c *builtinCtx) entsOf(s zygo.Sexp) ([]entity.Entity, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Entity, 0, len(items))
	for _, it := range items {
		e, err := c.entOf(it)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// replaceWith removes the originals and adds the replacements,
// returning an array of refs.
func (c *builtinCtx) replaceWith(env *zygo.Zlisp, originals []entity.Entity, replacements []entity.Entity) zygo.Sexp {
	for _, e := range originals {
		c.res.Sketch.Remove(e.ID())
	}
	refs := make([]zygo.Sexp, 0, len(replacements))
	for _, e := range replacements {
		c.res.Sketch.Add(e)
		refs = append(refs, &sexpEntityRef{id: e.ID(), kind: e.Kind()})
	}
	return &zygo.SexpArray{Val: refs, Env: env}
}

// optName extracts the :name keyword if present.
func optName(pa kwArgs) (string, error) {
	v, ok := pa.kw["name"]
	if !ok {
		return "", nil
	}
	return toString(v)
}

// registerBuiltins installs the drafting DSL builtins into a zygomys
// environment. The builtins operate on the provided result, populating
// its sketch during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable.
func registerBuiltins(env *zygo.Zlisp, res *Result) {
	ctx := &builtinCtx{
		res:  res,
		calc: intersect.NewCalculator(res.Sketch.Defaults.Tolerance),
	}

	// -----------------------------------------------------------------------
	// (line x1 y1 x2 y2 :name "wall-a")
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("line: want x1 y1 x2 y2, got %d args", len(pa.positional))
		}
		var coords [4]float64
		for i, p := range pa.positional {
			f, err := toFloat64(p)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("line: %w", err)
			}
			coords[i] = f
		}
		n, err := optName(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: name: %w", err)
		}
		return ctx.refOf(entity.NewLine(geom.V(coords[0], coords[1]), geom.V(coords[2], coords[3])), n)
	})

	// -----------------------------------------------------------------------
	// (circle cx cy r :name "col")
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("circle: want cx cy r, got %d args", len(pa.positional))
		}
		cx, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: cx: %w", err)
		}
		cy, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: cy: %w", err)
		}
		r, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: r: %w", err)
		}
		c, err := entity.NewCircle(geom.V(cx, cy), r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		n, err := optName(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: name: %w", err)
		}
		return ctx.refOf(c, n)
	})

	// -----------------------------------------------------------------------
	// (arc cx cy r start-deg end-deg :ccw true :name "corner")
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 5 {
			return zygo.SexpNull, fmt.Errorf("arc: want cx cy r start end, got %d args", len(pa.positional))
		}
		var vals [5]float64
		for i, p := range pa.positional {
			f, err := toFloat64(p)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: %w", err)
			}
			vals[i] = f
		}
		ccw := true
		if v, ok := pa.kw["ccw"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: ccw: %w", err)
			}
			ccw = b
		}
		a, err := entity.NewArc(geom.V(vals[0], vals[1]), vals[2], degToRad(vals[3]), degToRad(vals[4]), ccw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		n, err := optName(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: name: %w", err)
		}
		return ctx.refOf(a, n)
	})

	// -----------------------------------------------------------------------
	// (polyline [x y x y ...] :closed true :name "outline")
	// -----------------------------------------------------------------------
	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("polyline: want one coordinate list")
		}
		coords, err := toFloats(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
		}
		if len(coords)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polyline: odd coordinate count %d", len(coords))
		}
		verts := make([]geom.Vector2, 0, len(coords)/2)
		for i := 0; i < len(coords); i += 2 {
			verts = append(verts, geom.V(coords[i], coords[i+1]))
		}
		closed := false
		if v, ok := pa.kw["closed"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: closed: %w", err)
			}
			closed = b
		}
		p, err := entity.NewPolyline(verts, closed)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
		}
		n, err := optName(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polyline: name: %w", err)
		}
		return ctx.refOf(p, n)
	})

	// -----------------------------------------------------------------------
	// (rect x1 y1 x2 y2 :name "slab")
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("rect: want x1 y1 x2 y2, got %d args", len(pa.positional))
		}
		var coords [4]float64
		for i, p := range pa.positional {
			f, err := toFloat64(p)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rect: %w", err)
			}
			coords[i] = f
		}
		n, err := optName(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rect: name: %w", err)
		}
		return ctx.refOf(entity.NewRectangle(geom.V(coords[0], coords[1]), geom.V(coords[2], coords[3])), n)
	})

	// -----------------------------------------------------------------------
	// (offset ref dist :side :left)  or  (offset ref dist :toward [x y])
	// -----------------------------------------------------------------------
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("offset: want ref dist")
		}
		e, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		dist, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: dist: %w", err)
		}
		tol := ctx.res.Sketch.Defaults.Tolerance

		var out entity.Entity
		if v, ok := pa.kw["toward"]; ok {
			coords, err := toFloats(v)
			if err != nil || len(coords) != 2 {
				return zygo.SexpNull, fmt.Errorf("offset: toward wants [x y]")
			}
			out, err = ops.OffsetToward(e, dist, geom.V(coords[0], coords[1]), tol)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("offset: %w", err)
			}
		} else {
			side := ops.SideLeft
			if v, ok := pa.kw["side"]; ok {
				s, err := toKeywordString(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("offset: side: %w", err)
				}
				switch s {
				case "left":
					side = ops.SideLeft
				case "right":
					side = ops.SideRight
				default:
					return zygo.SexpNull, fmt.Errorf("offset: invalid side %q, expected left or right", s)
				}
			}
			out, err = ops.Offset(e, dist, side, tol)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("offset: %w", err)
			}
		}
		if out == nil {
			// Geometric decline (collapsed circle, bad distance).
			return zygo.SexpNull, nil
		}
		return ctx.refOf(out, "")
	})

	// -----------------------------------------------------------------------
	// (trim ref [cutter ...] cx cy)
	// -----------------------------------------------------------------------
	env.AddFunction("trim", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("trim: want ref cutters cx cy")
		}
		target, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: %w", err)
		}
		cutters, err := ctx.entsOf(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: cutters: %w", err)
		}
		cx, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: cx: %w", err)
		}
		cy, err := toFloat64(pa.positional[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: cy: %w", err)
		}
		result, err := ops.Trim(ctx.calc, target, cutters, geom.V(cx, cy))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: %w", err)
		}
		if len(result) == 1 && result[0] == target {
			// No intersections: target unchanged.
			return pa.positional[0], nil
		}
		return ctx.replaceWith(env, []entity.Entity{target}, result), nil
	})

	// -----------------------------------------------------------------------
	// (extend ref [boundary ...] cx cy)
	// -----------------------------------------------------------------------
	env.AddFunction("extend", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("extend: want ref boundaries cx cy")
		}
		target, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: %w", err)
		}
		bounds, err := ctx.entsOf(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: boundaries: %w", err)
		}
		cx, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: cx: %w", err)
		}
		cy, err := toFloat64(pa.positional[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: cy: %w", err)
		}
		out, ok, err := ops.Extend(ctx.calc, target, bounds, geom.V(cx, cy))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: %w", err)
		}
		if !ok {
			return zygo.SexpNull, nil
		}
		return ctx.replaceWith(env, []entity.Entity{target}, []entity.Entity{out}), nil
	})

	// -----------------------------------------------------------------------
	// (fillet refA refB radius)
	// -----------------------------------------------------------------------
	env.AddFunction("fillet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("fillet: want refA refB radius")
		}
		a, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		b, err := ctx.entOf(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		radius, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: radius: %w", err)
		}
		res, err := ops.Fillet(a, b, radius, ctx.res.Sketch.Defaults.Tolerance)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		if res == nil {
			return zygo.SexpNull, nil
		}
		return ctx.replaceWith(env, []entity.Entity{a, b},
			[]entity.Entity{res.LineA, res.LineB, res.Arc}), nil
	})

	// -----------------------------------------------------------------------
	// (chamfer refA refB dist [dist2])
	// -----------------------------------------------------------------------
	env.AddFunction("chamfer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 && len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("chamfer: want refA refB dist [dist2]")
		}
		a, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		b, err := ctx.entOf(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		d1, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: dist: %w", err)
		}
		d2 := d1
		if len(pa.positional) == 4 {
			d2, err = toFloat64(pa.positional[3])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chamfer: dist2: %w", err)
			}
		}
		res, err := ops.Chamfer(a, b, d1, d2, ctx.res.Sketch.Defaults.Tolerance)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		if res == nil {
			return zygo.SexpNull, nil
		}
		return ctx.replaceWith(env, []entity.Entity{a, b},
			[]entity.Entity{res.LineA, res.LineB, res.Chamfer}), nil
	})

	// -----------------------------------------------------------------------
	// (move [refs...] dx dy), (rotate [refs...] px py deg),
	// (scale [refs...] bx by sx sy), (mirror [refs...] px py dx dy)
	// -----------------------------------------------------------------------
	transformBuiltin := func(op string, wantArgs int,
		makeMatrix func(vals []float64) geom.Affine) {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) != wantArgs+1 {
				return zygo.SexpNull, fmt.Errorf("%s: want refs plus %d numbers", op, wantArgs)
			}
			targets, err := ctx.entsOf(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			vals := make([]float64, wantArgs)
			for i := 0; i < wantArgs; i++ {
				f, err := toFloat64(pa.positional[i+1])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
				}
				vals[i] = f
			}
			out, err := ops.Apply(targets, makeMatrix(vals))
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			return ctx.replaceWith(env, targets, out), nil
		})
	}

	transformBuiltin("move", 2, func(v []float64) geom.Affine {
		return geom.Translation(geom.V(v[0], v[1]))
	})
	transformBuiltin("rotate", 3, func(v []float64) geom.Affine {
		return geom.Rotation(geom.V(v[0], v[1]), degToRad(v[2]))
	})
	transformBuiltin("scale", 4, func(v []float64) geom.Affine {
		return geom.Scaling(geom.V(v[0], v[1]), v[2], v[3])
	})
	transformBuiltin("mirror", 4, func(v []float64) geom.Affine {
		return geom.Reflection(geom.V(v[0], v[1]), geom.V(v[2], v[3]))
	})

	// -----------------------------------------------------------------------
	// (align [refs...] :left|:right|:top|:bottom|:center-x|:center-y)
	// -----------------------------------------------------------------------
	env.AddFunction("align", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		// The edge keyword is a positional argument here, so the
		// kwargs pass is skipped.
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("align: want refs and an edge keyword")
		}
		targets, err := ctx.entsOf(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("align: %w", err)
		}
		edge, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("align: %w", err)
		}
		var mode ops.Alignment
		switch edge {
		case "left":
			mode = ops.AlignLeft
		case "right":
			mode = ops.AlignRight
		case "top":
			mode = ops.AlignTop
		case "bottom":
			mode = ops.AlignBottom
		case "center-x", "center_x":
			mode = ops.AlignCenterX
		case "center-y", "center_y":
			mode = ops.AlignCenterY
		default:
			return zygo.SexpNull, fmt.Errorf("align: unknown edge %q", edge)
		}
		out, err := ops.Align(targets, mode)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("align: %w", err)
		}
		return ctx.replaceWith(env, targets, out), nil
	})

	// -----------------------------------------------------------------------
	// (distribute [refs...] :x|:y)
	// -----------------------------------------------------------------------
	env.AddFunction("distribute", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("distribute: want refs and an axis keyword")
		}
		targets, err := ctx.entsOf(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distribute: %w", err)
		}
		axisName, err := toKeywordString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distribute: %w", err)
		}
		var axis ops.DistributeAxis
		switch axisName {
		case "x":
			axis = ops.DistributeX
		case "y":
			axis = ops.DistributeY
		default:
			return zygo.SexpNull, fmt.Errorf("distribute: unknown axis %q", axisName)
		}
		out, err := ops.Distribute(targets, axis)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distribute: %w", err)
		}
		return ctx.replaceWith(env, targets, out), nil
	})

	// -----------------------------------------------------------------------
	// (array-rect ref rows cols rdx rdy cdx cdy)
	// -----------------------------------------------------------------------
	env.AddFunction("array_rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 7 {
			return zygo.SexpNull, fmt.Errorf("array-rect: want ref rows cols rdx rdy cdx cdy")
		}
		e, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-rect: %w", err)
		}
		var vals [6]float64
		for i := 0; i < 6; i++ {
			f, err := toFloat64(pa.positional[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("array-rect: %w", err)
			}
			vals[i] = f
		}
		out, err := ops.ArrayRectangular(e, int(vals[0]), int(vals[1]),
			geom.V(vals[2], vals[3]), geom.V(vals[4], vals[5]))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-rect: %w", err)
		}
		return ctx.replaceWith(env, []entity.Entity{e}, out), nil
	})

	// -----------------------------------------------------------------------
	// (array-polar ref cx cy count span-deg :rotate-items true)
	// -----------------------------------------------------------------------
	env.AddFunction("array_polar", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 5 {
			return zygo.SexpNull, fmt.Errorf("array-polar: want ref cx cy count span")
		}
		e, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-polar: %w", err)
		}
		var vals [4]float64
		for i := 0; i < 4; i++ {
			f, err := toFloat64(pa.positional[i+1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("array-polar: %w", err)
			}
			vals[i] = f
		}
		rotateItems := true
		if v, ok := pa.kw["rotate-items"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("array-polar: rotate-items: %w", err)
			}
			rotateItems = b
		}
		out, err := ops.ArrayPolar(e, geom.V(vals[0], vals[1]), int(vals[2]),
			degToRad(vals[3]), rotateItems)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-polar: %w", err)
		}
		return ctx.replaceWith(env, []entity.Entity{e}, out), nil
	})

	// -----------------------------------------------------------------------
	// (array-path ref path-ref count :align true)
	// -----------------------------------------------------------------------
	env.AddFunction("array_path", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("array-path: want ref path-ref count")
		}
		e, err := ctx.entOf(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-path: %w", err)
		}
		pathEnt, err := ctx.entOf(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-path: %w", err)
		}
		path, ok := pathEnt.(*entity.Polyline)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("array-path: path must be a polyline, got %s", pathEnt.Kind())
		}
		count, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-path: count: %w", err)
		}
		align := false
		if v, ok := pa.kw["align"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("array-path: align: %w", err)
			}
			align = b
		}
		out, err := ops.ArrayPath(e, path, int(count), align)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array-path: %w", err)
		}
		return ctx.replaceWith(env, []entity.Entity{e}, out), nil
	})

	// -----------------------------------------------------------------------
	// (detect-rooms)
	// -----------------------------------------------------------------------
	env.AddFunction("detect_rooms", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		detector := boundary.NewDetector(ctx.res.Sketch.Defaults.Tolerance)
		found := detector.Detect(ctx.res.Sketch.All())
		boundary.CarryLabels(ctx.res.Boundaries, found)
		boundary.DefaultClassifier().Classify(found)
		ctx.res.Boundaries = found
		return &zygo.SexpInt{Val: int64(len(found))}, nil
	})
}
