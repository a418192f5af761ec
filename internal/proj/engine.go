package proj

import (
	"fmt"

	"crsconv/internal/transform"
)

// Engine implements transform.Engine on top of a PROJ context.
type Engine struct {
	ctx *Context
}

// NewEngine creates an engine with its own context.
func NewEngine() *Engine {
	return &Engine{ctx: NewContext()}
}

type crs struct {
	pj *PJ
}

func (c crs) Name() string {
	return c.pj.Name()
}

func (c crs) Kind() transform.Kind {
	if c.pj.CoordinateSystemType() == CSEllipsoidal {
		return transform.KindEllipsoidal
	}
	return transform.KindOther
}

type pipeline struct {
	op *PJ
}

func (p pipeline) Transform(x, y float64) (float64, float64, error) {
	x2, y2, _, _, err := p.op.Trans(Fwd, x, y, 0, 0)
	return x2, y2, err
}

func (p pipeline) Accuracy() float64 {
	info, err := p.op.Info()
	if err != nil {
		return -1
	}
	return info.Accuracy
}

// Resolve implements transform.Engine.
func (e *Engine) Resolve(definition string) (transform.CRS, error) {
	pj, err := e.ctx.CreateCRS(definition)
	if err != nil {
		return nil, err
	}
	return crs{pj: pj}, nil
}

// Pipeline implements transform.Engine. With alwaysXY the operation takes
// and returns longitude/latitude and easting/northing order.
func (e *Engine) Pipeline(src, dst transform.CRS, alwaysXY bool) (transform.Pipeline, error) {
	s, ok := src.(crs)
	if !ok {
		return nil, fmt.Errorf("source %q was not resolved by this engine", src.Name())
	}
	d, ok := dst.(crs)
	if !ok {
		return nil, fmt.Errorf("destination %q was not resolved by this engine", dst.Name())
	}

	op, err := e.ctx.CRSToCRS(s.pj, d.pj)
	if err != nil {
		return nil, err
	}

	if alwaysXY {
		normalized, err := e.ctx.NormalizeForVisualization(op)
		op.Close()
		if err != nil {
			return nil, err
		}
		op = normalized
	}

	return pipeline{op: op}, nil
}

// Close implements transform.Engine.
func (e *Engine) Close() {
	e.ctx.Close()
}
