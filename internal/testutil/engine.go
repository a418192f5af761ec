// Package testutil provides an in-memory projection engine for tests that
// must not depend on a system PROJ installation.
package testutil

import (
	"fmt"
	"strings"

	"crsconv/internal/transform"
)

// FakeCRS is a CRS known to FakeEngine.
type FakeCRS struct {
	DisplayName string
	CSKind      transform.Kind
}

// Name implements transform.CRS.
func (c FakeCRS) Name() string { return c.DisplayName }

// Kind implements transform.CRS.
func (c FakeCRS) Kind() transform.Kind { return c.CSKind }

// FakeEngine implements transform.Engine. Identifiers are matched case
// insensitively and the pipeline applies Func, the identity by default.
type FakeEngine struct {
	CRS      map[string]FakeCRS
	Func     func(x, y float64) (float64, float64, error)
	Accuracy float64

	Resolved []string
	Inputs   [][2]float64
	AlwaysXY bool
	Closed   bool
}

// NewFakeEngine returns an engine that knows a few common CRS.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		CRS: map[string]FakeCRS{
			"epsg:2178": {DisplayName: "ETRS89 / Poland CS2000 zone 7", CSKind: transform.KindOther},
			"epsg:2180": {DisplayName: "ETRS89 / Poland CS92", CSKind: transform.KindOther},
			"epsg:4258": {DisplayName: "ETRS89", CSKind: transform.KindEllipsoidal},
			"epsg:4326": {DisplayName: "WGS 84", CSKind: transform.KindEllipsoidal},
		},
		Accuracy: 1,
	}
}

// Resolve implements transform.Engine.
func (e *FakeEngine) Resolve(definition string) (transform.CRS, error) {
	e.Resolved = append(e.Resolved, definition)
	crs, ok := e.CRS[strings.ToLower(definition)]
	if !ok {
		return nil, fmt.Errorf("crs not found: %s", definition)
	}
	return crs, nil
}

// Pipeline implements transform.Engine.
func (e *FakeEngine) Pipeline(_, _ transform.CRS, alwaysXY bool) (transform.Pipeline, error) {
	e.AlwaysXY = alwaysXY
	return fakePipeline{engine: e}, nil
}

// Close implements transform.Engine.
func (e *FakeEngine) Close() {
	e.Closed = true
}

type fakePipeline struct {
	engine *FakeEngine
}

func (p fakePipeline) Transform(x, y float64) (float64, float64, error) {
	p.engine.Inputs = append(p.engine.Inputs, [2]float64{x, y})
	if p.engine.Func != nil {
		return p.engine.Func(x, y)
	}
	return x, y, nil
}

func (p fakePipeline) Accuracy() float64 {
	return p.engine.Accuracy
}
