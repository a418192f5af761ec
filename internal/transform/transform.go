// Package transform is the facade over the projection engine. It resolves a
// source and a destination CRS, builds the transformation pipeline between
// them and exposes the metadata the command needs to format its output.
package transform

import (
	"math"
	"strconv"
	"strings"

	"crsconv/internal/errors"
)

// Kind classifies the coordinate system of a CRS.
type Kind int

// Only ellipsoidal (angular) coordinate systems are told apart; projected,
// cartesian and everything else share KindOther.
const (
	KindOther Kind = iota
	KindEllipsoidal
)

func (k Kind) String() string {
	if k == KindEllipsoidal {
		return "ellipsoidal"
	}
	return "other"
}

// Side selects the source or destination CRS of a Transformer.
type Side int

const (
	Source Side = iota
	Destination
)

// Engine resolves CRS identifiers and builds pipelines between them.
type Engine interface {
	Resolve(definition string) (CRS, error)
	Pipeline(src, dst CRS, alwaysXY bool) (Pipeline, error)
	Close()
}

// CRS is a resolved coordinate reference system.
type CRS interface {
	Name() string
	Kind() Kind
}

// Pipeline transforms coordinates from one CRS to another.
type Pipeline interface {
	Transform(x, y float64) (float64, float64, error)
	// Accuracy is the estimated accuracy in metres, negative when unknown.
	Accuracy() float64
}

// Accuracy is the accuracy estimate of a pipeline.
type Accuracy struct {
	Meters float64
	Known  bool
}

// NewAccuracy interprets a raw engine estimate, where negative means unknown.
func NewAccuracy(meters float64) Accuracy {
	if meters < 0 || math.IsNaN(meters) {
		return Accuracy{}
	}
	return Accuracy{Meters: meters, Known: true}
}

func (a Accuracy) String() string {
	if !a.Known {
		return "unknown"
	}
	return FormatNatural(a.Meters)
}

// Options selects the CRS pair of a Transformer.
type Options struct {
	Source      string
	Destination string
	// AlwaysXY forces longitude/latitude and easting/northing order instead
	// of the axis order defined by the CRS authority.
	AlwaysXY bool
}

// Result is the output of a single transformation.
type Result struct {
	X        float64
	Y        float64
	Accuracy Accuracy
}

// Transformer transforms coordinates between two resolved CRS.
type Transformer struct {
	engine   Engine
	src      CRS
	dst      CRS
	pipeline Pipeline
}

// New resolves both CRS identifiers and builds the pipeline between them.
// An identifier that does not resolve yields an InvalidCRSError naming it.
func New(engine Engine, opts Options) (*Transformer, error) {
	src, err := engine.Resolve(opts.Source)
	if err != nil {
		return nil, errors.NewInvalidCRSError(opts.Source, err)
	}

	dst, err := engine.Resolve(opts.Destination)
	if err != nil {
		return nil, errors.NewInvalidCRSError(opts.Destination, err)
	}

	pipeline, err := engine.Pipeline(src, dst, opts.AlwaysXY)
	if err != nil {
		return nil, errors.NewTransformError("no transformation from "+src.Name()+" to "+dst.Name(), err)
	}

	return &Transformer{
		engine:   engine,
		src:      src,
		dst:      dst,
		pipeline: pipeline,
	}, nil
}

// Transform runs (x, y) through the pipeline.
func (t *Transformer) Transform(x, y float64) (Result, error) {
	x2, y2, err := t.pipeline.Transform(x, y)
	if err != nil {
		return Result{}, errors.NewTransformError("transformation failed", err)
	}
	if !isFinite(x2) || !isFinite(y2) {
		return Result{}, errors.NewTransformError("transformation produced no valid coordinates", nil)
	}

	return Result{
		X:        x2,
		Y:        y2,
		Accuracy: t.Accuracy(),
	}, nil
}

// SourceName is the display name of the source CRS.
func (t *Transformer) SourceName() string {
	return t.src.Name()
}

// DestinationName is the display name of the destination CRS.
func (t *Transformer) DestinationName() string {
	return t.dst.Name()
}

// Kind returns the coordinate system kind of one side.
func (t *Transformer) Kind(side Side) Kind {
	if side == Source {
		return t.src.Kind()
	}
	return t.dst.Kind()
}

// Accuracy is the accuracy estimate of the chosen pipeline.
func (t *Transformer) Accuracy() Accuracy {
	return NewAccuracy(t.pipeline.Accuracy())
}

// Close releases the engine.
func (t *Transformer) Close() {
	t.engine.Close()
}

// FormatNatural renders v in its shortest round-trip form. Integral values
// keep a trailing ".0" and very large or very small magnitudes switch to
// scientific notation, so 5 prints as "5.0" and 1e16 as "1e+16".
func FormatNatural(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
