// Package proj binds the PROJ cartographic projections library (version 6.2
// and above) through cgo. It covers what a CRS-to-CRS conversion needs:
// resolving CRS definitions, reading their name and coordinate system type,
// building a transformation between two CRS and running it.
//
// See: https://proj.org/
package proj

/*
#cgo darwin pkg-config: proj
#cgo !darwin LDFLAGS: -lproj
#include "proj_go.h"
*/
import "C"

import (
	"errors"
	"runtime"
	"unsafe"
)

// Context owns every object created through it. Closing the context
// destroys the objects that are still open.
type Context struct {
	pjContext *C.PJ_CONTEXT
	opened    bool
	counter   uint64
	objects   map[uint64]*PJ
}

// PJ is a PROJ object: a CRS or a coordinate operation.
type PJ struct {
	pj      *C.PJ
	context *Context
	index   uint64
	opened  bool
}

// LibInfo describes the linked PROJ library.
type LibInfo struct {
	Major      int    // Major version number.
	Minor      int    // Minor version number.
	Patch      int    // Patch level of release.
	Release    string // Release info, e.g. “Rel. 9.4.0, March 1st, 2024”.
	Version    string // Text representation of the full version number, e.g. “9.4.0”.
	Searchpath string // Search path for PROJ resource files.
}

// ProjInfo describes a PJ object.
type ProjInfo struct {
	ID          string  // Short ID of the operation, e.g. “merc”.
	Description string  // Long description, for a CRS its name.
	Definition  string  // The proj-string of the object, if it has one.
	HasInverse  bool    // True if an inverse mapping of the operation exists.
	Accuracy    float64 // Expected accuracy of the transformation in metres. -1 if unknown.
}

// CSType is the type of a coordinate system.
type CSType int

// Coordinate system types distinguished by this package.
const (
	CSUnknown CSType = iota
	CSEllipsoidal
	CSOther
)

// The direction of a transformation
type Direction C.PJ_DIRECTION

const (
	Fwd   = Direction(C.PJ_FWD)   // Forward transformation
	Ident = Direction(C.PJ_IDENT) // Do nothing
	Inv   = Direction(C.PJ_INV)   // Inverse transformation
)

var (
	errContextClosed = errors.New("context is closed")
	errObjectClosed  = errors.New("object is closed")
	errNotCRS        = errors.New("not a coordinate reference system")
)

// NewContext creates a context.
func NewContext() *Context {
	ctx := Context{
		pjContext: C.proj_context_create(),
		objects:   make(map[uint64]*PJ),
		opened:    true,
	}
	runtime.SetFinalizer(&ctx, (*Context).Close)
	return &ctx
}

// Close destroys the context and every object still open in it.
func (ctx *Context) Close() {
	if !ctx.opened {
		return
	}

	indexen := make([]uint64, 0, len(ctx.objects))
	for i := range ctx.objects {
		indexen = append(indexen, i)
	}
	for _, i := range indexen {
		p := ctx.objects[i]
		if p.opened {
			C.proj_destroy(p.pj)
			p.context = nil
			p.opened = false
		}
		delete(ctx.objects, i)
	}

	C.proj_context_destroy(ctx.pjContext)
	ctx.pjContext = nil
	ctx.opened = false
}

// Create creates an object from a definition: an authority code such as
// "EPSG:4326", a proj-string, WKT or PROJJSON.
func (ctx *Context) Create(definition string) (*PJ, error) {
	if !ctx.opened {
		return nil, errContextClosed
	}

	cs := C.CString(definition)
	defer C.free(unsafe.Pointer(cs))

	return ctx.wrap(C.proj_create(ctx.pjContext, cs))
}

// CreateCRS creates an object from a definition and checks that it is a CRS.
func (ctx *Context) CreateCRS(definition string) (*PJ, error) {
	p, err := ctx.Create(definition)
	if err != nil {
		return nil, err
	}
	if !p.IsCRS() {
		p.Close()
		return nil, errNotCRS
	}
	return p, nil
}

// CRSToCRS creates the transformation from src to dst. When several
// operations are available PROJ picks one per transformed point.
func (ctx *Context) CRSToCRS(src, dst *PJ) (*PJ, error) {
	if !ctx.opened {
		return nil, errContextClosed
	}
	if !src.opened || !dst.opened {
		return nil, errObjectClosed
	}

	return ctx.wrap(C.proj_create_crs_to_crs_from_pj(ctx.pjContext, src.pj, dst.pj, nil, nil))
}

// NormalizeForVisualization returns a copy of the operation whose input and
// output axis order is longitude/latitude or easting/northing.
func (ctx *Context) NormalizeForVisualization(op *PJ) (*PJ, error) {
	if !ctx.opened {
		return nil, errContextClosed
	}
	if !op.opened {
		return nil, errObjectClosed
	}

	return ctx.wrap(C.proj_normalize_for_visualization(ctx.pjContext, op.pj))
}

func (ctx *Context) wrap(pj *C.PJ) (*PJ, error) {
	if C.pjnull(pj) != 0 {
		errno := C.proj_context_errno(ctx.pjContext)
		return nil, errors.New(C.GoString(C.proj_errno_string(errno)))
	}

	p := PJ{
		opened:  true,
		context: ctx,
		index:   ctx.counter,
		pj:      pj,
	}
	ctx.objects[ctx.counter] = &p
	ctx.counter++

	runtime.SetFinalizer(&p, (*PJ).Close)
	return &p, nil
}

// Close destroys the object.
func (p *PJ) Close() {
	if !p.opened {
		return
	}

	C.proj_destroy(p.pj)
	if p.context.opened {
		delete(p.context.objects, p.index)
	}
	p.context = nil
	p.opened = false
}

// IsCRS reports whether the object is a coordinate reference system.
func (p *PJ) IsCRS() bool {
	return p.opened && C.proj_is_crs(p.pj) != 0
}

// Name returns the name of the object, empty if it has none.
func (p *PJ) Name() string {
	if !p.opened {
		return ""
	}
	return C.GoString(C.proj_get_name(p.pj))
}

// CoordinateSystemType returns the type of the coordinate system of a CRS.
// Bound CRS report the type of their source CRS; compound CRS and non-CRS
// objects report CSUnknown.
func (p *PJ) CoordinateSystemType() CSType {
	if !p.opened || !p.context.opened {
		return CSUnknown
	}

	switch C.crs_cs_type(p.context.pjContext, p.pj) {
	case 1:
		return CSEllipsoidal
	case 2:
		return CSOther
	default:
		return CSUnknown
	}
}

// Info returns information about the object.
func (p *PJ) Info() (ProjInfo, error) {
	if !p.opened {
		return ProjInfo{}, errObjectClosed
	}

	info := C.proj_pj_info(p.pj)
	return ProjInfo{
		ID:          C.GoString(info.id),
		Description: C.GoString(info.description),
		Definition:  C.GoString(info.definition),
		HasInverse:  info.has_inverse != 0,
		Accuracy:    float64(info.accuracy),
	}, nil
}

// Trans transforms a single coordinate.
func (p *PJ) Trans(direction Direction, u1, v1, w1, t1 float64) (u2, v2, w2, t2 float64, err error) {
	if !p.opened {
		return 0, 0, 0, 0, errObjectClosed
	}

	C.proj_errno_reset(p.pj)

	var u, v, w, t C.double
	C.trans(p.pj, C.PJ_DIRECTION(direction), C.double(u1), C.double(v1), C.double(w1), C.double(t1), &u, &v, &w, &t)

	if e := C.proj_errno(p.pj); e != 0 {
		return 0, 0, 0, 0, errors.New(C.GoString(C.proj_errno_string(e)))
	}

	return float64(u), float64(v), float64(w), float64(t), nil
}

// Info returns information about the linked PROJ library.
func Info() LibInfo {
	info := C.proj_info()
	return LibInfo{
		Major:      int(info.major),
		Minor:      int(info.minor),
		Patch:      int(info.patch),
		Release:    C.GoString(info.release),
		Version:    C.GoString(info.version),
		Searchpath: C.GoString(info.searchpath),
	}
}
