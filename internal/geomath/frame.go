package geomath

import (
	"math"

	"github.com/ctessum/geom"

	"planner.opentransit.org/internal/models"
)

// Frame is a local equirectangular projection anchored at a reference
// position. All polygon boolean operations happen in one frame so that the
// operands share planar coordinates; at city scale the distortion of this
// projection is far below the 0.1% coverage noise floor.
type Frame struct {
	ref    models.Position
	cosLat float64
}

// NewFrame returns a planar frame anchored at ref.
func NewFrame(ref models.Position) Frame {
	return Frame{ref: ref, cosLat: math.Cos(ref.Lat * math.Pi / 180)}
}

// Project converts a geographic position into planar meters relative to the
// frame's reference point.
func (f Frame) Project(p models.Position) geom.Point {
	return geom.Point{
		X: (p.Lng - f.ref.Lng) * metersPerDegree * f.cosLat,
		Y: (p.Lat - f.ref.Lat) * metersPerDegree,
	}
}

// Polygon converts a ring into a single-ring planar polygon, closing it if
// the last vertex does not repeat the first.
func (f Frame) Polygon(ring []models.Position) geom.Polygon {
	if len(ring) < 3 {
		return nil
	}
	pts := make([]geom.Point, 0, len(ring)+1)
	for _, p := range ring {
		pts = append(pts, f.Project(p))
	}
	if pts[0] != pts[len(pts)-1] {
		pts = append(pts, pts[0])
	}
	return geom.Polygon{pts}
}

// RingArea returns the planar surface of the ring in square meters, or 0
// for degenerate input.
func (f Frame) RingArea(ring []models.Position) float64 {
	poly := f.Polygon(ring)
	if poly == nil {
		return 0
	}
	return safeArea(func() float64 { return poly.Area() })
}

// Contains reports whether p lies inside the ring, boundary inclusive.
func (f Frame) Contains(p models.Position, ring []models.Position) bool {
	poly := f.Polygon(ring)
	if poly == nil {
		return false
	}
	return f.Project(p).Within(poly) != geom.Outside
}

// IntersectionArea returns the planar area of the intersection of two rings
// in square meters; 0 when they are disjoint or either ring is degenerate.
func (f Frame) IntersectionArea(a, b []models.Position) float64 {
	pa, pb := f.Polygon(a), f.Polygon(b)
	if pa == nil || pb == nil {
		return 0
	}
	return safeArea(func() float64 { return pa.Intersection(pb).Area() })
}

// Union folds the rings into one planar polygonal. The union of zero rings
// is nil. A ring that cannot be combined (degenerate, self-intersecting) is
// skipped rather than aborting the whole union.
func (f Frame) Union(rings [][]models.Position) geom.Polygonal {
	var acc geom.Polygonal
	for _, ring := range rings {
		poly := f.Polygon(ring)
		if poly == nil {
			continue
		}
		if acc == nil {
			acc = poly
			continue
		}
		if merged := safeUnion(acc, poly); merged != nil {
			acc = merged
		}
	}
	return acc
}

// PolygonIntersectionArea returns the planar area of poly ∩ ring; 0 when
// disjoint, degenerate, or poly is nil.
func (f Frame) PolygonIntersectionArea(poly geom.Polygonal, ring []models.Position) float64 {
	pr := f.Polygon(ring)
	if poly == nil || pr == nil {
		return 0
	}
	return safeArea(func() float64 { return poly.Intersection(pr).Area() })
}

// Unproject converts a planar polygonal back into geographic rings, for
// handing union/catchment geometry to the map widget.
func (f Frame) Unproject(poly geom.Polygonal) [][]models.Position {
	if poly == nil {
		return nil
	}
	var rings [][]models.Position
	for _, p := range poly.Polygons() {
		for _, r := range p {
			ring := make([]models.Position, 0, len(r))
			for _, pt := range r {
				ring = append(ring, models.Position{
					Lat: f.ref.Lat + pt.Y/metersPerDegree,
					Lng: f.ref.Lng + pt.X/(metersPerDegree*f.cosLat),
				})
			}
			rings = append(rings, ring)
		}
	}
	return rings
}

// safeArea shields callers from panics in the clipping library on
// degenerate geometry; such input reports zero area instead.
func safeArea(fn func() float64) (area float64) {
	defer func() {
		if recover() != nil {
			area = 0
		}
	}()
	area = math.Abs(fn())
	if math.IsNaN(area) || math.IsInf(area, 0) {
		area = 0
	}
	return area
}

func safeUnion(a, b geom.Polygonal) (merged geom.Polygonal) {
	defer func() {
		if recover() != nil {
			merged = nil
		}
	}()
	return a.Union(b)
}
