package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// HittableList is an ordered collection of shapes searched linearly.
// It is read-only once rendering starts.
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates a list holding the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *HittableList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes in the list
func (l *HittableList) Len() int {
	return len(l.Shapes)
}

// Hit returns the nearest intersection across all shapes.
// Equal distances resolve to the shape added first.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	hitAnything := false

	for _, shape := range l.Shapes {
		hit, isHit := shape.Hit(ray, tMin, closestSoFar)
		// tMax is inclusive, so a later shape at exactly the same t must not win
		if !isHit || (hitAnything && hit.T >= closestSoFar) {
			continue
		}
		hitAnything = true
		closestSoFar = hit.T
		closestHit = hit
	}

	return closestHit, hitAnything
}
