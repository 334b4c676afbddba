package particles

import (
	"math"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/geometry"
)

// Rect is an axis-aligned box in viewport pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the middle of the box.
func (r Rect) Center() geometry.Vector2D {
	return geometry.Vector2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Circle is the anchor circle used as the black hole boundary.
type Circle struct {
	Center geometry.Vector2D
	Radius float64
}

const (
	mobileAnchorScale  = 1.15
	desktopAnchorScale = 0.8
)

// AnchorCircle derives the anchor circle from an element's bounds. The radius
// grows with the larger side of the box and is wider on mobile viewports.
func AnchorCircle(bounds Rect, mobile bool) Circle {
	scale := desktopAnchorScale
	if mobile {
		scale = mobileAnchorScale
	}
	return Circle{
		Center: bounds.Center(),
		Radius: math.Max(bounds.Width, bounds.Height) * scale,
	}
}

// Contains reports whether p lies strictly inside the circle.
func (c Circle) Contains(p geometry.Vector2D) bool {
	return p.DistanceSquaredTo(c.Center) < c.Radius*c.Radius
}

// NearestEdgePoint returns the point of the circumference closest to p.
func (c Circle) NearestEdgePoint(p geometry.Vector2D) geometry.Vector2D {
	angle := p.AngleTo(c.Center)
	return c.Center.Sub(geometry.NewVectorPolar(c.Radius, angle))
}
