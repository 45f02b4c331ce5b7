package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// IntersectDistance returns the distance along the ray to the visible
// surface of the sphere. Rays starting outside use the near root, rays
// starting inside use the far root. The ray direction must be unit length.
func (s Sphere) IntersectDistance(ray core.Ray) (float64, bool) {
	originToCenter := s.Center.Subtract(ray.Origin)
	projection := originToCenter.Dot(ray.Direction)
	squareRadius := s.Radius * s.Radius

	// Sphere lies behind an origin that is outside of it
	if projection <= 0 && squareRadius < originToCenter.LengthSquared() {
		return 0, false
	}

	// Squared distance from the center to the closest point on the ray
	perpendicular := originToCenter.Subtract(ray.Direction.Multiply(projection))
	squareDistance := perpendicular.LengthSquared()
	if squareDistance > squareRadius {
		return 0, false
	}

	displacement := math.Sqrt(squareRadius - squareDistance)
	if projection > displacement {
		return projection - displacement, true
	}
	return projection + displacement, true
}

// HitRecord builds the hit record for a known intersection distance
func (s Sphere) HitRecord(ray core.Ray, distance float64, objectIndex int) core.HitRecord {
	point := ray.At(distance)
	return core.HitRecord{
		Point:       point,
		Normal:      point.Subtract(s.Center).Normalize(),
		Inside:      s.Contains(ray.Origin),
		Distance:    distance,
		ObjectIndex: objectIndex,
	}
}

// Contains reports whether p lies strictly inside the sphere
func (s Sphere) Contains(p core.Vec3) bool {
	return p.Subtract(s.Center).LengthSquared() < s.Radius*s.Radius
}
