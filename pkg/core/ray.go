package core

// Ray represents a ray with an origin and direction.
// Direction is expected to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// HitRecord describes the nearest intersection of a ray with the scene.
// ObjectIndex points into the scene's object slice and is only meaningful
// for the scene that produced the record.
type HitRecord struct {
	Point       Vec3    // Point of intersection
	Normal      Vec3    // Outward surface normal
	Inside      bool    // Ray started inside the object
	Distance    float64 // Distance along the ray, >= 0
	ObjectIndex int     // Index of the hit object in the scene
}

// EffectiveNormal returns the normal facing the side the ray came from
func (h HitRecord) EffectiveNormal() Vec3 {
	if h.Inside {
		return h.Normal.Negate()
	}
	return h.Normal
}
