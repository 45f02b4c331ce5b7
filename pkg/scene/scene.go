package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/lights"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Default sky gradient colors
var (
	DefaultGradient1 = core.NewVec3(0.67, 0.84, 0.97)
	DefaultGradient2 = core.NewVec3(0.57, 0.63, 0.70)
)

// Object is a sphere paired with the material copied from the registry
type Object struct {
	Shape    geometry.Sphere
	Material material.Material
}

// Scene contains all the elements needed for rendering. It must not be
// mutated while a render is in progress.
type Scene struct {
	Camera    *geometry.Camera
	Objects   []Object       // Objects in the scene, indexed by HitRecord.ObjectIndex
	Lights    []lights.Light // Lights in the scene
	Gradient1 core.Vec3      // Sky color looking straight up or down
	Gradient2 core.Vec3      // Sky color at the horizon
	Materials *material.Registry
	Logger    core.Logger
}

// NewScene creates an empty scene with the default sky
func NewScene(camera *geometry.Camera) *Scene {
	return &Scene{
		Camera:    camera,
		Objects:   make([]Object, 0),
		Lights:    make([]lights.Light, 0),
		Gradient1: DefaultGradient1,
		Gradient2: DefaultGradient2,
		Materials: material.NewRegistry(),
		Logger:    core.NopLogger{},
	}
}

// AddMaterial registers a named material
func (s *Scene) AddMaterial(name string, m material.Material) {
	s.Materials.Add(name, m)
}

// Material looks up a material, falling back to material.Base
func (s *Scene) Material(name string) material.Material {
	m, ok := s.Materials.Get(name)
	if !ok {
		s.Logger.Printf("Material %q not found, using base material\n", name)
		return material.Base
	}
	return m
}

// AddSphere creates a sphere with a copy of the named material and
// returns its object index
func (s *Scene) AddSphere(center core.Vec3, radius float64, materialName string) int {
	s.Objects = append(s.Objects, Object{
		Shape:    geometry.NewSphere(center, radius),
		Material: s.Material(materialName),
	})
	return len(s.Objects) - 1
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Raycast finds the nearest object hit by the ray with a linear scan.
// Ties keep the earlier object.
func (s *Scene) Raycast(ray core.Ray) (core.HitRecord, bool) {
	closestIndex := -1
	closestDistance := 0.0
	for i := range s.Objects {
		distance, ok := s.Objects[i].Shape.IntersectDistance(ray)
		if !ok {
			continue
		}
		if closestIndex < 0 || distance < closestDistance {
			closestIndex = i
			closestDistance = distance
		}
	}

	if closestIndex < 0 {
		return core.HitRecord{}, false
	}
	return s.Objects[closestIndex].Shape.HitRecord(ray, closestDistance, closestIndex), true
}

// Sky returns the background color for a ray direction. The gradient uses
// |y| so it mirrors below the horizon.
func (s *Scene) Sky(direction core.Vec3) core.Vec3 {
	t := direction.Y
	if t < 0 {
		t = -t
	}
	return s.Gradient1.Multiply(t).Add(s.Gradient2.Multiply(1 - t))
}

// ObjectMaterial returns the material of the object a hit refers to
func (s *Scene) ObjectMaterial(hit core.HitRecord) material.Material {
	return s.Objects[hit.ObjectIndex].Material
}
