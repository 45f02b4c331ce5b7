package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/lights"
)

// NewSimpleScene creates one red sphere on a white ground under a single
// white light
func NewSimpleScene() *Scene {
	camera := geometry.NewCamera(
		core.NewVec3(0, 1.5, 6),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
		45.0,
	)

	s := NewScene(camera)
	LoadDefaultMaterials(s)

	s.AddLight(lights.NewPointLight(core.NewVec3(2, 6, 3), core.NewVec3(20, 20, 20)))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, "diffuse_white")
	s.AddSphere(core.NewVec3(0, 1, 0), 1, "diffuse_red")

	return s
}
