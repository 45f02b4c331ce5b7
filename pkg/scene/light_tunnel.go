package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/lights"
)

// Camera path used by the dolly animation through the tunnel
var (
	LightTunnelStart = core.NewVec3(60, 8, 0)
	LightTunnelEnd   = core.NewVec3(5, 8, 0)
)

// NewLightTunnelScene creates a closed box made of huge spheres holding a
// zigzag row of colored spheres lit by one bright point light
func NewLightTunnelScene() *Scene {
	camera := geometry.NewCamera(
		LightTunnelStart,
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
		60.0,
	)

	s := NewScene(camera)
	LoadDefaultMaterials(s)

	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(30.3, 10.3, 10.3)))

	// Floor, ceiling and three walls, open towards +X
	s.AddSphere(core.NewVec3(0, -10000, 0), 10000, "diffuse_white")
	s.AddSphere(core.NewVec3(0, 10010, 0), 10000, "diffuse_white")
	s.AddSphere(core.NewVec3(0, 0, 10010), 10000, "diffuse_white")
	s.AddSphere(core.NewVec3(0, 0, -10010), 10000, "diffuse_white")
	s.AddSphere(core.NewVec3(-10010, 0, 0), 10000, "diffuse_white")

	colors := []string{
		"diffuse_white", "diffuse_white", "diffuse_white", "diffuse_white",
		"diffuse_yellow", "diffuse_red", "diffuse_green", "diffuse_blue",
		"diffuse_yellow", "diffuse_red", "diffuse_green", "diffuse_blue",
	}
	for i, name := range colors {
		z := 5.0
		if i%2 == 1 {
			z = -5.0
		}
		s.AddSphere(core.NewVec3(float64(i+1)*5, 2, z), 5, name)
	}

	return s
}
