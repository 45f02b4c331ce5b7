package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/lights"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Portal pair positions of the showcase scene
var (
	ShowcasePortalA = core.NewVec3(0, 2, 0)
	ShowcasePortalB = core.NewVec3(100, 2, 0)
)

// ringRadius spaces the six spheres of each material ring
const ringRadius = 3.05

// NewShowcaseScene creates two islands joined by a portal pair: a metal
// ring with increasing fuzz and a glass ring with increasing index, each
// lit by three emissive spheres
func NewShowcaseScene() *Scene {
	camera := geometry.NewCamera(
		core.NewVec3(10, 5, 0), // Position
		core.NewVec3(1, 1, 0),  // Look at
		core.NewVec3(0, 1, 0),  // Up
		60.0,                   // FOV
	)

	s := NewScene(camera)

	// Red, green and blue lights above the metal island
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, -4), core.NewVec3(1, 0, 0)))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0)))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 4), core.NewVec3(0, 0, 1)))

	LoadDefaultMaterials(s)

	white := core.NewVec3(1, 1, 1)
	s.AddMaterial("portal_a", material.NewPortal(white, ShowcasePortalA, ShowcasePortalB))
	s.AddMaterial("portal_b", material.NewPortal(white, ShowcasePortalB, ShowcasePortalA))

	// Ground for each island
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, "diffuse_white")
	s.AddSphere(core.NewVec3(100, -1000, 0), 1000, "diffuse_white")

	// Glass ring around the second island
	glass := []string{"glass_r_1.0", "glass_r_1.4", "glass_r_1.8", "glass_r_2.2", "glass_r_2.6", "glass_r_2.6"}
	addRing(s, core.NewVec3(100, 1, 0), glass)

	// Metal ring around the first island
	metal := []string{"metal_silver", "metal_silver_fuzz_0.2", "metal_silver_fuzz_0.4", "metal_silver_fuzz_0.6", "metal_silver_fuzz_0.8", "metal_silver_fuzz_0.8"}
	addRing(s, core.NewVec3(0, 1, 0), metal)

	// Emitters overhead
	s.AddSphere(core.NewVec3(0, 10, -5), 5, "emission_red")
	s.AddSphere(core.NewVec3(0, 10, 0), 5, "emission_green")
	s.AddSphere(core.NewVec3(0, 10, 5), 5, "emission_blue")
	s.AddSphere(core.NewVec3(100, 10, -5), 5, "emission_1")
	s.AddSphere(core.NewVec3(100, 10, 0), 5, "emission_2")
	s.AddSphere(core.NewVec3(100, 10, 5), 5, "emission_3")

	s.AddSphere(ShowcasePortalA, 2, "portal_a")
	s.AddSphere(ShowcasePortalB, 2, "portal_b")

	return s
}

// addRing places unit spheres on a hexagon around center
func addRing(s *Scene, center core.Vec3, materials []string) {
	offsets := [][2]float64{
		{0.5, 0.866},
		{1.0, 0.0},
		{0.5, -0.866},
		{-0.5, -0.866},
		{-1.0, 0.0},
		{-0.5, 0.866},
	}
	for i, name := range materials {
		offset := offsets[i%len(offsets)]
		position := center.Add(core.NewVec3(ringRadius*offset[0], 0, ringRadius*offset[1]))
		s.AddSphere(position, 1.0, name)
	}
}
