package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// LoadDefaultMaterials registers the shared material palette used by the
// built-in scenes
func LoadDefaultMaterials(s *Scene) {
	gray := core.NewVec3(0.5, 0.5, 0.5)

	// Emission
	s.AddMaterial("emission_1", material.NewEmission(gray, core.NewVec3(0.8, 0.4, 0.4)))
	s.AddMaterial("emission_2", material.NewEmission(gray, core.NewVec3(0.8, 0.8, 0.4)))
	s.AddMaterial("emission_3", material.NewEmission(gray, core.NewVec3(0.8, 0.4, 0.8)))
	s.AddMaterial("emission_white", material.NewEmission(gray, core.NewVec3(0.8, 0.8, 0.8)))
	s.AddMaterial("emission_red", material.NewEmission(gray, core.NewVec3(0.95, 0.1, 0.1)))
	s.AddMaterial("emission_green", material.NewEmission(gray, core.NewVec3(0.1, 0.95, 0.1)))
	s.AddMaterial("emission_blue", material.NewEmission(gray, core.NewVec3(0.1, 0.1, 0.95)))

	// Diffuse
	s.AddMaterial("diffuse_white", material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9)))
	s.AddMaterial("diffuse_red", material.NewDiffuse(core.NewVec3(0.9, 0.1, 0.1)))
	s.AddMaterial("diffuse_green", material.NewDiffuse(core.NewVec3(0.1, 0.9, 0.1)))
	s.AddMaterial("diffuse_blue", material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.9)))
	s.AddMaterial("diffuse_yellow", material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.0)))
	s.AddMaterial("diffuse_black", material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.1)))
	s.AddMaterial("diffuse_dark_gray", material.NewDiffuse(core.NewVec3(0.3, 0.3, 0.3)))

	// Metal
	silver := core.NewVec3(0.9, 0.9, 0.9)
	s.AddMaterial("metal_red_fuzz", material.NewMetal(core.NewVec3(1.0, 0.45, 0.45), 0.7))
	s.AddMaterial("metal_gray_fuzz", material.NewMetal(core.NewVec3(0.7, 0.7, 0.7), 0.3))
	s.AddMaterial("metal_silver", material.NewMetal(silver, 0.05))
	s.AddMaterial("metal_silver_fuzz_0.2", material.NewMetal(silver, 0.2))
	s.AddMaterial("metal_silver_fuzz_0.4", material.NewMetal(silver, 0.4))
	s.AddMaterial("metal_silver_fuzz_0.6", material.NewMetal(silver, 0.6))
	s.AddMaterial("metal_silver_fuzz_0.8", material.NewMetal(silver, 0.8))

	// Glass
	transparent := core.NewVec3(1, 1, 1)
	s.AddMaterial("glass_diamond", material.NewGlass(transparent, 2.4))
	s.AddMaterial("glass_glass", material.NewGlass(transparent, 1.8))
	s.AddMaterial("glass_r_1.0", material.NewGlass(transparent, 1.0))
	s.AddMaterial("glass_r_1.4", material.NewGlass(transparent, 1.4))
	s.AddMaterial("glass_r_1.8", material.NewGlass(transparent, 1.8))
	s.AddMaterial("glass_r_2.2", material.NewGlass(transparent, 2.2))
	s.AddMaterial("glass_r_2.6", material.NewGlass(transparent, 2.6))
}
