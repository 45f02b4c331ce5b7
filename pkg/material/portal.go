package material

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// PortalBorder is the |cos| at or below which a portal's rim is opaque
const PortalBorder = 0.1

// Portal passes rays straight through and teleports them from Position to
// Target when they leave the inside of the portal sphere
type Portal struct {
	Color    core.Vec3
	Position core.Vec3
	Target   core.Vec3
}

// NewPortal creates a new portal material
func NewPortal(color, position, target core.Vec3) Portal {
	return Portal{Color: color, Position: position, Target: target}
}

func (p Portal) Attenuation() core.Vec3 { return p.Color }

func (p Portal) Specular(lightDir, normal, viewDir core.Vec3) core.Vec3 { return black }

func (p Portal) Scatter(dirIn core.Vec3, hit core.HitRecord, sampler core.Sampler) (core.Ray, bool) {
	// Nearly tangent rays hit the rim
	if math.Abs(dirIn.Dot(hit.Normal)) <= PortalBorder {
		return core.Ray{}, false
	}

	origin := hit.Point
	if hit.Inside {
		origin = hit.Point.Subtract(p.Position).Add(p.Target)
	}
	return core.NewRay(origin, dirIn), true
}

func (Portal) isMaterial() {}
