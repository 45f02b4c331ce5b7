package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// worldUp is used to rebuild the basis after the camera moves
var worldUp = core.NewVec3(0, 1, 0)

// Camera generates primary rays. Forward, Right and Up always form an
// orthonormal basis; MoveTo and SetFocusBlur are the only mutators.
type Camera struct {
	Position      core.Vec3
	Target        core.Vec3
	Forward       core.Vec3
	Right         core.Vec3
	Up            core.Vec3
	FOV           float64 // Vertical field of view in degrees
	FocusDistance float64 // Distance to the plane in perfect focus
	FocusBlur     float64 // Lens radius; 0 disables depth of field
}

// NewCamera creates a camera looking from position at target.
// Focus distance defaults to the distance to the target.
func NewCamera(position, target, up core.Vec3, fov float64) *Camera {
	c := &Camera{
		Position:      position,
		Target:        target,
		FOV:           fov,
		FocusDistance: target.Subtract(position).Length(),
	}
	c.updateBasis(up)
	return c
}

// MoveTo moves the camera while keeping it aimed at its target
func (c *Camera) MoveTo(position core.Vec3) {
	c.Position = position
	c.updateBasis(worldUp)
}

// SetFocusBlur sets the focus distance and lens radius
func (c *Camera) SetFocusBlur(focusDistance, focusBlur float64) {
	c.FocusDistance = focusDistance
	c.FocusBlur = focusBlur
	c.updateBasis(c.Up)
}

func (c *Camera) updateBasis(up core.Vec3) {
	c.Forward = c.Target.Subtract(c.Position).Normalize()
	c.Right = c.Forward.Cross(up).Normalize()
	c.Up = c.Right.Cross(c.Forward)
}

// Projection holds the per-frame values needed to turn pixel coordinates
// into primary rays
type Projection struct {
	camera       Camera
	width        float64
	height       float64
	cameraWidth  float64
	cameraHeight float64
}

// Projection prepares ray generation for an image of the given size.
// The camera is copied so later mutations do not affect an ongoing frame.
func (c *Camera) Projection(width, height int) Projection {
	cameraHeight := math.Tan(mgl64.DegToRad(c.FOV / 2))
	aspect := float64(width) / float64(height)
	return Projection{
		camera:       *c,
		width:        float64(width),
		height:       float64(height),
		cameraWidth:  aspect * cameraHeight,
		cameraHeight: cameraHeight,
	}
}

// Direction returns the unperturbed unit direction through image position
// (px, py), measured in pixels from the top-left corner
func (p Projection) Direction(px, py float64) core.Vec3 {
	screenX := 2*(px/p.width) - 1
	screenY := 1 - 2*(py/p.height)

	cameraX := screenX * p.cameraWidth
	cameraY := screenY * p.cameraHeight

	c := p.camera
	return c.Forward.Add(c.Up.Multiply(cameraY)).Add(c.Right.Multiply(cameraX)).Normalize()
}

// Ray returns a primary ray through (px, py) with the lens offset applied.
// The ray passes through the point at FocusDistance along the unperturbed
// direction, so only geometry off the focus plane blurs.
func (p Projection) Ray(px, py float64, sampler core.Sampler) core.Ray {
	c := p.camera
	direction := p.Direction(px, py)
	focusPoint := c.Position.Add(direction.Multiply(c.FocusDistance))

	disk := core.RandomInUnitDisk(sampler)
	offset := c.Right.Multiply(disk.X).Add(c.Up.Multiply(disk.Y)).Multiply(c.FocusBlur)
	origin := c.Position.Add(offset)

	return core.NewRay(origin, focusPoint.Subtract(origin).Normalize())
}
