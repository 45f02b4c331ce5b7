package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case material.Diffuse:
		properties["albedo"] = vecArray(m.Color)
		properties["color"] = hexColor(m.Color)
		properties["specularExponent"] = m.SpecularExponent
		properties["shininess"] = m.Shininess
		return "diffuse", properties

	case material.Metal:
		properties["albedo"] = vecArray(m.Color)
		properties["color"] = hexColor(m.Color)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case material.Glass:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = hexColor(m.Color)
		return "glass", properties

	case material.Emission:
		properties["albedo"] = vecArray(m.Color)
		properties["emission"] = vecArray(m.Emission)
		properties["color"] = hexColor(m.Emission)
		return "emission", properties

	case material.Portal:
		properties["position"] = vecArray(m.Position)
		properties["target"] = vecArray(m.Target)
		properties["color"] = hexColor(m.Color)
		return "portal", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts an unjittered, unblurred ray through the centre of a
// pixel and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	projection := sceneObj.Camera.Projection(width, height)
	direction := projection.Direction(float64(pixelX)+0.5, float64(pixelY)+0.5)
	ray := core.NewRay(sceneObj.Camera.Position, direction)

	hit, ok := sceneObj.Raycast(ray)
	if !ok {
		return InspectResponse{Hit: false, ObjectIndex: -1}
	}

	obj := sceneObj.Objects[hit.ObjectIndex]
	materialType, materialProps := extractMaterialInfo(obj.Material)
	return InspectResponse{
		Hit:          true,
		ObjectIndex:  hit.ObjectIndex,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.Distance,
		Inside:       hit.Inside,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": map[string]interface{}{
				"center": vecArray(obj.Shape.Center),
				"radius": obj.Shape.Radius,
			},
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := s.parseRenderRequest(values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}

	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
	}

	sceneObj, err := scene.ByName(req.Scene)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}
