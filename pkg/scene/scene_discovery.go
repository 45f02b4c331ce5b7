package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Objects     int    `json:"objects"`     // Sphere count
	Lights      int    `json:"lights"`      // Point light count
}

type builtIn struct {
	description string
	build       func() *Scene
}

var builtInScenes = map[string]builtIn{
	"showcase": {
		description: "Metal and glass rings joined by a portal pair",
		build:       NewShowcaseScene,
	},
	"light-tunnel": {
		description: "Row of diffuse spheres inside a closed box with one bright light",
		build:       NewLightTunnelScene,
	},
	"simple": {
		description: "Single red sphere on a white ground",
		build:       NewSimpleScene,
	},
}

// Names returns the IDs of the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a fresh copy of a built-in scene
func ByName(name string) (*Scene, error) {
	entry, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.build(), nil
}

// ListScenes returns metadata for every built-in scene sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, name := range Names() {
		entry := builtInScenes[name]
		s := entry.build()
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: entry.description,
			Objects:     len(s.Objects),
			Lights:      len(s.Lights),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// titleCase converts an ID-style string to title case
// e.g., "light-tunnel" -> "Light Tunnel"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
