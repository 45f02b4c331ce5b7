package scene

import (
	"reflect"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"light-tunnel", "Light Tunnel"},
		{"metal_fuzz", "Metal Fuzz"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestNames(t *testing.T) {
	expected := []string{"light-tunnel", "showcase", "simple"}
	if !reflect.DeepEqual(Names(), expected) {
		t.Errorf("Names() = %v, want %v", Names(), expected)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName(%q) failed: %v", name, err)
			}
			if s.Camera == nil {
				t.Error("Scene should have a camera")
			}
			if len(s.Objects) == 0 || len(s.Lights) == 0 {
				t.Errorf("Scene should have objects and lights, got %d/%d", len(s.Objects), len(s.Lights))
			}
		})
	}

	_, err := ByName("missing")
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "showcase") {
		t.Errorf("Error should list the available scenes, got %q", err.Error())
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(Names()) {
		t.Fatalf("Expected %d scenes, got %d", len(Names()), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].DisplayName > scenes[i].DisplayName {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].DisplayName, scenes[i].DisplayName)
		}
	}
	for _, info := range scenes {
		if info.ID == "showcase" && info.Objects != 22 {
			t.Errorf("Showcase should have 22 objects, got %d", info.Objects)
		}
	}
}
