package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"random scene", "random", false},
		{"dof scene", "dof", false},
		{"sphere-grid scene", "sphere-grid", false},

		// JSON scenes by path
		{"direct JSON path", "scenes/three-spheres.json", false},
		{"prefixed JSON path", "json:scenes/glass-bubble.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.World.Len() == 0 {
				t.Errorf("Expected spheres in scene '%s'", tt.sceneType)
			}
		})
	}
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"default scene", "default", filepath.Join("output", "default")},
		{"random scene", "random", filepath.Join("output", "random")},
		{"JSON file path", "scenes/three-spheres.json", filepath.Join("output", "three-spheres")},
		{"prefixed JSON path", "json:scenes/sub/my-scene.json", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputDir(tt.sceneType); got != tt.expected {
				t.Errorf("createOutputDir(%q) = %q, want %q", tt.sceneType, got, tt.expected)
			}
		})
	}
}

func TestBuildRenderConfig(t *testing.T) {
	s, err := createScene("default", 42)
	if err != nil {
		t.Fatalf("createScene error: %v", err)
	}

	config := buildRenderConfig(s, options{workers: 2, seed: 9})
	if config.Width != 400 || config.Height != 225 || config.SamplesPerPixel != 100 {
		t.Errorf("Expected scene defaults, got %+v", config)
	}

	config = buildRenderConfig(s, options{width: 160, spp: 4, depth: 3, tMax: 20, workers: 2, seed: 9})
	if config.Width != 160 || config.Height != 90 {
		t.Errorf("Expected 160x90, got %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel != 4 || config.MaxDepth != 3 || config.TMax != 20 {
		t.Errorf("Overrides not applied: %+v", config)
	}
	if config.NumWorkers != 2 || config.Seed != 9 {
		t.Errorf("Expected workers 2 and seed 9, got %d and %d", config.NumWorkers, config.Seed)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestRun_WritesImage(t *testing.T) {
	for _, format := range []string{"ppm", "png"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "render."+format)
			err := run(options{sceneType: "default", outPath: out, format: format, width: 16, spp: 2, depth: 3, seed: 1})
			if err != nil {
				t.Fatalf("run() error: %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("ReadFile error: %v", err)
			}
			if format == "ppm" && !strings.HasPrefix(string(data), "P3\n16 9\n255\n") {
				t.Errorf("Unexpected PPM header %q", data[:min(len(data), 16)])
			}
			if format == "png" && !strings.HasPrefix(string(data), "\x89PNG") {
				t.Error("Expected PNG signature")
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"bad format", options{sceneType: "default", format: "gif"}},
		{"unknown scene", options{sceneType: "nope", format: "ppm"}},
		{"unwritable output", options{sceneType: "default", format: "ppm", width: 4, spp: 1, outPath: filepath.Join(t.TempDir(), "missing", "x.ppm")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}
