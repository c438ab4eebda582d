package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/scenes")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Groups []struct {
			Name   string `json:"name"`
			Scenes []struct {
				ID string `json:"id"`
			} `json:"scenes"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(body.Groups) == 0 || body.Groups[0].Name != "Built-in Scenes" {
		t.Fatalf("Expected built-in group first, got %+v", body.Groups)
	}
	if len(body.Groups[0].Scenes) < 3 {
		t.Errorf("Expected at least 3 built-in scenes, got %d", len(body.Groups[0].Scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/scene-config?scene=default")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Scene    string         `json:"scene"`
		Defaults map[string]int `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if body.Defaults["width"] != 400 || body.Defaults["height"] != 225 || body.Defaults["spheres"] != 5 {
		t.Errorf("Unexpected defaults %v", body.Defaults)
	}

	if rec := doRequest(t, NewServer(0), "/api/scene-config?scene=nope"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender_Formats(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"png", "image/png", "\x89PNG"},
		{"ppm", "image/x-portable-pixmap", "P3\n32 18\n255\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), "/api/render?scene=default&width=32&spp=2&depth=3&format="+tt.format)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Expected content type %s, got %s", tt.contentType, got)
			}
			if rec.Header().Get("X-Render-Time-Ms") == "" {
				t.Error("Expected render time header")
			}
			if !strings.HasPrefix(rec.Body.String(), tt.prefix) {
				t.Errorf("Expected body to start with %q", tt.prefix)
			}
		})
	}
}

func TestHandleRender_Deterministic(t *testing.T) {
	path := "/api/render?scene=random&width=24&spp=2&depth=4&format=ppm&seed=5"
	first := doRequest(t, NewServer(0), path)
	second := doRequest(t, NewServer(0), path)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200s, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("Identical requests produced different images")
	}
}

func TestHandleRender_JSON(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/render?scene=dof&width=32&spp=1&depth=2&format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RenderResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if response.Width != 32 || response.Height != 18 {
		t.Errorf("Expected 32x18, got %dx%d", response.Width, response.Height)
	}
	if response.Stats.TotalSamples != 32*18 {
		t.Errorf("Expected %d samples, got %d", 32*18, response.Stats.TotalSamples)
	}
	if len(response.Console) == 0 {
		t.Error("Expected renderer log lines in the console")
	}

	data, err := base64.StdEncoding.DecodeString(response.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected PNG image data")
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"width too small", "width=4"},
		{"width not a number", "width=abc"},
		{"samples too large", "spp=1000000"},
		{"unsupported format", "format=gif"},
		{"unknown scene", "scene=nope"},
		{"arbitrary scene file", "scene=" + url.QueryEscape("json:/etc/scene.json")},
		{"bare scene file path", "scene=" + url.QueryEscape("../secret.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, NewServer(0), "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("Expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	rec := doRequest(t, NewServer(0), "/api/inspect?scene=default&width=32&x=16&y=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !response.Hit || response.GeometryType != "sphere" {
		t.Fatalf("Expected to hit a sphere, got %+v", response)
	}
	if response.MaterialType != "lambertian" || response.ShapeIndex != 1 {
		t.Errorf("Expected the center lambertian sphere, got %s at index %d", response.MaterialType, response.ShapeIndex)
	}
	if !response.FrontFace || response.Distance <= 0 {
		t.Errorf("Expected a front-face hit in front of the camera, got %+v", response)
	}

	for _, query := range []string{"x=32&y=0", "x=0&y=-1", "x=a&y=0"} {
		rec := doRequest(t, NewServer(0), "/api/inspect?scene=default&width=32&"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Query %s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestParseIntParam(t *testing.T) {
	values := url.Values{"n": {"7"}, "bad": {"x"}}

	if v, err := parseIntParam(values, "n", 1, 0, 10); err != nil || v != 7 {
		t.Errorf("Expected 7, got %d (%v)", v, err)
	}
	if v, err := parseIntParam(values, "missing", 3, 5, 10); err != nil || v != 3 {
		t.Errorf("Expected default 3, got %d (%v)", v, err)
	}
	if _, err := parseIntParam(values, "n", 1, 8, 10); err == nil {
		t.Error("Expected range error")
	}
	if _, err := parseIntParam(values, "bad", 1, 0, 10); err == nil {
		t.Error("Expected parse error")
	}
	if v, err := parseFloatParam(url.Values{"f": {"0.25"}}, "f", 1, 0, 1); err != nil || v != 0.25 {
		t.Errorf("Expected 0.25, got %f (%v)", v, err)
	}
}
