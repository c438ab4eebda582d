package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/df07/go-sphere-raytracer/pkg/writers"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID (e.g., "default" or "json:scenes/x.json")
	Width           int    `json:"width"`           // Image width, 0 for the scene default
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel, 0 for the scene default
	MaxDepth        int    `json:"maxDepth"`        // Bounce limit, 0 for the scene default
	Seed            int64  `json:"seed"`            // Base random seed
	Format          string `json:"format"`          // "png", "ppm" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// RenderResponse is the body of a render with format=json
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	ElapsedMs int64            `json:"elapsedMs"`
	Console   []ConsoleMessage `json:"console"`
}

// handleRender renders a scene synchronously and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.Load(req.Scene, req.Seed)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := s.buildRenderConfig(sceneObj, req)
	if err := config.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(renderID, consoleChan)

	img, stats := renderer.NewRaytracer(sceneObj, config, logger).Render()

	if req.Format == "json" {
		s.writeJSONRender(w, req, img, stats, drainConsole(consoleChan))
		return
	}

	format, _ := writers.ParseFormat(req.Format)
	var buf bytes.Buffer
	if err := writers.Write(&buf, img, format); err != nil {
		log.Printf("[%s] encoding failed: %v", renderID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writeJSONRender sends the image as base64 PNG along with stats and log lines
func (s *Server) writeJSONRender(w http.ResponseWriter, req *RenderRequest, img *renderer.Image, stats renderer.RenderStats, console []ConsoleMessage) {
	var buf bytes.Buffer
	if err := writers.WritePNG(&buf, img); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	response := RenderResponse{
		Scene:     req.Scene,
		Width:     img.Width,
		Height:    img.Height,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			AverageSamples:   stats.AverageSamples,
			Workers:          stats.Workers,
			AverageLuminance: stats.AverageLuminance,
		},
		ElapsedMs: stats.Elapsed.Milliseconds(),
		Console:   console,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// buildRenderConfig applies request overrides to the scene defaults
func (s *Server) buildRenderConfig(sceneObj *scene.Scene, req *RenderRequest) renderer.Config {
	config := sceneObj.RenderConfig(renderer.DefaultConfig())
	if req.Width > 0 {
		config.Width = req.Width
		config.Height = sceneObj.ImageHeight(req.Width)
	}
	if req.SamplesPerPixel > 0 {
		config.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}
	config.Seed = req.Seed
	return config
}

// checkSceneID rejects scene file paths outside the discovered scenes directory
func checkSceneID(id string) error {
	if !strings.HasPrefix(id, "json:") && !strings.HasSuffix(id, ".json") {
		return nil
	}
	discovered, err := scene.ListJSONScenes()
	if err != nil {
		return err
	}
	for _, info := range discovered {
		if info.ID == id {
			return nil
		}
	}
	return fmt.Errorf("unknown scene file %q", id)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: "png"}

	if sceneName := values.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	if err := checkSceneID(req.Scene); err != nil {
		return nil, err
	}

	if format := values.Get("format"); format != "" {
		req.Format = strings.ToLower(format)
	}
	if req.Format != "json" {
		if _, err := writers.ParseFormat(req.Format); err != nil {
			return nil, err
		}
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", int(s.seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width > 800 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}
