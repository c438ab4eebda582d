package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/df07/go-sphere-raytracer/pkg/writers"
)

// options holds the parsed command line
type options struct {
	sceneType string
	outPath   string
	format    string
	width     int
	spp       int
	depth     int
	workers   int
	seed      int64
	tMax      float64
	help      bool
}

func main() {
	fs, opts := newFlagSet()
	fs.Parse(os.Args[1:])

	if opts.help {
		printHelp(fs)
		return
	}

	if err := run(*opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet defines the command line flags bound to a fresh options value
func newFlagSet() (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ExitOnError)
	fs.StringVar(&opts.sceneType, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.StringVar(&opts.outPath, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default); height follows the aspect ratio")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", 42, "Base random seed")
	fs.Float64Var(&opts.tMax, "tmax", 0, "Far bound for ray queries (0 = scene default)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs, opts
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	if response, err := scene.ListAllScenes(); err == nil {
		for _, group := range response.Groups {
			for _, info := range group.Scenes {
				fmt.Printf("  %-24s %s\n", info.ID, info.Description)
			}
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

func run(opts options) error {
	format, err := writers.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	fmt.Println("Starting Sphere Raytracer...")

	selectedScene, err := createScene(opts.sceneType, opts.seed)
	if err != nil {
		return err
	}

	config := buildRenderConfig(selectedScene, opts)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid render configuration: %w", err)
	}

	outPath := opts.outPath
	if outPath == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join(outputDir, "render_"+timestamp+format.Extension())
	}

	raytracer := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	img, stats := raytracer.Render()

	fmt.Printf("Samples per pixel: %.1f across %d workers\n", stats.AverageSamples, stats.Workers)

	if err := writers.Save(outPath, img, format); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", outPath)
	return nil
}

// createScene creates a scene by built-in name or JSON file path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene specified")
	}
	return scene.Load(sceneType, seed)
}

// buildRenderConfig starts from the scene's preferred parameters and applies
// any command line overrides
func buildRenderConfig(s *scene.Scene, opts options) renderer.Config {
	config := s.RenderConfig(renderer.DefaultConfig())
	if opts.width > 0 {
		config.Width = opts.width
		config.Height = s.ImageHeight(opts.width)
	}
	if opts.spp > 0 {
		config.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		config.MaxDepth = opts.depth
	}
	if opts.tMax > 0 {
		config.TMax = opts.tMax
	}
	config.NumWorkers = opts.workers
	config.Seed = opts.seed
	return config
}

// createOutputDir returns the output directory for a scene name or file path
func createOutputDir(sceneType string) string {
	name := strings.TrimPrefix(sceneType, "json:")
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	return filepath.Join("output", name)
}
