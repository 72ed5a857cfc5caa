package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneName string
	Width     int
	Samples   int
	Depth     int
	Workers   int
	Seed      uint64
	Output    string
	ScenesDir string
	List      bool
	Quiet     bool
	Help      bool
}

func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneName, "scene", "default", "Scene name: a built-in scene, a scene in -scenes-dir, or a path to a .json file")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default); height follows the camera aspect ratio")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.Depth, "depth", 0, "Maximum ray segments per sample (0 = scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Uint64Var(&config.Seed, "seed", 42, "Random seed; identical seeds give identical images")
	flag.StringVar(&config.Output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.StringVar(&config.ScenesDir, "scenes-dir", "scenes", "Directory searched for JSON scene files")
	flag.BoolVar(&config.List, "list", false, "List available scenes and exit")
	flag.BoolVar(&config.Quiet, "quiet", false, "Suppress log output and the progress bar")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	if err := run(config, os.Stdout); err != nil {
		var writeErr *output.WriteError
		if errors.As(err, &writeErr) {
			fmt.Fprintf(os.Stderr, "Error saving image: %v\n", writeErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Use -list to see the available scenes.")
}

// run renders the configured scene and writes it as a PNG
func run(config Config, out io.Writer) error {
	if config.List {
		return listScenes(config.ScenesDir, out)
	}

	selectedScene, err := createScene(config.SceneName, config.ScenesDir)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, config)
	if err := selectedScene.Validate(); err != nil {
		return err
	}

	raytracer := selectedScene.NewRaytracer()
	raytracer.SetNumWorkers(config.Workers)
	raytracer.SetSeed(config.Seed)

	var bar *progressbar.ProgressBar
	if config.Quiet {
		raytracer.SetLogger(discardLogger{})
	} else {
		raytracer.SetLogger(&writerLogger{out: out})
		total := selectedScene.SamplingConfig.Width * selectedScene.SamplingConfig.Height
		bar = progressbar.Default(int64(total), "rendering")
		raytracer.SetProgressCallback(func(completed, total int) {
			_ = bar.Add(1)
		})
	}

	pixels, stats := raytracer.Render()
	if bar != nil {
		_ = bar.Finish()
	}

	img, err := output.NewImage(selectedScene.SamplingConfig.Width, selectedScene.SamplingConfig.Height, pixels)
	if err != nil {
		return err
	}

	filename := config.Output
	if filename == "" {
		filename = defaultOutputPath(selectedScene.Name, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return &output.WriteError{Path: filename, Err: err}
	}
	if err := output.SavePNG(filename, img); err != nil {
		return err
	}

	if !config.Quiet {
		fmt.Fprintf(out, "Rendered %d pixels at %d samples/pixel with %d workers in %v\n",
			stats.TotalPixels, stats.SamplesPerPixel, stats.NumWorkers, stats.Elapsed)
		fmt.Fprintf(out, "Render saved as %s\n", filename)
	}
	return nil
}

// createScene resolves a scene by name
func createScene(sceneName, scenesDir string) (*scene.Scene, error) {
	if sceneName == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	return scene.NewByName(sceneName, scenesDir)
}

// applyOverrides replaces scene defaults with any non-zero command line values
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.SetWidth(config.Width)
	}
	if config.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = config.Samples
	}
	if config.Depth > 0 {
		s.SamplingConfig.MaxDepth = config.Depth
	}
}

func listScenes(scenesDir string, out io.Writer) error {
	scenes, err := scene.ListScenes(scenesDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scenes {
		fmt.Fprintf(out, "  %-16s %s\n", info.ID, info.Description)
	}
	return nil
}

func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// writerLogger implements core.Logger over an io.Writer
type writerLogger struct {
	out io.Writer
}

func (l *writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format, args...)
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
