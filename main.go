package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Options holds the parsed command line
type Options struct {
	Scale       int
	NumWorkers  int
	Output      bool
	OutputPath  string
	SceneName   string
	ComparePath string
}

// Validate rejects options that cannot produce a render
func (o Options) Validate() error {
	if o.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", o.Scale)
	}
	if o.NumWorkers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", o.NumWorkers)
	}
	if o.Output {
		if _, err := loaders.WriterFor(o.OutputPath); err != nil {
			return fmt.Errorf("output %s: %w", o.OutputPath, err)
		}
	}
	if o.ComparePath != "" {
		if _, err := loaders.WriterFor(o.ComparePath); err != nil {
			return fmt.Errorf("compare %s: %w", o.ComparePath, err)
		}
	}
	return nil
}

// renderConfig builds the frame driver configuration for these options
func (o Options) renderConfig() renderer.Config {
	config := renderer.DefaultConfig(o.Scale)
	config.NumWorkers = o.NumWorkers
	return config
}

func main() {
	log.SetFlags(0)

	opts := Options{}
	flag.IntVar(&opts.Scale, "s", 1, "Scale factor applied to the 800x600 frame and the scene")
	flag.IntVar(&opts.NumWorkers, "t", renderer.DefaultWorkerCount(), "Number of parallel workers")
	flag.BoolVar(&opts.Output, "o", false, "Write the rendered image")
	flag.StringVar(&opts.OutputPath, "out", "image.ppm", "Output file (.ppm or .png)")
	flag.StringVar(&opts.SceneName, "scene", "default", "Scene: 'default', 'single' or a path to a .json scene")
	flag.StringVar(&opts.ComparePath, "compare", "", "Reference image (.ppm or .png) to compare the render against")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes()
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	sc, err := scene.ByName(opts.SceneName, opts.Scale)
	if err != nil {
		log.Fatalf("Error creating scene: %v", err)
	}

	outputMsg := "no output"
	if opts.Output {
		outputMsg = "output to " + opts.OutputPath
	}
	fmt.Printf("scale %d, workers %d, %s\n", opts.Scale, opts.NumWorkers, outputMsg)
	fmt.Printf("host: %s\n", renderer.HostDescription())

	frame, stats, err := renderer.Render(sc, opts.renderConfig(), renderer.NewDefaultLogger())
	if err != nil {
		log.Fatalf("Error rendering: %v", err)
	}
	fmt.Printf("total time: %f\n", stats.Elapsed.Seconds())

	if opts.Output {
		if err := loaders.SaveImage(opts.OutputPath, frame); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving image: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Render saved as %s\n", opts.OutputPath)
	}

	if opts.ComparePath != "" {
		diff, err := compareFrame(opts.ComparePath, frame)
		if err != nil {
			log.Fatalf("Error comparing: %v", err)
		}
		fmt.Printf("compare %s: %d of %d pixels differ\n", opts.ComparePath, diff, frame.Width*frame.Height)
		if diff > 0 {
			os.Exit(1)
		}
	}
}

// compareFrame counts the pixels of frame that differ from the reference image
func compareFrame(referencePath string, frame *renderer.FrameBuffer) (int, error) {
	reference, err := loaders.LoadImage(referencePath)
	if err != nil {
		return 0, err
	}
	return reference.CountDiff(frame)
}

// printScenes lists the built-in scenes and any scene files found nearby
func printScenes() {
	listing, err := scene.ListAllScenes(scene.FindScenesDir())
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	fmt.Println("Available scenes:")
	for _, group := range listing.Groups {
		fmt.Printf("  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("    %-24s %s\n", info.ID, info.DisplayName)
		}
	}
}
