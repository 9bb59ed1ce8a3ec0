package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"rtcontour/internal/models"
	"rtcontour/pkg/brush"
	"rtcontour/pkg/config"
	"rtcontour/pkg/geometry"
	"rtcontour/pkg/render"
	"rtcontour/pkg/rtstruct"
	"rtcontour/pkg/transform"
)

func main() {
	// Parse command line arguments
	structPath := flag.String("structures", "", "Structure set JSON file (required)")
	metaPath := flag.String("metadata", "", "Image metadata JSON file (required)")
	scriptPath := flag.String("script", "", "Stroke script JSON file (required)")
	outPath := flag.String("out", "structures_edited.json", "Output structure set JSON file")
	previewDir := flag.String("preview", "", "Directory for PNG slice previews (optional)")
	configPath := flag.String("config", "rtcontour.yaml", "Editor configuration YAML file")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	// Validate inputs
	if *structPath == "" || *metaPath == "" || *scriptPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the structure set and normalize boundary input
	set := &rtstruct.StructureSet{}
	if err := readJSON(*structPath, set); err != nil {
		log.Fatalf("Failed to load structure set: %v", err)
	}
	if dropped := set.Normalize(); dropped > 0 {
		logger.Warn("dropped malformed contours from input", "count", dropped)
	}

	meta := &transform.ImageMetadata{}
	if err := readJSON(*metaPath, meta); err != nil {
		log.Fatalf("Failed to load image metadata: %v", err)
	}

	script := &models.StrokeScript{}
	if err := readJSON(*scriptPath, script); err != nil {
		log.Fatalf("Failed to load stroke script: %v", err)
	}
	if script.Canvas.Width == 0 {
		script.Canvas = transform.Canvas{Width: cfg.Display.CanvasWidth, Height: cfg.Display.CanvasHeight}
	}
	if script.View.Zoom == 0 {
		script.View.Zoom = 1
	}

	tr, err := transform.New(script.View, script.Canvas, meta)
	if err != nil {
		log.Fatalf("Failed to build coordinate transform: %v", err)
	}

	engine := brush.NewEngine(set, brush.Options{
		Radius:         cfg.Brush.DefaultRadius,
		MinRadius:      cfg.Brush.MinRadius,
		MaxRadius:      cfg.Brush.MaxRadius,
		Segments:       cfg.Brush.CircleSegments,
		CleanTolerance: cfg.Geometry.CleanTolerance,
		SliceTolerance: cfg.Geometry.SliceTolerance,
	}, logger)
	engine.SetTransformer(tr)
	session := brush.NewSession(engine, logger)

	// Per-stroke errors are recoverable: report and continue with the
	// store in its last valid state.
	failed := 0
	session.OnStrokeError(func(err error) {
		failed++
		logger.Warn("stroke skipped", "error", err)
	})

	applied := 0
	for i, stroke := range script.Strokes {
		if len(stroke.Points) == 0 {
			logger.Warn("empty stroke in script", "index", i)
			continue
		}
		engine.SelectStructure(stroke.ROINumber)
		if stroke.Radius > 0 {
			engine.SetRadius(stroke.Radius)
		}
		session.PrimaryDown(pt(stroke.Points[0]), stroke.Invert)
		for _, p := range stroke.Points[1:] {
			session.PointerMove(pt(p))
		}
		session.PrimaryUp()
		applied++
	}

	result := engine.StructureSet()
	if err := writeJSON(*outPath, result); err != nil {
		log.Fatalf("Failed to write structure set: %v", err)
	}

	fmt.Printf("Applied %d of %d strokes (%d failed)\n", applied-failed, len(script.Strokes), failed)
	fmt.Printf("Updated structure set saved to: %s\n", *outPath)

	// Render per-structure previews of the edited slice if requested
	if *previewDir != "" {
		if err := os.MkdirAll(*previewDir, 0755); err != nil {
			log.Fatalf("Failed to create preview directory: %v", err)
		}
		r := render.New(render.Opts{
			Width:       script.Canvas.Width,
			Height:      script.Canvas.Height,
			FillAlpha:   cfg.Display.FillAlpha,
			CursorWidth: cfg.Display.CursorWidth,
		})
		for _, s := range result.Structures {
			name := filepath.Join(*previewDir, fmt.Sprintf("roi_%03d.png", s.ROINumber))
			if err := writePNG(name, r, s, tr); err != nil {
				logger.Warn("preview failed", "roi", s.ROINumber, "error", err)
				continue
			}
			fmt.Printf("Preview saved to: %s\n", name)
		}
	}
}

func pt(p [2]float64) geometry.Point {
	return geometry.Pt(p[0], p[1])
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writePNG(path string, r *render.Renderer, s *rtstruct.Structure, tr *transform.Transformer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, r.Slice(s, tr, nil))
}
