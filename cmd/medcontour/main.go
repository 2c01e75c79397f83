package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"medcontour/internal/models"
	"medcontour/pkg/config"
	"medcontour/pkg/contour"
	"medcontour/pkg/roi"
	"medcontour/pkg/segmentation"
	"medcontour/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputPath := flag.String("input", "", "Grayscale or colour image to segment")
	outputPath := flag.String("output", "contour.png", "Output image with the contour overlay")
	configPath := flag.String("config", "medcontour.yaml", "YAML configuration file")
	mode := flag.String("mode", "", "ROI mode: point, rectangle or ellipse (overrides the config)")
	points := flag.String("points", "", "ROI points as x,y;x,y")
	framesDir := flag.String("frames-dir", "", "Directory to save one overlay per iteration")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputPath == "" || *points == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(*debug || cfg.Output.Verbose)

	if *mode != "" {
		cfg.ROI.Mode = *mode
	}
	if *framesDir != "" {
		cfg.Output.SaveFrames = true
	}

	if err := run(cfg, logger, *inputPath, *outputPath, *points, *framesDir); err != nil {
		logger.WithError(err).Fatal("Segmentation failed")
	}
}

// run loads the image, segments it and writes the overlay
func run(cfg *config.Config, logger *logrus.Logger, inputPath, outputPath, pointSpec, framesDir string) error {
	roiMode, err := roi.ParseMode(cfg.ROI.Mode)
	if err != nil {
		return err
	}
	pts, err := parsePoints(pointSpec)
	if err != nil {
		return err
	}
	desc, err := roi.New(roiMode, pts)
	if err != nil {
		return err
	}

	overlayColor, err := visualization.ParseColor(cfg.Output.OverlayColor)
	if err != nil {
		return err
	}

	src, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	img := visualization.FromImage(src)

	logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"width":  img.Width,
		"height": img.Height,
		"mode":   roiMode,
	}).Info("Image loaded")

	var recorder *visualization.FrameRecorder
	var observer contour.Observer
	if cfg.Output.SaveFrames {
		recorder = visualization.NewFrameRecorder(src, overlayColor)
		observer = recorder
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	segmenter := segmentation.NewSegmenter(segmentation.OptionsFromConfig(cfg), logger)
	result, err := segmenter.Run(ctx, img, desc, observer)
	if err != nil {
		return err
	}

	overlay, err := visualization.Overlay(src, result.Mask, overlayColor)
	if err != nil {
		return err
	}
	blended := visualization.Blend(src, overlay, cfg.Output.OverlayOpacity)
	if err := imaging.Save(blended, outputPath); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	if recorder != nil {
		if framesDir == "" {
			framesDir = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_frames"
		}
		if err := recorder.SaveFrames(framesDir); err != nil {
			logger.WithError(err).Warn("Failed to save iteration frames")
		}
	}

	logger.WithFields(logrus.Fields{
		"output":   outputPath,
		"area":     result.Metrics.Area,
		"mean_roi": result.MeanROI,
	}).Info("Result saved")

	return nil
}

// parsePoints parses "x,y;x,y" into pixel coordinates
func parsePoints(spec string) ([]models.Point, error) {
	var pts []models.Point
	for _, pair := range strings.Split(spec, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid point %q, expected x,y", pair)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid x in %q: %w", pair, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid y in %q: %w", pair, err)
		}
		pts = append(pts, models.Point{X: x, Y: y})
	}
	return pts, nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
