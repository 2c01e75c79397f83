// Package segmentation wires the speed field, the initial mask and the level
// set evolver into a single run, the way an interactive tool triggers it once
// the user has placed a region of interest.
package segmentation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medcontour/internal/models"
	"medcontour/pkg/config"
	"medcontour/pkg/contour"
	"medcontour/pkg/gradient"
	"medcontour/pkg/metrics"
	"medcontour/pkg/roi"
)

// Options holds the parameters of a segmentation run
type Options struct {
	// Alpha and Sigma control the speed field
	Alpha float64
	Sigma float64

	// Iterations and Smoothing control the evolution loop
	Iterations int
	Smoothing  int

	// ThresholdRatio multiplies the mean ROI intensity to give the balloon threshold
	ThresholdRatio float64

	// Balloon is the signed balloon force
	Balloon float64
}

// OptionsFromConfig extracts the run options from a configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Alpha:          cfg.Preprocessing.Alpha,
		Sigma:          cfg.Preprocessing.Sigma,
		Iterations:     cfg.Evolution.Iterations,
		Smoothing:      cfg.Evolution.Smoothing,
		ThresholdRatio: cfg.Evolution.ThresholdRatio,
		Balloon:        cfg.Evolution.Balloon,
	}
}

// Result holds everything a caller needs to display a finished run
type Result struct {
	// RunID identifies the run in the logs
	RunID string

	// Initial is the mask generated from the region of interest
	Initial *models.LevelSet

	// Mask is the final level set
	Mask *models.LevelSet

	// Speed is the speed field the contour evolved on
	Speed *models.SpeedField

	// MeanROI is the mean intensity inside the initial mask
	MeanROI float64

	// Threshold is the balloon threshold derived from MeanROI
	Threshold float64

	// Metrics compares the final mask against the initial one
	Metrics metrics.MaskMetrics

	// Elapsed is the wall time of the run
	Elapsed time.Duration
}

// Segmenter runs segmentations with a fixed set of options
type Segmenter struct {
	opts   Options
	logger *logrus.Logger
}

// NewSegmenter creates a segmenter. A nil logger discards all log output.
func NewSegmenter(opts Options, logger *logrus.Logger) *Segmenter {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Segmenter{opts: opts, logger: logger}
}

// Run segments img starting from desc. The observer, which may be nil,
// receives the mask before the first iteration and after every iteration.
func (s *Segmenter) Run(ctx context.Context, img *models.Image, desc roi.Descriptor, observer contour.Observer) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"mode":   desc.Mode(),
		"points": desc.Points(),
	})

	speed, err := gradient.InverseGaussianGradient(img, s.opts.Alpha, s.opts.Sigma)
	if err != nil {
		return nil, fmt.Errorf("failed to compute speed field: %w", err)
	}

	init, mean := roi.GenerateInitialMask(img, desc)
	area := metrics.Area(init)
	if area == 0 {
		log.Warn("Region of interest is empty, the contour has nothing to evolve")
	}
	threshold := s.opts.ThresholdRatio * mean

	log.WithFields(logrus.Fields{
		"width":      img.Width,
		"height":     img.Height,
		"roi_area":   area,
		"mean_roi":   mean,
		"threshold":  threshold,
		"iterations": s.opts.Iterations,
	}).Info("Starting contour evolution")

	progress := contour.ObserverFunc(func(iteration int, mask *models.LevelSet) {
		log.WithFields(logrus.Fields{
			"iteration": iteration,
			"area":      metrics.Area(mask),
		}).Debug("Iteration complete")
	})

	params := contour.Params{
		Iterations: s.opts.Iterations,
		Smoothing:  s.opts.Smoothing,
		Threshold:  threshold,
		Balloon:    s.opts.Balloon,
	}
	mask, err := contour.Evolve(ctx, speed, init, params, contour.Observers{progress, observer})
	if err != nil {
		return nil, fmt.Errorf("contour evolution failed: %w", err)
	}

	cmp, err := metrics.Compare(init, mask)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     runID,
		Initial:   init,
		Mask:      mask,
		Speed:     speed,
		MeanROI:   mean,
		Threshold: threshold,
		Metrics:   cmp,
		Elapsed:   time.Since(start),
	}

	log.WithFields(logrus.Fields{
		"area":    cmp.Area,
		"changed": cmp.Changed,
		"dice":    cmp.Dice,
		"elapsed": result.Elapsed.String(),
	}).Info("Segmentation finished")

	return result, nil
}

// Segment is a one-shot helper around Segmenter.Run
func Segment(ctx context.Context, img *models.Image, desc roi.Descriptor, opts Options, observer contour.Observer) (*Result, error) {
	return NewSegmenter(opts, nil).Run(ctx, img, desc, observer)
}
