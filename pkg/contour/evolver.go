package contour

import (
	"context"
	"errors"
	"fmt"
	"math"

	"medcontour/internal/models"
	"medcontour/pkg/gradient"
	"medcontour/pkg/morphology"
)

var (
	// ErrShapeMismatch is returned when the level set and the speed field differ in shape
	ErrShapeMismatch = errors.New("level set and image shapes do not match")

	// ErrUnsupportedDims is returned for grids that are not 2-dimensional
	ErrUnsupportedDims = errors.New("only 2-dimensional images are supported")

	// ErrInvalidParams is returned for out of range evolution parameters
	ErrInvalidParams = errors.New("invalid evolution parameters")
)

// Params holds the evolution parameters
type Params struct {
	// Iterations is the exact number of evolution steps
	Iterations int

	// Smoothing is the number of curvature steps per iteration
	Smoothing int

	// Threshold is compared against speed*|Balloon| to gate the balloon force
	Threshold float64

	// Balloon is the signed balloon force. Positive values expand the region,
	// negative values shrink it and 0 disables the force.
	Balloon float64
}

// Validate checks the parameter ranges
func (p Params) Validate() error {
	if p.Iterations < 0 {
		return fmt.Errorf("%w: iterations must not be negative, got %d", ErrInvalidParams, p.Iterations)
	}
	if p.Smoothing < 0 {
		return fmt.Errorf("%w: smoothing must not be negative, got %d", ErrInvalidParams, p.Smoothing)
	}
	if math.IsNaN(p.Threshold) || math.IsNaN(p.Balloon) || math.IsInf(p.Balloon, 0) {
		return fmt.Errorf("%w: threshold and balloon must be finite numbers", ErrInvalidParams)
	}
	return nil
}

// CheckInput verifies that image and levelSet are 2-dimensional grids of the same shape
func CheckInput(image, levelSet models.Shaper) error {
	imgShape := image.Shape()
	lsShape := levelSet.Shape()

	if len(imgShape) != 2 {
		return fmt.Errorf("%w: image has %d dimensions", ErrUnsupportedDims, len(imgShape))
	}
	if len(lsShape) != len(imgShape) {
		return fmt.Errorf("%w: level set has %d dimensions, image has %d",
			ErrShapeMismatch, len(lsShape), len(imgShape))
	}
	for i := range imgShape {
		if imgShape[i] != lsShape[i] {
			return fmt.Errorf("%w: level set %v, image %v", ErrShapeMismatch, lsShape, imgShape)
		}
	}
	return nil
}

// Evolver runs one segmentation. It owns the level set for the duration of the
// run and is not safe for concurrent use.
type Evolver struct {
	params   Params
	observer Observer

	width  int
	height int

	// speed gradient along rows and columns, computed once
	dRow []float64
	dCol []float64

	// balloonGate marks pixels where the balloon force may act
	balloonGate []bool

	u         []uint8
	curvature morphology.Curvature
	iteration int
	notified  bool
}

// Option configures an Evolver
type Option func(*Evolver)

// WithObserver registers the sink that receives the mask after each iteration
func WithObserver(o Observer) Option {
	return func(e *Evolver) {
		e.observer = o
	}
}

// NewEvolver validates the inputs and prepares a run. The initial level set is
// copied: pixels with a label > 0 start inside the region.
func NewEvolver(speed *models.SpeedField, init *models.LevelSet, params Params, opts ...Option) (*Evolver, error) {
	if speed == nil || init == nil {
		return nil, fmt.Errorf("%w: speed field and level set are required", ErrInvalidParams)
	}
	if err := CheckInput(speed, init); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Evolver{
		params: params,
		width:  speed.Width,
		height: speed.Height,
		u:      make([]uint8, len(init.Data)),
	}
	for _, opt := range opts {
		opt(e)
	}

	for i, v := range init.Data {
		if v > 0 {
			e.u[i] = 1
		}
	}

	e.dRow, e.dCol = gradient.Numeric(speed.Data, speed.Width, speed.Height)

	if params.Balloon != 0 {
		limit := params.Threshold / math.Abs(params.Balloon)
		e.balloonGate = make([]bool, len(speed.Data))
		for i, s := range speed.Data {
			e.balloonGate[i] = s > limit
		}
	}

	return e, nil
}

// Iteration returns the number of completed iterations
func (e *Evolver) Iteration() int {
	return e.iteration
}

// Mask returns a copy of the current level set
func (e *Evolver) Mask() *models.LevelSet {
	data := make([]uint8, len(e.u))
	copy(data, e.u)
	return &models.LevelSet{Data: data, Width: e.width, Height: e.height}
}

// notify hands a snapshot of the level set to the observer
func (e *Evolver) notify() {
	if e.observer != nil {
		e.observer.OnIterationComplete(e.iteration, e.Mask())
	}
}

// Step performs a single iteration. The first call also reports the initial
// mask to the observer.
func (e *Evolver) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("evolution stopped at iteration %d: %w", e.iteration, err)
	}
	if !e.notified {
		e.notify()
		e.notified = true
	}

	e.applyBalloon()
	e.applyAttachment()
	for s := 0; s < e.params.Smoothing; s++ {
		e.u = e.curvature.Apply(e.u, e.width, e.height)
	}

	e.iteration++
	e.notify()
	return nil
}

// Run performs the remaining iterations and returns the final level set
func (e *Evolver) Run(ctx context.Context) (*models.LevelSet, error) {
	if !e.notified {
		e.notify()
		e.notified = true
	}
	for e.iteration < e.params.Iterations {
		if err := e.Step(ctx); err != nil {
			return nil, err
		}
	}
	return e.Mask(), nil
}

// applyBalloon moves the region boundary by one pixel where the gate allows it
func (e *Evolver) applyBalloon() {
	var aux []uint8
	switch {
	case e.params.Balloon > 0:
		aux = morphology.Dilate(e.u, e.width, e.height, morphology.Full)
	case e.params.Balloon < 0:
		aux = morphology.Erode(e.u, e.width, e.height, morphology.Full)
	default:
		return
	}

	for i, open := range e.balloonGate {
		if open {
			e.u[i] = aux[i]
		}
	}
}

// applyAttachment pulls the boundary toward the edges of the speed field
func (e *Evolver) applyAttachment() {
	duRow, duCol := gradient.NumericLabels(e.u, e.width, e.height)

	for i := range e.u {
		aux := 0.0
		aux += e.dRow[i] * duRow[i]
		aux += e.dCol[i] * duCol[i]

		if aux > 0 {
			e.u[i] = 1
		} else if aux < 0 {
			e.u[i] = 0
		}
	}
}

// Evolve runs a complete evolution of init over speed
func Evolve(ctx context.Context, speed *models.SpeedField, init *models.LevelSet, params Params, observer Observer) (*models.LevelSet, error) {
	e, err := NewEvolver(speed, init, params, WithObserver(observer))
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
