// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// DegenerateInputError reports a single-point computation whose output is
// not finite, typically from a zero or negative distance.
type DegenerateInputError struct {
	Input types.ObservableSet
	Row   types.CartesianRow
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input: dist=%g gives non-finite coordinates (X=%g U=%g)",
		e.Input.Dist, e.Row.X, e.Row.U)
}

// Observer receives a summary of every computation. The metrics collector
// implements it.
type Observer interface {
	ObserveComputation(mode types.InputMode, rows, degenerate int)
}

// Request is one unit of work for the Engine. It is built per request and
// never shared; the engine keeps no state between calls.
type Request struct {
	Mode types.InputMode

	// Star holds the scalar observables for Single and sweep modes. In
	// sweep modes the swept observable's value is ignored.
	Star types.ObservableSet

	// Sweep describes the ranged observable for sweep modes.
	Sweep types.SweepSpec

	// Rows holds the batch for Batch mode.
	Rows []types.NamedObservableSet
}

// Engine dispatches requests to the single, sweep and batch code paths.
type Engine struct {
	maxSweepPoints int
	logger         *slog.Logger
	observer       Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers a computation observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// NewEngine returns an Engine configured by cfg.
func NewEngine(cfg types.EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		maxSweepPoints: cfg.MaxSweepPoints,
		logger:         slog.Default(),
	}
	if e.maxSweepPoints <= 0 {
		e.maxSweepPoints = DefaultMaxSweepPoints
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute runs req. Single mode turns a non-finite result into a
// *DegenerateInputError; sweep and batch modes keep degenerate rows as NaN.
func (e *Engine) Compute(req Request) (types.CartesianResult, error) {
	var (
		res types.CartesianResult
		err error
	)

	switch req.Mode {
	case types.ModeSingle:
		res, err = e.single(req.Star)
	case types.ModeSweepRV, types.ModeSweepDist:
		if req.Sweep.Kind != req.Mode.SweepField() {
			return types.CartesianResult{}, fmt.Errorf("%w: mode %s cannot sweep %q", ErrInvalidSweep, req.Mode, req.Sweep.Kind)
		}
		res, err = Sweep(req.Star, req.Sweep, e.maxSweepPoints)
	case types.ModeBatch:
		res, err = e.batch(req.Rows)
	default:
		return types.CartesianResult{}, fmt.Errorf("unknown input mode %d", int(req.Mode))
	}
	if err != nil {
		return types.CartesianResult{}, err
	}

	degenerate := res.Degenerate()
	e.logger.Debug("computed kinematics",
		slog.String("mode", req.Mode.String()),
		slog.Int("rows", res.Len()),
		slog.Int("degenerate", degenerate))
	if e.observer != nil {
		e.observer.ObserveComputation(req.Mode, res.Len(), degenerate)
	}
	return res, nil
}

func (e *Engine) single(star types.ObservableSet) (types.CartesianResult, error) {
	res, err := Transform(Broadcast(star, 1))
	if err != nil {
		return types.CartesianResult{}, err
	}
	res.Mode = types.ModeSingle
	if !res.RowFinite(0) {
		return types.CartesianResult{}, &DegenerateInputError{Input: star, Row: res.Row(0)}
	}
	return res, nil
}

func (e *Engine) batch(rows []types.NamedObservableSet) (types.CartesianResult, error) {
	sets := make([]types.ObservableSet, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		sets[i] = r.ObservableSet
		names[i] = r.Name
	}

	res, err := Transform(FromSets(sets))
	if err != nil {
		return types.CartesianResult{}, err
	}
	res.Mode = types.ModeBatch
	res.Names = names
	return res, nil
}
