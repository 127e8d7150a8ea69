// Package transition moves visibility between panels and keeps the location,
// back stack, progress properties and panel controllers in step.
package transition

import (
	"context"
	"errors"
	"fmt"

	"panelnav/internal/document"
	"panelnav/internal/lifecycle"
	"panelnav/internal/location"
	"panelnav/internal/panel"
	"panelnav/internal/progress"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrUnknownPanel is returned when a transition names a panel that does not exist.
var ErrUnknownPanel = errors.New("unknown panel")

// Direction is derived from the order indices of source and target.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Result describes a transition.
type Result struct {
	From      string
	To        string
	Direction Direction
	// Changed is false for same-panel no-ops.
	Changed bool
}

// Options configures a Controller. Registry and History are required.
type Options struct {
	Registry  *panel.Registry
	History   location.History
	Lifecycle *lifecycle.Manager
	Tracker   *progress.Tracker
	Logger    zerolog.Logger
	Tracer    oteltrace.Tracer
}

// Controller performs panel transitions. It is not safe for concurrent use;
// callers serialize calls (the UI does so by running on the event loop).
type Controller struct {
	reg       *panel.Registry
	history   location.History
	lifecycle *lifecycle.Manager
	tracker   *progress.Tracker
	log       zerolog.Logger
	tracer    oteltrace.Tracer

	pointer Pointer
}

type mode int

const (
	modePush mode = iota
	modePop
)

// New creates a controller and binds every panel's declared controller path.
func New(opts Options) *Controller {
	c := &Controller{
		reg:       opts.Registry,
		history:   opts.History,
		lifecycle: opts.Lifecycle,
		tracker:   opts.Tracker,
		log:       opts.Logger,
		tracer:    opts.Tracer,
	}
	if c.lifecycle == nil {
		c.lifecycle = lifecycle.NewManager(lifecycle.NewNamespace())
	}
	if c.tracker == nil {
		c.tracker = progress.NewTracker(nil)
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("")
	}
	for _, p := range c.reg.Panels() {
		if err := c.lifecycle.Bind(p.ID, p.ObjectPath); err != nil {
			c.log.Warn().Err(err).Str("panel", p.ID).Msg("panel controller not bound")
		}
	}
	if v := c.reg.Visible(); v != nil {
		c.pointer.SetCurrent(v.ID)
	}
	return c
}

// Current returns the current panel ID.
func (c *Controller) Current() string {
	return c.pointer.Current()
}

// Previous returns the back target.
func (c *Controller) Previous() string {
	return c.pointer.Previous()
}

// Depth returns how many back hops are recorded.
func (c *Controller) Depth() int {
	return c.pointer.Len()
}

// Transition makes to the visible panel, leaving from.
// An empty from means there is no source panel.
func (c *Controller) Transition(ctx context.Context, from, to string) (Result, error) {
	return c.run(ctx, from, to, modePush)
}

// Back returns to the previous panel, popping the back stack.
func (c *Controller) Back(ctx context.Context) (Result, error) {
	return c.run(ctx, c.pointer.Current(), c.pointer.Previous(), modePop)
}

func (c *Controller) run(ctx context.Context, from, to string, m mode) (Result, error) {
	res := Result{From: from, To: to}
	if from == to {
		return res, nil
	}

	_, span := c.tracer.Start(ctx, "panelnav.transition", oteltrace.WithAttributes(
		attribute.String("panelnav.from", from),
		attribute.String("panelnav.to", to),
		attribute.Bool("panelnav.back", m == modePop),
	))
	defer span.End()

	src, dst, err := c.resolve(from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unresolved panel")
		c.log.Debug().Err(err).Msg("transition aborted")
		return res, err
	}

	loc := c.history.Location().WithPanel(to)
	if err := c.history.PushState(loc); err != nil {
		err = fmt.Errorf("transition %s -> %s: %w", from, to, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "history push failed")
		c.log.Error().Err(err).Msg("transition aborted")
		return res, err
	}

	switch m {
	case modePush:
		c.pointer.Push(from, to)
	case modePop:
		c.pointer.Pop()
	}
	if dst.PreviousOverride != "" {
		c.pointer.Override(dst.PreviousOverride)
	}

	for _, p := range c.reg.Panels() {
		p.Element.RemoveClass(document.ClassVisible)
	}
	if src != nil {
		res.Direction = orderClasses(src, dst)
	}
	dst.Element.AddClass(document.ClassVisible)
	c.tracker.Reset(dst.Element)
	c.tracker.MeasureBackButton(dst.Element)
	res.Changed = true

	if src != nil {
		if err := c.lifecycle.Hide(src.ID); err != nil {
			span.AddEvent("hide failed", oteltrace.WithAttributes(attribute.String("error", err.Error())))
			c.log.Warn().Err(err).Str("panel", src.ID).Msg("panel controller hide failed")
		}
	}
	if err := c.lifecycle.Show(dst.ID); err != nil {
		span.AddEvent("show failed", oteltrace.WithAttributes(attribute.String("error", err.Error())))
		c.log.Warn().Err(err).Str("panel", dst.ID).Msg("panel controller show failed")
	}

	span.SetAttributes(attribute.String("panelnav.direction", res.Direction.String()))
	c.log.Debug().
		Str("from", from).
		Str("to", to).
		Stringer("direction", res.Direction).
		Str("location", loc.String()).
		Int("depth", c.pointer.Len()).
		Msg("transition")
	return res, nil
}

// resolve looks up both panels before anything is mutated.
func (c *Controller) resolve(from, to string) (src, dst *panel.Panel, err error) {
	if from != "" {
		if src = c.reg.Get(from); src == nil {
			return nil, nil, fmt.Errorf("source %q: %w", from, ErrUnknownPanel)
		}
	}
	if dst = c.reg.Get(to); dst == nil {
		return nil, nil, fmt.Errorf("target %q: %w", to, ErrUnknownPanel)
	}
	return src, dst, nil
}

// orderClasses marks the lower-indexed panel previous and the higher-indexed one next.
func orderClasses(src, dst *panel.Panel) Direction {
	src.Element.ToggleClass(document.ClassPrevious, src.Index < dst.Index)
	src.Element.ToggleClass(document.ClassNext, src.Index > dst.Index)
	dst.Element.ToggleClass(document.ClassPrevious, dst.Index < src.Index)
	dst.Element.ToggleClass(document.ClassNext, dst.Index > src.Index)
	if src.Index < dst.Index {
		return DirectionForward
	}
	return DirectionBackward
}
