// Package plugin ties the parameter bridge together into a plugin instance
// with a host-driven lifecycle.
package plugin

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/justyntemme/parambridge/pkg/event"
	"github.com/justyntemme/parambridge/pkg/framework/config"
	"github.com/justyntemme/parambridge/pkg/framework/debug"
	"github.com/justyntemme/parambridge/pkg/framework/flush"
	"github.com/justyntemme/parambridge/pkg/framework/gesture"
	"github.com/justyntemme/parambridge/pkg/framework/param"
	"github.com/justyntemme/parambridge/pkg/framework/process"
	"github.com/justyntemme/parambridge/pkg/ringqueue"
)

// Lifecycle errors
var (
	ErrNotInitialized = errors.New("plugin: not initialized")
	ErrAlreadyInit    = errors.New("plugin: already initialized")
	ErrActive         = errors.New("plugin: already active")
)

// State is the lifecycle stage of an instance.
type State int32

const (
	StateCreated State = iota
	StateInitialized
	StateActive
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitialized:
		return "initialized"
	case StateActive:
		return "active"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Instance is one plugin instance. Parameters are registered between
// NewInstance and Init; Init freezes the set and builds the bridge.
//
// Process, ProcessBlock and the params extension Flush run on the processing
// context and must never be called concurrently with each other. Everything
// else belongs to the control context.
type Instance struct {
	info   Info
	id     uuid.UUID
	cfg    *config.Config
	logger *debug.Logger
	host   flush.HostNotifier

	params      *param.Registry
	gestures    *gesture.Tracker
	queue       *ringqueue.Queue
	coordinator *flush.Coordinator
	editor      *flush.Editor

	state     atomic.Int32
	lastStats flush.Snapshot

	// Optional callbacks for customization
	onActivate   func(sampleRate float64, minFrames, maxFrames uint32) error
	onDeactivate func()
}

// NewInstance creates an instance. cfg and host may be nil; a nil cfg means
// config.Default.
func NewInstance(info Info, cfg *config.Config, host flush.HostNotifier) *Instance {
	if cfg == nil {
		cfg = config.Default()
	}
	id := uuid.New()

	logger := debug.Default().With("plugin", info.ID, "instance", id.String())
	cfg.Apply(logger)

	return &Instance{
		info:   info,
		id:     id,
		cfg:    cfg,
		logger: logger,
		host:   host,
		params: param.NewRegistry(),
	}
}

// Info returns the plugin metadata.
func (i *Instance) Info() Info { return i.info }

// ID returns the unique id of this instance.
func (i *Instance) ID() uuid.UUID { return i.id }

// Logger returns the instance logger. Control context only.
func (i *Instance) Logger() *debug.Logger { return i.logger }

// State returns the lifecycle stage.
func (i *Instance) State() State { return State(i.state.Load()) }

// Parameters returns the parameter registry for adding parameters
func (i *Instance) Parameters() *param.Registry { return i.params }

// Editor returns the control-side producer, or nil before Init.
func (i *Instance) Editor() *flush.Editor { return i.editor }

// Gestures returns the gesture tracker, or nil before Init.
func (i *Instance) Gestures() *gesture.Tracker { return i.gestures }

// OnActivate sets a callback run at the end of a successful Activate.
func (i *Instance) OnActivate(fn func(sampleRate float64, minFrames, maxFrames uint32) error) {
	i.onActivate = fn
}

// OnDeactivate sets a callback run by Deactivate.
func (i *Instance) OnDeactivate(fn func()) {
	i.onDeactivate = fn
}

// Init seals the parameter set and allocates the bridge between the control
// and processing contexts.
func (i *Instance) Init() error {
	if i.State() != StateCreated {
		return ErrAlreadyInit
	}

	queue, err := ringqueue.New(i.cfg.QueueCapacity)
	if err != nil {
		return fmt.Errorf("creating control queue: %w", err)
	}

	i.params.Seal()
	i.queue = queue
	i.gestures = gesture.NewTracker(i.params.Count())
	i.coordinator = flush.NewCoordinator(queue, i.params, i.gestures)
	i.editor = flush.NewEditor(queue, i.host, i.logger)

	i.state.Store(int32(StateInitialized))
	i.logger.Info("initialized with %d parameters, queue %d bytes", i.params.Count(), queue.Capacity())
	return nil
}

// Activate prepares the instance for processing. Any gesture left open by a
// previous session is cleared.
func (i *Instance) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	switch i.State() {
	case StateCreated:
		return ErrNotInitialized
	case StateActive, StateProcessing:
		return ErrActive
	}

	if n := i.gestures.Active(); n > 0 {
		i.logger.Debug("clearing %d open gestures", n)
	}
	i.gestures.Reset()

	if i.onActivate != nil {
		if err := i.onActivate(sampleRate, minFrames, maxFrames); err != nil {
			return fmt.Errorf("activate callback: %w", err)
		}
	}

	i.state.Store(int32(StateActive))
	i.logger.Info("activated at %.0f Hz, %d-%d frames", sampleRate, minFrames, maxFrames)
	return nil
}

// Deactivate returns an active instance to the initialized state.
func (i *Instance) Deactivate() {
	if s := i.State(); s != StateActive && s != StateProcessing {
		return
	}
	if i.onDeactivate != nil {
		i.onDeactivate()
	}
	i.state.Store(int32(StateInitialized))
	i.logger.Info("deactivated")
}

// StartProcessing marks the start of audio processing. Processing context.
func (i *Instance) StartProcessing() bool {
	return i.state.CompareAndSwap(int32(StateActive), int32(StateProcessing))
}

// StopProcessing marks the end of audio processing. Processing context.
func (i *Instance) StopProcessing() {
	i.state.CompareAndSwap(int32(StateProcessing), int32(StateActive))
}

// Process applies the parameter events for one block. Audio rendering is left
// to the embedding plugin, which reads param cells after Process returns.
func (i *Instance) Process(in event.InputEvents, out event.OutputEvents) {
	if i.coordinator == nil {
		return
	}
	i.coordinator.Flush(in, out)
}

// NewProcessContext returns a block context bound to this instance's
// parameters. Call after Init.
func (i *Instance) NewProcessContext(sampleRate float64) *process.Context {
	return process.NewContext(sampleRate, i.params)
}

// ProcessBlock is Process for a block described by ctx.
func (i *Instance) ProcessBlock(ctx *process.Context) {
	i.Process(ctx.In, ctx.Out)
}

// Stats returns the flush counters plus the editor send failures.
func (i *Instance) Stats() (flush.Snapshot, uint64) {
	if i.coordinator == nil {
		return flush.Snapshot{}, 0
	}
	return i.coordinator.Stats(), i.editor.Failed()
}

// OnMainThread runs host-scheduled work on the control context. It logs flush
// activity since the previous call.
func (i *Instance) OnMainThread() {
	if i.coordinator == nil {
		return
	}
	s := i.coordinator.Stats()
	delta := s.Sub(i.lastStats)
	i.lastStats = s

	if delta == (flush.Snapshot{}) {
		return
	}
	if delta.Dropped() > 0 {
		i.logger.Warn("flush: %s", delta)
		return
	}
	i.logger.Debug("flush: %s", delta)
}
