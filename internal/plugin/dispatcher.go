package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/logger"
)

// DefaultQueueSize is the number of pending actions kept before new ones are dropped.
const DefaultQueueSize = 16

// ErrUnsupportedAction is returned when a binding names an action its plugin does not list.
var ErrUnsupportedAction = errors.New("action not supported by plugin")

// Binding ties a gesture transition to a plugin action.
type Binding struct {
	Plugin string
	Action string
	Params json.RawMessage

	// OnRelease fires the action when the gesture turns off instead of on.
	OnRelease bool
}

// Stats counts dispatcher outcomes.
type Stats struct {
	Executed int64
	Failed   int64
	Dropped  int64
}

type job struct {
	binding Binding
	request Request
}

// Dispatcher runs bound plugin actions on a single background worker so that
// gesture transitions never wait on a subprocess. When the queue is full new
// actions are dropped.
type Dispatcher struct {
	manager  *Manager
	executor *Executor
	bindings map[gesture.Symbol][]Binding

	mu     sync.RWMutex
	closed bool
	queue  chan job

	startOnce sync.Once
	wg        sync.WaitGroup

	executed atomic.Int64
	failed   atomic.Int64
	dropped  atomic.Int64
}

// NewDispatcher creates a Dispatcher. A non-positive queueSize uses DefaultQueueSize.
func NewDispatcher(manager *Manager, executor *Executor, bindings map[gesture.Symbol][]Binding, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		manager:  manager,
		executor: executor,
		bindings: bindings,
		queue:    make(chan job, queueSize),
	}
}

// Validate checks that every binding names a discovered plugin that supports its action.
func (d *Dispatcher) Validate() error {
	for sym, bs := range d.bindings {
		for _, b := range bs {
			p, err := d.manager.Get(b.Plugin)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", sym, b.Plugin, err)
			}
			if !p.Manifest.Supports(b.Action) {
				return fmt.Errorf("%s: %s.%s: %w", sym, b.Plugin, b.Action, ErrUnsupportedAction)
			}
		}
	}
	return nil
}

// Len returns the number of bindings.
func (d *Dispatcher) Len() int {
	n := 0
	for _, bs := range d.bindings {
		n += len(bs)
	}
	return n
}

// Start launches the worker. Actions run with ctx and stop early once it ends.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		ctx = logger.WithName(ctx, "plugin")
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for j := range d.queue {
				d.run(ctx, j)
			}
		}()
	})
}

// Notify queues every action bound to t. It never blocks.
func (d *Dispatcher) Notify(ctx context.Context, t gesture.Transition, frame int64, sessionID string) {
	bs := d.bindings[t.Symbol]
	if len(bs) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	for _, b := range bs {
		if b.OnRelease == t.Active {
			continue
		}

		j := job{
			binding: b,
			request: Request{
				Action:    b.Action,
				Gesture:   t.Symbol.String(),
				Active:    t.Active,
				Frame:     frame,
				SessionID: sessionID,
				Params:    b.Params,
			},
		}

		select {
		case d.queue <- j:
		default:
			d.dropped.Add(1)
			logger.WarnKV(ctx, "plugin queue full, dropping action", "plugin", b.Plugin, "action", b.Action, "symbol", t.Symbol)
		}
	}
}

// Close stops accepting actions and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Stats returns the outcome counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Executed: d.executed.Load(),
		Failed:   d.failed.Load(),
		Dropped:  d.dropped.Load(),
	}
}

func (d *Dispatcher) run(ctx context.Context, j job) {
	b := j.binding

	p, err := d.manager.Get(b.Plugin)
	if err != nil {
		d.failed.Add(1)
		logger.WarnKV(ctx, "plugin unavailable", "plugin", b.Plugin, "error", err)
		return
	}

	resp, err := d.executor.Execute(ctx, p, &j.request)
	if err != nil {
		d.failed.Add(1)
		logger.WarnKV(ctx, "plugin action failed", "plugin", b.Plugin, "action", b.Action, "error", err)
		return
	}
	if !resp.Success {
		d.failed.Add(1)
		logger.WarnKV(ctx, "plugin reported failure", "plugin", b.Plugin, "action", b.Action, "error", resp.Error)
		return
	}

	d.executed.Add(1)
	logger.DebugKV(ctx, "plugin action done", "plugin", b.Plugin, "action", b.Action, "symbol", j.request.Gesture, "frame", j.request.Frame)
}
