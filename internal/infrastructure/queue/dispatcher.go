package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/api/metrics"
	"github.com/veicsys/veicsys/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Enqueue once the dispatcher has been stopped.
var ErrStopped = errors.New("dispatcher stopped")

// Dispatcher routes process events to a fixed set of workers using consistent
// hashing on the protocol, guaranteeing per-process event ordering.
type Dispatcher struct {
	workers []chan ports.ProcessEventInput
	service ports.EventService
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	done    <-chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.EventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ProcessEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ProcessEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channel and exit
// after Stop. Cancelling ctx stops them at once, dropping whatever is still
// queued, and makes Enqueue fail with ErrStopped.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	d.done = ctx.Done()
	d.mu.Unlock()
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker channels and waits until queued events are processed.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Enqueue sends an event to the worker responsible for its protocol.
// The call blocks once that worker's buffer is full.
func (d *Dispatcher) Enqueue(event ports.ProcessEventInput) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	idx := d.shardIndex(event.Protocol)
	select {
	case d.workers[idx] <- event:
	case <-d.done:
		return ErrStopped
	}
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// EnqueueBatch enqueues multiple events preserving per-process ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.ProcessEventInput) error {
	for _, e := range events {
		if err := d.Enqueue(e); err != nil {
			return err
		}
	}
	return nil
}

// shardIndex maps a protocol deterministically to a worker index.
func (d *Dispatcher) shardIndex(protocol string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(protocol))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ProcessEventInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			if n := len(ch); n > 0 {
				d.log.Warn().Int("worker_id", id).Int("dropped", n).Msg("worker cancelled with queued events")
			}
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("protocol", event.Protocol).
					Str("status", event.Status).
					Int("worker_id", id).
					Msg("event processing failed")
			}
		}
	}
}
