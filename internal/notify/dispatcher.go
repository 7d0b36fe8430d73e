// Package notify delivers credential lifecycle events to users. Delivery
// is asynchronous and best effort; the originating operation has already
// committed by the time an event reaches a sink.
package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/model"
)

// ErrClosed is returned by Send after the dispatcher has been closed.
var ErrClosed = errors.New("notify dispatcher closed")

// Sink receives a single event for delivery.
type Sink interface {
	Emit(ctx context.Context, event string, payload map[string]any) error
}

type queued struct {
	event   string
	payload map[string]any
}

// Dispatcher forwards events to a sink from a background goroutine. Send
// never blocks; when the buffer is full the event is counted as dropped
// and discarded. Close drains whatever is still buffered.
type Dispatcher struct {
	sink      Sink
	logger    *logger.Logger
	ch        chan queued
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

var _ model.Notifier = (*Dispatcher)(nil)

func NewDispatcher(sink Sink, bufferSize int, logger *logger.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		ch:     make(chan queued, bufferSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case q := <-d.ch:
			d.deliver(q)
		case <-d.done:
			for {
				select {
				case q := <-d.ch:
					d.deliver(q)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(q queued) {
	if err := d.sink.Emit(context.Background(), q.event, q.payload); err != nil {
		d.logger.Warn("failed to deliver event",
			"event", q.event,
			"error", err.Error())
	}
}

// Send enqueues the event for background delivery.
func (d *Dispatcher) Send(ctx context.Context, event string, payload map[string]any) error {
	if d.closed.Load() {
		return ErrClosed
	}

	select {
	case d.ch <- queued{event: event, payload: payload}:
		return nil
	case <-d.done:
		return ErrClosed
	default:
		d.dropped.Add(1)
		d.logger.Warn("event buffer full, dropping event",
			"event", event)
		return nil
	}
}

// Close stops accepting events, delivers what is buffered, and waits for
// the worker to exit.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports how many events were discarded because the buffer was
// full.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}
