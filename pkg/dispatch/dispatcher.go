// Package dispatch merges independent producers (keyboard, ticker) into one
// ordered event stream for a single consumer.
package dispatch

import (
	"context"
	"errors"
	"sync"
)

var ErrStopped = errors.New("dispatch: stopped")

// Producer runs on its own goroutine and hands events to emit. emit returns
// false once the dispatcher is stopping; the producer should then return.
type Producer func(ctx context.Context, emit func(Event) bool) error

// Dispatcher is a multi-producer, single-consumer queue. Events are
// delivered in arrival order with no priority between producers. The queue
// is unbounded so a slow consumer never drops ticks or keys.
type Dispatcher struct {
	producers []Producer

	in  chan Event
	out chan Event

	startOnce sync.Once
	stopOnce  sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	prodWG sync.WaitGroup
	pumpWG sync.WaitGroup

	errMu sync.Mutex
	errs  []error
}

func New(producers ...Producer) *Dispatcher {
	return &Dispatcher{
		producers: producers,
		in:        make(chan Event),
		out:       make(chan Event),
	}
}

// Start launches the pump and one goroutine per producer. Idempotent.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.ctx, d.cancel = context.WithCancel(ctx)

		d.pumpWG.Add(1)
		go d.pump()

		for _, p := range d.producers {
			d.prodWG.Add(1)
			go func(p Producer) {
				defer d.prodWG.Done()
				if err := p(d.ctx, d.emit); err != nil {
					d.errMu.Lock()
					d.errs = append(d.errs, err)
					d.errMu.Unlock()
				}
			}(p)
		}
	})
}

// Stop cancels every producer and waits for all goroutines to exit.
// Idempotent.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		if d.cancel == nil {
			return
		}
		d.cancel()
		d.prodWG.Wait()
		d.pumpWG.Wait()
	})
}

// Next blocks for the next event. It returns ErrStopped once the dispatcher
// has shut down.
func (d *Dispatcher) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-d.out:
		if !ok {
			return Event{}, ErrStopped
		}
		return ev, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

// Events exposes the output channel. It is closed on Stop.
func (d *Dispatcher) Events() <-chan Event { return d.out }

// Err joins the errors producers returned.
func (d *Dispatcher) Err() error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return errors.Join(d.errs...)
}

func (d *Dispatcher) emit(ev Event) bool {
	select {
	case d.in <- ev:
		return true
	case <-d.ctx.Done():
		return false
	}
}

func (d *Dispatcher) pump() {
	defer d.pumpWG.Done()
	defer close(d.out)

	var queue []Event
	for {
		var out chan Event
		var head Event
		if len(queue) > 0 {
			out = d.out
			head = queue[0]
		}
		select {
		case ev := <-d.in:
			queue = append(queue, ev)
		case out <- head:
			queue[0] = Event{}
			queue = queue[1:]
		case <-d.ctx.Done():
			return
		}
	}
}
