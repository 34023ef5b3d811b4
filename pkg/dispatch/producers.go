package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/muesli/cancelreader"
)

// Ticker emits a tick every period regardless of how long the consumer
// takes to handle the previous one.
func Ticker(every time.Duration) Producer {
	return func(ctx context.Context, emit func(Event) bool) error {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-t.C:
				if !emit(Event{Kind: KindTick, Time: now}) {
					return nil
				}
			}
		}
	}
}

// Keys reads raw input from r and emits one event per decoded key. If r can
// be cancelled (cancelreader.CancelReader) it is cancelled on stop so the
// blocked read returns; any other reader must reach EOF or be closed by the
// caller for Stop to return.
func Keys(r io.Reader) Producer {
	return func(ctx context.Context, emit func(Event) bool) error {
		if c, ok := r.(interface{ Cancel() bool }); ok {
			stop := context.AfterFunc(ctx, func() { c.Cancel() })
			defer stop()
		}

		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			for _, k := range DecodeKeys(buf[:n]) {
				if !emit(Event{Kind: KindInput, Key: k, Time: time.Now()}) {
					return nil
				}
			}
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, cancelreader.ErrCanceled) {
					return nil
				}
				return fmt.Errorf("read input: %w", err)
			}
		}
	}
}
