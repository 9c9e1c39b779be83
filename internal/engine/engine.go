// Package engine executes a compiled step sequence against one
// recipient, strictly in order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	vlog "github.com/rajbhatia-png/reaperAgent/internal/log"
	"github.com/rajbhatia-png/reaperAgent/internal/script"
	"github.com/rajbhatia-png/reaperAgent/internal/whatsapp"
)

// ErrDeliveryFailed marks a fatal delivery error. The first failed send
// aborts the run; later messages may presuppose earlier ones arrived,
// so skipping ahead is never correct.
var ErrDeliveryFailed = errors.New("message delivery failed")

// Options controls executor behavior for one run.
type Options struct {
	// DryRun prints and counts steps without delivering or pausing.
	DryRun bool
	// DefaultDelay is the pause applied after every delivered send,
	// but only when the sequence contains no explicit waits at all.
	DefaultDelay time.Duration
}

// Summary is the outcome of a run. Sent counts delivered sends
// (dry-run sends included); waits are never counted.
type Summary struct {
	Sent int
}

// Engine drives steps through a Sender with pacing and fail-fast
// delivery semantics.
type Engine struct {
	Sender  whatsapp.Sender
	Display *Display
	Options Options

	sleep func(ctx context.Context, d time.Duration) error
}

// New builds an Engine. Sender may be nil for dry runs.
func New(sender whatsapp.Sender, display *Display, opts Options) *Engine {
	return &Engine{
		Sender:  sender,
		Display: display,
		Options: opts,
		sleep:   sleepCtx,
	}
}

// Run executes steps in order. It returns how many sends completed and,
// on delivery failure, an error wrapping ErrDeliveryFailed; steps after
// the failed one never execute. Default-delay pacing is decided once,
// up front, from the whole sequence.
func (e *Engine) Run(ctx context.Context, steps []script.Step, recipient string) (Summary, error) {
	hasExplicitWaits := script.HasExplicitWaits(steps)
	total := len(steps)

	var sum Summary
	for i, step := range steps {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		switch s := step.(type) {
		case script.WaitStep:
			e.Display.Wait(i+1, total, s.Seconds)
			if e.Options.DryRun {
				continue
			}
			if err := e.sleep(ctx, secondsToDuration(s.Seconds)); err != nil {
				return sum, err
			}

		case script.SendStep:
			if e.Options.DryRun {
				e.Display.SendDone(i+1, total, s.Text, 0)
				sum.Sent++
				continue
			}

			e.Display.SendStart(i+1, total, s.Text)
			start := time.Now()
			receipt, err := e.Sender.SendText(ctx, recipient, s.Text)
			if err != nil {
				e.Display.SendFailed(i+1, total, s.Text, err)
				vlog.Error("delivery failed", "step", i+1, "err", err)
				return sum, fmt.Errorf("%w: step %d of %d: %w", ErrDeliveryFailed, i+1, total, err)
			}
			sum.Sent++
			e.Display.SendDone(i+1, total, s.Text, time.Since(start))
			vlog.Debug("message accepted", "step", i+1, "message_id", receipt.MessageID)

			if !hasExplicitWaits && e.Options.DefaultDelay > 0 {
				if err := e.sleep(ctx, e.Options.DefaultDelay); err != nil {
					return sum, err
				}
			}
		}
	}
	return sum, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
