package engine

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Display handles terminal progress output for a run.
type Display struct {
	w      io.Writer
	dryRun bool
	stop   chan struct{}
	done   chan struct{}
}

// NewDisplay creates a display that writes to stdout.
func NewDisplay(dryRun bool) *Display {
	return &Display{w: os.Stdout, dryRun: dryRun}
}

// previewWidth is the fixed display width reserved for the message
// preview column.
var previewWidth = 40

// controlRe matches ANSI escape sequences and C0/DEL control characters
// that must not reach the terminal from message text.
var controlRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]|[\x00-\x1f\x7f]`)

// preview sanitizes message text and truncates it to previewWidth runes,
// appending an ellipsis if truncation occurs.
func preview(text string) string {
	text = controlRe.ReplaceAllString(text, " ")
	if utf8.RuneCountInString(text) <= previewWidth {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewWidth-1]) + "…"
}

// Header prints the run header.
func (d *Display) Header(recipient string, total int) {
	mode := ""
	if d.dryRun {
		mode = "  (dry run)"
	}
	fmt.Fprintf(d.w, "\n📨 reaper — %d steps → %s%s\n", total, recipient, mode)
	fmt.Fprintln(d.w, strings.Repeat("─", 64))
}

// SendStart prints a send-in-progress line and starts an elapsed time
// ticker that overwrites the line in place every second.
func (d *Display) SendStart(n, total int, text string) {
	fmt.Fprintf(d.w, "⏳ [%d/%d] SEND  %-40s sending...", n, total, preview(text))

	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop = stop
	d.done = done
	start := time.Now()

	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fmt.Fprintf(d.w, "\r⏳ [%d/%d] SEND  %-40s sending... %.0fs",
					n, total, preview(text), time.Since(start).Seconds())
			}
		}
	}()
}

// stopTicker stops the elapsed time goroutine and waits for it to finish.
func (d *Display) stopTicker() {
	if d.stop != nil {
		close(d.stop)
		<-d.done
		d.stop = nil
		d.done = nil
	}
}

// SendDone prints a completed send line, overwriting the running line
// when one is active. A zero duration (dry run) omits the timing column.
func (d *Display) SendDone(n, total int, text string, duration time.Duration) {
	prefix := ""
	if d.stop != nil {
		d.stopTicker()
		prefix = "\r"
	}
	if duration > 0 {
		fmt.Fprintf(d.w, "%s✅ [%d/%d] SEND  %-40s %.1fs\n",
			prefix, n, total, preview(text), duration.Seconds())
		return
	}
	fmt.Fprintf(d.w, "%s✅ [%d/%d] SEND  %s\n", prefix, n, total, preview(text))
}

// SendFailed prints a failed send line, overwriting the running line.
func (d *Display) SendFailed(n, total int, text string, err error) {
	prefix := ""
	if d.stop != nil {
		d.stopTicker()
		prefix = "\r"
	}
	fmt.Fprintf(d.w, "%s❌ [%d/%d] SEND  %-40s %s\n", prefix, n, total, preview(text), err.Error())
}

// Wait prints a pause line.
func (d *Display) Wait(n, total int, seconds float64) {
	fmt.Fprintf(d.w, "💤 [%d/%d] WAIT  %gs\n", n, total, seconds)
}

// Summary prints the final run summary.
func (d *Display) Summary(sent int, totalDuration time.Duration) {
	fmt.Fprintln(d.w, strings.Repeat("─", 64))
	fmt.Fprintf(d.w, "✅ Done  %d sent  %.0fs\n\n", sent, totalDuration.Seconds())
}

// Failed prints a failure summary.
func (d *Display) Failed(sent int, err error) {
	fmt.Fprintln(d.w, strings.Repeat("─", 64))
	fmt.Fprintf(d.w, "❌ Failed after %d sent: %s\n\n", sent, err.Error())
}
