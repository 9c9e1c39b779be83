package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rajbhatia-png/reaperAgent/internal/config"
	"github.com/rajbhatia-png/reaperAgent/internal/engine"
	vlog "github.com/rajbhatia-png/reaperAgent/internal/log"
	"github.com/rajbhatia-png/reaperAgent/internal/phone"
	"github.com/rajbhatia-png/reaperAgent/internal/script"
	"github.com/rajbhatia-png/reaperAgent/internal/whatsapp"
)

type sendOptions struct {
	To             string
	DelaySeconds   float64
	TimeoutSeconds int
	DryRun         bool
	DotenvPath     string

	// set when the flag was given explicitly; otherwise the config
	// file value (if any) wins over the flag default.
	delaySet   bool
	timeoutSet bool
}

// runSend is the full send pipeline: compile, validate, execute.
// Every check that can fail without network I/O runs before the first
// delivery attempt.
func runSend(ctx context.Context, instructionsPath string, opts sendOptions) error {
	if _, err := os.Stat(instructionsPath); err != nil {
		return fmt.Errorf("instruction file not found: %s", instructionsPath)
	}
	kind, err := script.KindForPath(instructionsPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.DotenvPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile := openLogFile()
	vlog.Init(cfg.LogLevel, logFile)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := cfg.Validate(opts.DryRun); err != nil {
		return err
	}

	recipient, err := phone.Normalize(opts.To)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(instructionsPath)
	if err != nil {
		return fmt.Errorf("reading instruction file: %w", err)
	}

	steps := script.Compile(string(data), kind)
	if len(steps) == 0 {
		return errors.New("no actionable steps found in instruction file")
	}

	delay := opts.DelaySeconds
	if !opts.delaySet && cfg.DelaySeconds > 0 {
		delay = cfg.DelaySeconds
	}
	timeout := opts.TimeoutSeconds
	if !opts.timeoutSet && cfg.TimeoutSeconds > 0 {
		timeout = cfg.TimeoutSeconds
	}

	runID := uuid.NewString()
	vlog.Info("run starting",
		"run_id", runID,
		"steps", len(steps),
		"recipient", recipient,
		"dry_run", opts.DryRun)

	var sender whatsapp.Sender
	if !opts.DryRun {
		sender = whatsapp.NewClient(cfg.Token, cfg.PhoneNumberID, cfg.APIVersion,
			time.Duration(timeout)*time.Second)
	}

	disp := engine.NewDisplay(opts.DryRun)
	disp.Header(recipient, len(steps))

	eng := engine.New(sender, disp, engine.Options{
		DryRun:       opts.DryRun,
		DefaultDelay: time.Duration(delay * float64(time.Second)),
	})

	start := time.Now()
	sum, err := eng.Run(ctx, steps, recipient)
	if err != nil {
		disp.Failed(sum.Sent, err)
		vlog.Error("run failed", "run_id", runID, "sent", sum.Sent, "err", err)
		return err
	}

	disp.Summary(sum.Sent, time.Since(start))
	vlog.Info("run complete", "run_id", runID, "sent", sum.Sent)
	return nil
}

func openLogFile() *os.File {
	dir := ".reaper"
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(dir+"/reaper.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	return f
}
