package cli

import (
	"github.com/spf13/cobra"
)

var (
	sendTo      string
	sendDelay   float64
	sendTimeout int
	sendDryRun  bool
	sendDotenv  string
)

var sendCmd = &cobra.Command{
	Use:          "send <instructions-file>",
	Short:        "Compile an instruction file and send its steps to one recipient",
	Example:      `  reaper send intro.txt --to "+14155552671" --delay-seconds 2`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sendOptions{
			To:             sendTo,
			DelaySeconds:   sendDelay,
			TimeoutSeconds: sendTimeout,
			DryRun:         sendDryRun,
			DotenvPath:     sendDotenv,
			delaySet:       cmd.Flags().Changed("delay-seconds"),
			timeoutSet:     cmd.Flags().Changed("timeout-seconds"),
		}
		return runSend(cmd.Context(), args[0], opts)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "Recipient phone number with country code, e.g. +14155552671")
	sendCmd.Flags().Float64Var(&sendDelay, "delay-seconds", 1.0, "Delay after each send when the file has no WAIT directives")
	sendCmd.Flags().IntVar(&sendTimeout, "timeout-seconds", 30, "HTTP timeout for each API request")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "Print steps instead of sending messages")
	sendCmd.Flags().StringVar(&sendDotenv, "dotenv", ".env", "Path to .env file for WhatsApp credentials")
	sendCmd.MarkFlagRequired("to")
}
