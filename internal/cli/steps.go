package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rajbhatia-png/reaperAgent/internal/script"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:          "steps <instructions-file>",
	Short:        "Compile an instruction file and print its step sequence",
	Long:         "Compile an instruction file and print the resulting send/wait steps without contacting the API. No credentials are required.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSteps(args[0])
	},
}

func runSteps(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("instruction file not found: %s", path)
	}
	kind, err := script.KindForPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading instruction file: %w", err)
	}

	steps := script.Compile(string(data), kind)
	if len(steps) == 0 {
		return errors.New("no actionable steps found in instruction file")
	}

	for i, st := range steps {
		switch s := st.(type) {
		case script.SendStep:
			fmt.Printf("%3d  SEND  %s\n", i+1, s.Text)
		case script.WaitStep:
			fmt.Printf("%3d  WAIT  %gs\n", i+1, s.Seconds)
		}
	}
	return nil
}
