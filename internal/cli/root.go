package cli

import (
	"fmt"

	"github.com/rajbhatia-png/reaperAgent/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reaper",
	Short: "Scripted WhatsApp message sender",
	Long:  `reaper compiles a .txt/.md instruction file into send/wait steps and delivers them, in order, to one WhatsApp number via the Cloud API.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(stepsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reaper %s\n", version.Version)
	},
}
