package cli

import (
	"fmt"

	"github.com/rajbhatia-png/reaperAgent/internal/config"
	"github.com/spf13/cobra"
)

var doctorDotenv string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check reaper configuration and credentials",
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorDotenv, "dotenv", ".env", "Path to .env file for WhatsApp credentials")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✅ %s\n", label)
		} else {
			fmt.Printf("❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	cfg, cfgErr := config.Load(doctorDotenv)
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr == nil {
		check(config.EnvToken+" set", cfg.Token != "",
			"set it in the environment or in "+doctorDotenv)
		check(config.EnvPhoneNumberID+" set", cfg.PhoneNumberID != "",
			"set it in the environment or in "+doctorDotenv)
		check("API version resolved", cfg.APIVersion != "",
			"set "+config.EnvAPIVersion+" or remove the empty api_version from config.yaml")
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. reaper is ready.")
	} else {
		fmt.Println("Some checks failed. Fix the issues above before sending.")
	}
	return nil
}
