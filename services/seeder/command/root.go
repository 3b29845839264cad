package command

import (
	"fmt"
	"os"

	"friender/pkg/logger"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Generate and load friender demo users",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitLogger(logger.ServiceTypeSeeder, logLevel)
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seeder: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level")
}
