package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "twindex",
	Short: "Predictive health trajectory simulation client",
	Long: `Twindex turns a structured patient profile into a simulation prompt,
sends it to a Twindex backend, and lets you ask follow-up questions about the
resulting report, optionally attaching a prescription image. Disease context
cards relevant to the profile are shown alongside the report.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Mirror the backend's dotenv behaviour: a .env in the working directory
	// is loaded if present, silently skipped otherwise.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".twindex.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
