package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MONSTERBOY110/Twindex/internal/profile"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show disease context cards for a patient profile",
	Long: `Matches the configured disease context catalog against the profile's
signals (age, BMI, lifestyle) and prints the relevant cards without running
a simulation.`,
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().String("profile", "patient.yml", "patient profile YAML file")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	profilePath, _ := cmd.Flags().GetString("profile")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := profile.LoadFile(profilePath)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	catalog := loadCatalog(ctx, cfg)
	if len(catalog) == 0 {
		fmt.Println("No disease catalog configured or catalog unavailable.")
		return nil
	}

	printProfileSummary(p)
	printInsights(catalog, p)
	return nil
}
