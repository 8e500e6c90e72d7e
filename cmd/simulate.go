package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MONSTERBOY110/Twindex/internal/attachment"
	"github.com/MONSTERBOY110/Twindex/internal/conversation"
	"github.com/MONSTERBOY110/Twindex/internal/export"
	"github.com/MONSTERBOY110/Twindex/internal/profile"
	"github.com/MONSTERBOY110/Twindex/internal/progress"
	"github.com/MONSTERBOY110/Twindex/internal/twindex"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a one-shot health trajectory simulation",
	Long: `Builds the simulation prompt from a patient profile YAML file, sends it to
the configured backend and prints the resulting report. Use the session
command instead if you want to ask follow-up questions.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().String("profile", "patient.yml", "patient profile YAML file")
	simulateCmd.Flags().Bool("insights", true, "show disease context cards")
	simulateCmd.Flags().Bool("export-html", false, "write an HTML snapshot of the report")
	simulateCmd.Flags().Bool("export-pdf", false, "write a PDF snapshot of the report")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	profilePath, _ := cmd.Flags().GetString("profile")
	showInsights, _ := cmd.Flags().GetBool("insights")
	exportHTML, _ := cmd.Flags().GetBool("export-html")
	exportPDF, _ := cmd.Flags().GetBool("export-pdf")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := profile.LoadFile(profilePath)
	if err != nil {
		return err
	}

	ctrl := twindex.NewController(
		twindex.NewClient(cfg.BaseURL),
		attachment.NewManager(),
		conversation.New(),
	)

	printProfileSummary(p)

	reporter := progress.NewReporter()
	reporter.Start("Simulating health trajectory...")
	report, err := ctrl.RunSimulation(ctx, p)
	reporter.Finish()
	if err != nil {
		return err
	}

	fmt.Println(report)
	fmt.Println()

	if showInsights {
		printInsights(loadCatalog(ctx, cfg), p)
	}

	if exportHTML || exportPDF {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	title := fmt.Sprintf("Twindex report - %s", p.Name)
	if exportHTML {
		path := filepath.Join(cfg.OutputDir, "report.html")
		if err := export.WriteHTML(path, title, report, nil); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	if exportPDF {
		path := filepath.Join(cfg.OutputDir, "report.pdf")
		if err := export.WritePDF(path, title, report); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}
