package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/MONSTERBOY110/Twindex/internal/attachment"
	"github.com/MONSTERBOY110/Twindex/internal/conversation"
	"github.com/MONSTERBOY110/Twindex/internal/export"
	"github.com/MONSTERBOY110/Twindex/internal/insights"
	"github.com/MONSTERBOY110/Twindex/internal/profile"
	"github.com/MONSTERBOY110/Twindex/internal/progress"
	"github.com/MONSTERBOY110/Twindex/internal/twindex"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run a simulation and ask follow-up questions interactively",
	Long: `Runs a simulation for the given profile, then drops into an interactive
loop where each line is sent as a follow-up question about the report.

Commands inside the session:
  /attach <path>   attach a JPEG/PNG (e.g. a prescription) to the next question
  /detach          drop the pending attachment
  /insights        show disease context cards for the profile
  /export <path>   write an HTML snapshot of the report and conversation
  /quit            end the session

The conversation lives for this process only; nothing is persisted.`,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().String("profile", "patient.yml", "patient profile YAML file")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
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

	ctrl := twindex.NewController(
		twindex.NewClient(cfg.BaseURL),
		attachment.NewManager(),
		conversation.New(),
	)
	catalog := loadCatalog(ctx, cfg)

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
	printInsights(catalog, p)

	fmt.Println("Ask follow-up questions about the report. /quit to end.")
	for {
		q := promptui.Prompt{Label: "you"}
		line, err := q.Run()
		if err != nil {
			// Interrupt or EOF ends the session.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" && !ctrl.Attachments().Has() {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if done := runSessionCommand(ctx, ctrl, catalog, p, line); done {
				return nil
			}
			continue
		}

		reporter.Start("Thinking...")
		answer, err := ctrl.AskFollowup(ctx, line)
		reporter.Finish()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
}

// runSessionCommand handles the slash commands; it returns true when the
// session should end.
func runSessionCommand(ctx context.Context, ctrl *twindex.Controller, catalog []insights.DiseaseRecord, p *profile.PatientProfile, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true

	case "/attach":
		if arg == "" {
			fmt.Fprintln(os.Stderr, "usage: /attach <path>")
			return false
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		if err := ctrl.Attachments().Set(filepath.Base(arg), data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		fmt.Printf("Attached %s; it will be sent with your next question.\n", filepath.Base(arg))

	case "/detach":
		ctrl.Attachments().Clear()
		fmt.Println("Attachment removed.")

	case "/insights":
		if len(catalog) == 0 {
			fmt.Println("No disease catalog configured or catalog unavailable.")
			return false
		}
		printInsights(catalog, p)

	case "/export":
		if arg == "" {
			arg = "report.html"
		}
		title := fmt.Sprintf("Twindex report - %s", p.Name)
		convo := ctrl.Conversation()
		if err := export.WriteHTML(arg, title, convo.Report(), convo.Turns()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		fmt.Printf("Wrote %s\n", arg)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %s\n", name)
	}
	return false
}
