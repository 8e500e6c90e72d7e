package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MONSTERBOY110/Twindex/internal/config"
	"github.com/MONSTERBOY110/Twindex/internal/insights"
	"github.com/MONSTERBOY110/Twindex/internal/profile"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadCatalog loads the disease context catalog from the configured source.
// A failed load degrades to an empty catalog: the cards disappear, the main
// flow is unaffected.
func loadCatalog(ctx context.Context, cfg *config.Config) []insights.DiseaseRecord {
	var (
		catalog []insights.DiseaseRecord
		err     error
	)
	switch {
	case cfg.CatalogFile != "":
		catalog, err = insights.LoadCatalogFile(cfg.CatalogFile)
	case cfg.CatalogURL != "":
		catalog, err = insights.LoadCatalog(ctx, cfg.CatalogURL)
	default:
		return nil
	}
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "warning: disease catalog unavailable: %v\n", err)
		}
		return nil
	}
	return catalog
}

// printInsights renders the context cards matched for the profile.
func printInsights(catalog []insights.DiseaseRecord, p *profile.PatientProfile) {
	matches := insights.Match(catalog, insights.SignalsFromProfile(p))
	if len(matches) == 0 {
		return
	}
	fmt.Println("Context cards:")
	for _, rec := range matches {
		fmt.Printf("  - %s (%s)\n", rec.Name, rec.Category)
		fmt.Printf("    %s\n", insights.RenderInsight(rec))
		if len(rec.KeyRiskFactors) > 0 {
			fmt.Printf("    Key risk factors: %s\n", strings.Join(rec.KeyRiskFactors, ", "))
		}
	}
	fmt.Println()
}

// printProfileSummary prints the derived values the way the original intake
// form displays them.
func printProfileSummary(p *profile.PatientProfile) {
	fmt.Printf("Patient: %s, %d (%s)\n", p.Name, p.Age, p.Gender)
	fmt.Printf("BMI: %.1f (%s)\n", p.BMI(), p.BMIClass())
	fmt.Printf("Fasting glucose: %.0f mg/dL (%s)\n", p.FastingGlucose, p.GlucoseStatus())
	fmt.Printf("HbA1c: %.1f%% (%s)\n", p.HbA1c, p.HbA1cStatus())
	fmt.Println()
}
