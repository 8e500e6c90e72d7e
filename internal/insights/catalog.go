// Package insights filters a static disease catalog against the user's
// numeric profile to surface contextual information cards alongside the
// simulation report.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/MONSTERBOY110/Twindex/internal/profile"
)

// RelevanceRules is the predicate data attached to a disease record. MinAge
// drives the pass/fail filter; BMIThreshold is consumed only by the insight
// template.
type RelevanceRules struct {
	MinAge       *int     `json:"min_age,omitempty"`
	BMIThreshold *float64 `json:"bmi_threshold,omitempty"`
}

// DiseaseRecord is one entry of the static disease context catalog. The
// catalog is loaded once and immutable for the process lifetime.
type DiseaseRecord struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Category                string         `json:"category"`
	GlobalPrevalencePercent float64        `json:"global_prevalence_percent"`
	RelevanceRules          RelevanceRules `json:"relevance_rules"`
	KeyRiskFactors          []string       `json:"key_risk_factors"`
	InsightTemplate         string         `json:"insight_template"`
}

// UserSignals is the read-only projection of a patient profile that the
// matcher consumes.
type UserSignals struct {
	Age         int
	BMI         float64
	DailySteps  int
	SugarIntake string
	SleepHours  float64
	StressLevel string
}

// SignalsFromProfile projects the matcher's inputs out of a profile.
func SignalsFromProfile(p *profile.PatientProfile) UserSignals {
	return UserSignals{
		Age:         p.Age,
		BMI:         p.BMI(),
		DailySteps:  p.DailySteps,
		SugarIntake: p.SugarIntake,
		SleepHours:  p.SleepHours,
		StressLevel: p.StressLevel,
	}
}

// LoadCatalog fetches disease_context.json from the given URL. A failed load
// is expected to be non-fatal for callers: they degrade to an empty catalog
// and skip the context cards.
func LoadCatalog(ctx context.Context, url string) ([]DiseaseRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching disease catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching disease catalog: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading disease catalog: %w", err)
	}
	return parseCatalog(body)
}

// LoadCatalogFile reads the catalog from a local JSON file.
func LoadCatalogFile(path string) ([]DiseaseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading disease catalog %s: %w", path, err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]DiseaseRecord, error) {
	var records []DiseaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing disease catalog: %w", err)
	}
	return records, nil
}
