package insights

import (
	"strconv"
	"strings"
)

// maxMatches caps how many context cards are surfaced.
const maxMatches = 3

// defaultBMIThreshold is substituted for {threshold} when a record carries no
// bmi_threshold rule. An explicit documented default, not a magic literal in
// the template data.
const defaultBMIThreshold = "25"

// Evaluate decides whether a record's relevance rules pass for the given
// signals. A record with no min_age rule always passes; bmi_threshold is
// intentionally not part of the filter and is consumed only by the insight
// template.
func Evaluate(rules RelevanceRules, signals UserSignals) bool {
	if rules.MinAge != nil && signals.Age < *rules.MinAge {
		return false
	}
	return true
}

// Match filters the catalog against the signals, preserving catalog order,
// and truncates to the first 3 matches. No scoring, no randomization: the
// same catalog and signals always produce the same cards.
func Match(catalog []DiseaseRecord, signals UserSignals) []DiseaseRecord {
	var out []DiseaseRecord
	for _, rec := range catalog {
		if !Evaluate(rec.RelevanceRules, signals) {
			continue
		}
		out = append(out, rec)
		if len(out) == maxMatches {
			break
		}
	}
	return out
}

// RenderInsight substitutes the {prevalence} and {threshold} placeholders in
// a record's insight template. Substitution is single-shot per placeholder:
// only the first occurrence is replaced.
func RenderInsight(rec DiseaseRecord) string {
	prevalence := strconv.FormatFloat(rec.GlobalPrevalencePercent, 'f', -1, 64)
	threshold := defaultBMIThreshold
	if rec.RelevanceRules.BMIThreshold != nil {
		threshold = strconv.FormatFloat(*rec.RelevanceRules.BMIThreshold, 'f', -1, 64)
	}

	out := strings.Replace(rec.InsightTemplate, "{prevalence}", prevalence, 1)
	out = strings.Replace(out, "{threshold}", threshold, 1)
	return out
}
