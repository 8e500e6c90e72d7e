// Package prompt builds the natural-language instruction blocks sent to the
// simulation endpoint. Everything here is pure string assembly: no I/O, same
// output for the same input.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MONSTERBOY110/Twindex/internal/profile"
)

// simulationTemplate is the fixed-section simulation instruction. The five
// OUTPUT_FORMAT headings are a structural contract with the remote model:
// renaming or dropping one changes the shape of the response. Sleep hours use
// %v so whole-hour values render without a forced decimal ("6", not "6.0").
const simulationTemplate = `PATIENT_PROFILE:
Name: %s
Age: %d
Gender: %s
BMI: %.1f
Family_History: %s

BASELINE_LAB_DATA:
Fasting_Glucose: %.0f mg/dL
HbA1c: %.1f%%

CURRENT_LIFESTYLE:
Sleep: %v hours/night
Daily_Steps: %d
Sugar_Intake: %s
Stress_Level: %s

SCENARIOS_TO_SIMULATE:
A) Current lifestyle continues unchanged
B) Sleep increased to %v hours, sugar intake reduced to %s, daily steps increased to %d

SIMULATION_TIMEFRAME:
%d months

TASKS:
1. Simulate the future health risk trajectory for each scenario
2. Estimate relative change in Type 2 Diabetes risk as a percentage
3. Identify key lifestyle factors driving risk
4. Provide preventive, lifestyle-based suggestions
5. Explain reasoning using clear cause -> effect logic

OUTPUT_FORMAT:
- Risk_Comparison_Table (with scenarios, risk levels, HbA1c trend, glucose trend)
- Key_Risk_Drivers (bullet list of lifestyle factors)
- Estimated_Risk_Change_Percentage (e.g., "-28%% relative risk reduction")
- Cause_Effect_Explanation (explain how sleep, sugar, activity, stress affect diabetes risk)
- Simple_Summary (Explain like I am 12 - very simple language, friendly tone, no medical jargon)`

// BuildSimulation renders the full simulation instruction for a validated
// profile. The caller is responsible for validating the profile first;
// BuildSimulation emits whatever values it is given.
func BuildSimulation(p *profile.PatientProfile) string {
	return fmt.Sprintf(simulationTemplate,
		p.Name,
		p.Age,
		p.Gender,
		p.BMI(),
		p.FamilyHistory,
		p.FastingGlucose,
		p.HbA1c,
		p.SleepHours,
		p.DailySteps,
		p.SugarIntake,
		p.StressLevel,
		p.TargetSleepHours,
		p.TargetSugarIntake,
		p.TargetSteps,
		p.DurationMonths,
	)
}

const followupTemplate = `You are a preventive healthcare assistant continuing a conversation about a
health risk simulation report that was already produced for this user.

SIMULATION_REPORT:
%s

USER_QUESTION:
%s

TASKS:
Answer the question strictly in the context of the report above.

OUTPUT_FORMAT:
- Direct_Answer (answer the question in 2-3 sentences)
- Report_Reference (which part of the report the answer is based on)
- Lifestyle_Suggestion (one concrete, non-medical suggestion)
- Caveats (what this answer does and does not cover)
- Simple_Summary (one friendly plain-language sentence)`

const followupImageTemplate = `You are a preventive healthcare assistant. The user has attached an image of a
prescription or medical document and asks about it in the context of their
health risk simulation report.

SIMULATION_REPORT:
%s

USER_QUESTION:
%s

TASKS:
Explain in general terms what the attached prescription or document contains.
Do NOT give dosage instructions. Do NOT diagnose. Do NOT advise starting,
stopping or changing any medication; refer the user to their doctor for that.

OUTPUT_FORMAT:
- General_Explanation (what the attached document appears to be about)
- Relation_To_Report (how it relates, if at all, to the simulation report)
- Questions_For_Doctor (2-3 questions the user could ask their doctor)
- Simple_Summary (one friendly plain-language sentence)`

// BuildFollowup renders a follow-up instruction around the stored report and
// the current question. The template is chosen by attachment presence alone,
// never by inspecting the question text.
func BuildFollowup(report, question string, hasAttachment bool) string {
	report = strings.TrimSpace(report)
	question = strings.TrimSpace(question)
	if hasAttachment {
		return fmt.Sprintf(followupImageTemplate, report, question)
	}
	return fmt.Sprintf(followupTemplate, report, question)
}
