package profile

import "fmt"

// MissingFieldError reports the first required profile field found blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// requiredFields lists every field the simulation prompt needs, in the order
// the original intake form presents them. Validate reports the first blank
// one, so this order is part of the contract.
var requiredFields = []struct {
	name string
	set  func(*PatientProfile) bool
}{
	{"name", func(p *PatientProfile) bool { return p.Name != "" }},
	{"age", func(p *PatientProfile) bool { return p.Age > 0 }},
	{"gender", func(p *PatientProfile) bool { return p.Gender != "" }},
	{"family_history", func(p *PatientProfile) bool { return p.FamilyHistory != "" }},
	{"height_cm", func(p *PatientProfile) bool { return p.HeightCM > 0 }},
	{"weight_kg", func(p *PatientProfile) bool { return p.WeightKG > 0 }},
	{"fasting_glucose", func(p *PatientProfile) bool { return p.FastingGlucose > 0 }},
	{"hba1c", func(p *PatientProfile) bool { return p.HbA1c > 0 }},
	{"sleep_hours", func(p *PatientProfile) bool { return p.SleepHours > 0 }},
	{"daily_steps", func(p *PatientProfile) bool { return p.DailySteps > 0 }},
	{"sugar_intake", func(p *PatientProfile) bool { return p.SugarIntake != "" }},
	{"stress_level", func(p *PatientProfile) bool { return p.StressLevel != "" }},
	{"target_sleep_hours", func(p *PatientProfile) bool { return p.TargetSleepHours > 0 }},
	{"target_steps", func(p *PatientProfile) bool { return p.TargetSteps > 0 }},
	{"target_sugar_intake", func(p *PatientProfile) bool { return p.TargetSugarIntake != "" }},
	{"duration_months", func(p *PatientProfile) bool { return p.DurationMonths > 0 }},
}

// Validate checks that every field the prompt builder needs is present.
// It returns a MissingFieldError naming the first blank field, scanning in
// form order, or nil when the profile is complete.
func (p *PatientProfile) Validate() error {
	for _, f := range requiredFields {
		if !f.set(p) {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}
