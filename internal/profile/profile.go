package profile

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"
)

// Gender is the patient's declared gender.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PatientProfile holds everything the simulation prompt is built from:
// identity, baseline labs, current lifestyle and the target lifestyle the
// simulation compares against.
type PatientProfile struct {
	Name          string  `yaml:"name"`
	Age           int     `yaml:"age"`
	Gender        Gender  `yaml:"gender"`
	HeightCM      float64 `yaml:"height_cm"`
	WeightKG      float64 `yaml:"weight_kg"`
	FamilyHistory string  `yaml:"family_history"`

	FastingGlucose float64 `yaml:"fasting_glucose"` // mg/dL
	HbA1c          float64 `yaml:"hba1c"`           // %

	SleepHours  float64 `yaml:"sleep_hours"`
	DailySteps  int     `yaml:"daily_steps"`
	SugarIntake string  `yaml:"sugar_intake"`
	StressLevel string  `yaml:"stress_level"`

	TargetSleepHours  float64 `yaml:"target_sleep_hours"`
	TargetSteps       int     `yaml:"target_steps"`
	TargetSugarIntake string  `yaml:"target_sugar_intake"`

	DurationMonths int `yaml:"duration_months"`
}

// LoadFile reads a patient profile from a YAML file.
func LoadFile(path string) (*PatientProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var p PatientProfile
	if err := yamlv3.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return &p, nil
}
