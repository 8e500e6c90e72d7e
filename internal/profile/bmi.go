package profile

import "math"

// BMIClass is the standard WHO body-mass-index band.
type BMIClass string

const (
	BMIUnderweight BMIClass = "Underweight"
	BMINormal      BMIClass = "Normal Weight"
	BMIOverweight  BMIClass = "Overweight"
	BMIObese       BMIClass = "Obese"
)

// BMI derives the body-mass index from height and weight, rounded to one
// decimal as it is displayed and embedded in prompts. It is always derived,
// never stored, so it can never drift from its inputs.
func (p *PatientProfile) BMI() float64 {
	if p.HeightCM <= 0 || p.WeightKG <= 0 {
		return 0
	}
	m := p.HeightCM / 100
	return math.Round(p.WeightKG/(m*m)*10) / 10
}

// ClassifyBMI maps a BMI value to its band.
func ClassifyBMI(bmi float64) BMIClass {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMIClass returns the band of the derived BMI.
func (p *PatientProfile) BMIClass() BMIClass {
	return ClassifyBMI(p.BMI())
}

// LabStatus is the screening band for a lab value.
type LabStatus string

const (
	LabNormal      LabStatus = "Normal"
	LabPrediabetes LabStatus = "At Risk (Prediabetes)"
	LabDiabetes    LabStatus = "High (Diabetes)"
)

// GlucoseStatus bands the fasting glucose value (mg/dL) using the ADA
// screening cut-offs.
func (p *PatientProfile) GlucoseStatus() LabStatus {
	switch {
	case p.FastingGlucose < 100:
		return LabNormal
	case p.FastingGlucose < 126:
		return LabPrediabetes
	default:
		return LabDiabetes
	}
}

// HbA1cStatus bands the HbA1c percentage using the ADA screening cut-offs.
func (p *PatientProfile) HbA1cStatus() LabStatus {
	switch {
	case p.HbA1c < 5.7:
		return LabNormal
	case p.HbA1c < 6.5:
		return LabPrediabetes
	default:
		return LabDiabetes
	}
}
