package health

import "fmt"

// Plausible physiological ranges enforced at the input boundary. Values
// outside these ranges are a validation error, not a classification concern.
const (
	MinSystolic  = 60
	MaxSystolic  = 250
	MinDiastolic = 40
	MaxDiastolic = 150
	MinGlucose   = 20.0
	MaxGlucose   = 600.0
)

// Validate rejects readings outside the plausible physiological range.
func (r BloodPressureReading) Validate() error {
	if r.Systolic < MinSystolic || r.Systolic > MaxSystolic {
		return fmt.Errorf("systolic %d out of range [%d, %d]", r.Systolic, MinSystolic, MaxSystolic)
	}
	if r.Diastolic < MinDiastolic || r.Diastolic > MaxDiastolic {
		return fmt.Errorf("diastolic %d out of range [%d, %d]", r.Diastolic, MinDiastolic, MaxDiastolic)
	}
	if r.Pulse != nil && *r.Pulse < 0 {
		return fmt.Errorf("pulse must be non-negative, got %d", *r.Pulse)
	}
	return nil
}

// Validate rejects implausible glucose values and unknown reading contexts.
func (r GlucoseReading) Validate() error {
	if r.ValueMgDl < MinGlucose || r.ValueMgDl > MaxGlucose {
		return fmt.Errorf("glucose %.1f mg/dL out of range [%.0f, %.0f]", r.ValueMgDl, MinGlucose, MaxGlucose)
	}
	switch r.Context {
	case ContextFasting, ContextAfterMeal, ContextRandom, ContextBedtime:
		return nil
	default:
		return fmt.Errorf("unknown reading context %q", r.Context)
	}
}

// Validate rejects negative nutrition values.
func (f FoodIntake) Validate() error {
	if f.Calories < 0 {
		return fmt.Errorf("calories must be non-negative, got %.1f", f.Calories)
	}
	for name, v := range map[string]*float64{
		"carbohydrates_g": f.CarbohydratesG,
		"sugar_g":         f.SugarG,
		"glycemic_index":  f.GlycemicIndex,
		"fiber_g":         f.FiberG,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %.1f", name, *v)
		}
	}
	return nil
}

// Validate rejects negative durations and unknown intensities.
func (s ExerciseSession) Validate() error {
	if s.DurationMinutes < 0 {
		return fmt.Errorf("duration must be non-negative, got %.1f", s.DurationMinutes)
	}
	switch s.Intensity {
	case IntensityLight, IntensityModerate, IntensityVigorous:
		return nil
	default:
		return fmt.Errorf("unknown intensity %q", s.Intensity)
	}
}
