package rules

import "github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"

// Variable names exposed to rule expressions, one per measurement kind.
const (
	VarGlucose       = "Glucose"
	VarBloodPressure = "BloodPressure"
	VarFood          = "Food"
	VarExercise      = "Exercise"
)

var kindToVar = map[health.MeasurementKind]string{
	health.KindGlucose:       VarGlucose,
	health.KindBloodPressure: VarBloodPressure,
	health.KindFood:          VarFood,
	health.KindExercise:      VarExercise,
}

// Facts converts a measurement into the CEL activation map. Only the
// variable for the measurement's kind is bound; rules for other kinds are
// filtered out before evaluation.
func Facts(m health.Measurement) map[string]any {
	switch v := m.(type) {
	case health.GlucoseReading:
		return map[string]any{
			VarGlucose: map[string]any{
				"Value":   v.ValueMgDl,
				"Context": string(v.Context),
			},
		}
	case health.BloodPressureReading:
		fields := map[string]any{
			"Systolic":  v.Systolic,
			"Diastolic": v.Diastolic,
		}
		if v.Pulse != nil {
			fields["Pulse"] = *v.Pulse
		}
		return map[string]any{VarBloodPressure: fields}
	case health.FoodIntake:
		fields := map[string]any{
			"Calories":      v.Calories,
			"Carbohydrates": optional(v.CarbohydratesG),
			"Sugar":         optional(v.SugarG),
			"GlycemicIndex": optional(v.GlycemicIndex),
			"Fiber":         optional(v.FiberG),
			"HasMacros":     v.HasMacros(),
		}
		return map[string]any{VarFood: fields}
	case health.ExerciseSession:
		return map[string]any{
			VarExercise: map[string]any{
				"DurationMinutes": v.DurationMinutes,
				"Intensity":       string(v.Intensity),
			},
		}
	default:
		return map[string]any{}
	}
}

// Absent macro fields evaluate as zero, matching the built-in rule engine.
func optional(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
