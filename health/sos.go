package health

import "fmt"

// Glucose SOS thresholds in mg/dL. Both boundaries are exclusive: 70 and 250
// exactly do not trigger.
const (
	GlucoseLowThreshold  = 70.0
	GlucoseHighThreshold = 250.0
)

// alertContent holds the fixed per-kind message template and recommended
// action. Messages interpolate the measured value; actions are static.
type alertContent struct {
	message string // fmt template taking the measured value
	action  string
}

var alertTable = map[AlertKind]alertContent{
	AlertGlucoseLow: {
		message: "Blood sugar critically low (%.0f mg/dL).",
		action:  "Consume fast-acting glucose immediately and contact your healthcare provider.",
	},
	AlertGlucoseHigh: {
		message: "Blood sugar critically high (%.0f mg/dL).",
		action:  "Drink water, avoid food, and contact your healthcare provider.",
	},
	AlertHighCarbs: {
		message: "Very high carbohydrate or sugar load in this meal (%.0f kcal).",
		action:  "Monitor glucose closely over the next 2 hours and take a short walk.",
	},
	AlertModerateCarbs: {
		message: "Elevated carbohydrate content in this meal (%.0f kcal).",
		action:  "Pair with protein or fiber and re-check glucose after eating.",
	},
	AlertHighCalories: {
		message: "High calorie intake logged (%.0f kcal).",
		action:  "Balance the rest of today's meals and add light activity.",
	},
	AlertLowIntake: {
		message: "Very low intake logged (%.0f kcal).",
		action:  "Eat a balanced snack to avoid hypoglycemia.",
	},
	AlertHighGI: {
		message: "High glycemic index meal with little fiber (%.0f kcal).",
		action:  "Prefer low-GI alternatives or add fiber to slow absorption.",
	},
	AlertExerciseHypo: {
		message: "Extended exercise session (%.0f minutes).",
		action:  "Check glucose now and again in 2 hours; hypoglycemia risk is elevated.",
	},
	AlertExerciseCaution: {
		message: "Long exercise session (%.0f minutes).",
		action:  "Hydrate and monitor how you feel; consider a glucose check.",
	},
}

func newAlert(kind AlertKind, severity Severity, value float64) *SOSAlert {
	content := alertTable[kind]
	return &SOSAlert{
		Severity:          severity,
		Kind:              kind,
		Message:           fmt.Sprintf(content.message, value),
		RecommendedAction: content.action,
	}
}

// EvaluateSOS inspects a single newly-logged measurement and returns at most
// one alert, nil meaning no threshold was crossed. Evaluation is
// first-match-wins in a fixed priority order per measurement type. Blood
// pressure readings never produce an SOS alert here; they go through
// ClassifyBloodPressure instead.
func EvaluateSOS(m Measurement) *SOSAlert {
	switch v := m.(type) {
	case GlucoseReading:
		return evaluateGlucose(v)
	case FoodIntake:
		return evaluateFood(v)
	case ExerciseSession:
		return evaluateExercise(v)
	default:
		return nil
	}
}

func evaluateGlucose(r GlucoseReading) *SOSAlert {
	if r.ValueMgDl < GlucoseLowThreshold {
		return newAlert(AlertGlucoseLow, SeveritySevere, r.ValueMgDl)
	}
	if r.ValueMgDl > GlucoseHighThreshold {
		return newAlert(AlertGlucoseHigh, SeveritySevere, r.ValueMgDl)
	}
	return nil
}

func evaluateFood(f FoodIntake) *SOSAlert {
	carbs := deref(f.CarbohydratesG)
	sugar := deref(f.SugarG)
	gi := deref(f.GlycemicIndex)
	fiber := deref(f.FiberG)

	if f.HasMacros() {
		if carbs > 100 || sugar > 50 {
			return newAlert(AlertHighCarbs, SeveritySevere, f.Calories)
		}
		if carbs > 60 || sugar > 30 || (gi > 70 && carbs > 40) {
			return newAlert(AlertModerateCarbs, SeverityWarning, f.Calories)
		}
	} else {
		// Degraded-information fallback when only calories are known.
		if f.Calories > 1000 {
			return newAlert(AlertHighCalories, SeveritySevere, f.Calories)
		}
		if f.Calories > 800 {
			return newAlert(AlertHighCalories, SeverityWarning, f.Calories)
		}
	}

	if f.Calories < 100 && carbs < 15 {
		return newAlert(AlertLowIntake, SeverityWarning, f.Calories)
	}
	if gi > 70 && carbs > 30 && fiber < 3 {
		return newAlert(AlertHighGI, SeverityWarning, f.Calories)
	}
	return nil
}

func evaluateExercise(s ExerciseSession) *SOSAlert {
	if s.DurationMinutes > 90 || (s.DurationMinutes > 60 && s.Intensity == IntensityVigorous) {
		return newAlert(AlertExerciseHypo, SeverityWarning, s.DurationMinutes)
	}
	if s.DurationMinutes > 60 {
		return newAlert(AlertExerciseCaution, SeverityWarning, s.DurationMinutes)
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
