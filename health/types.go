package health

// MeasurementKind discriminates the measurement union.
type MeasurementKind string

const (
	KindBloodPressure MeasurementKind = "bp"
	KindGlucose       MeasurementKind = "glucose"
	KindFood          MeasurementKind = "food"
	KindExercise      MeasurementKind = "exercise"
)

// GlucoseContext is when a glucose reading was taken.
type GlucoseContext string

const (
	ContextFasting   GlucoseContext = "fasting"
	ContextAfterMeal GlucoseContext = "after_meal"
	ContextRandom    GlucoseContext = "random"
	ContextBedtime   GlucoseContext = "bedtime"
)

// Intensity is the self-reported effort level of an exercise session.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

// Measurement is a single newly-logged health reading. Implementations are
// plain value objects constructed at log-submit time and consumed immediately.
type Measurement interface {
	Kind() MeasurementKind
	Validate() error
}

// BloodPressureReading is a systolic/diastolic pair in mmHg with an
// optional pulse in bpm.
type BloodPressureReading struct {
	Systolic  int  `json:"systolic"`
	Diastolic int  `json:"diastolic"`
	Pulse     *int `json:"pulse,omitempty"`
}

func (BloodPressureReading) Kind() MeasurementKind { return KindBloodPressure }

// GlucoseReading is a blood glucose value in mg/dL.
type GlucoseReading struct {
	ValueMgDl float64        `json:"value_mg_dl"`
	Context   GlucoseContext `json:"reading_context"`
}

func (GlucoseReading) Kind() MeasurementKind { return KindGlucose }

// FoodIntake is a logged meal. The macro fields are only present when the
// meal was estimated by the food-analysis collaborator; a manual entry
// carries calories alone.
type FoodIntake struct {
	Calories       float64  `json:"calories"`
	CarbohydratesG *float64 `json:"carbohydrates_g,omitempty"`
	SugarG         *float64 `json:"sugar_g,omitempty"`
	GlycemicIndex  *float64 `json:"glycemic_index,omitempty"`
	FiberG         *float64 `json:"fiber_g,omitempty"`
}

func (FoodIntake) Kind() MeasurementKind { return KindFood }

// HasMacros reports whether any macro-level nutrition detail is available.
func (f FoodIntake) HasMacros() bool {
	return f.CarbohydratesG != nil || f.SugarG != nil || f.GlycemicIndex != nil || f.FiberG != nil
}

// ExerciseSession is a logged activity session.
type ExerciseSession struct {
	DurationMinutes float64   `json:"duration_minutes"`
	Intensity       Intensity `json:"intensity"`
}

func (ExerciseSession) Kind() MeasurementKind { return KindExercise }

// BPCategory is an AHA-style blood pressure band.
type BPCategory string

const (
	BPNormal   BPCategory = "Normal"
	BPElevated BPCategory = "Elevated"
	BPStage1   BPCategory = "Stage1"
	BPStage2   BPCategory = "Stage2"
	BPCrisis   BPCategory = "Crisis"
)

// BPClassification is the result of classifying a blood pressure pair.
// Message and Color are fixed presentation content per category.
type BPClassification struct {
	Category BPCategory `json:"category"`
	Severe   bool       `json:"severe"`
	Message  string     `json:"message"`
	Color    string     `json:"color"`
}

// Severity grades an SOS alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeveritySevere  Severity = "severe"
)

// AlertKind identifies which rule produced an SOS alert.
type AlertKind string

const (
	AlertGlucoseLow      AlertKind = "glucose_low"
	AlertGlucoseHigh     AlertKind = "glucose_high"
	AlertHighCarbs       AlertKind = "high_carbs"
	AlertModerateCarbs   AlertKind = "moderate_carbs"
	AlertHighCalories    AlertKind = "high_calories"
	AlertLowIntake       AlertKind = "low_intake"
	AlertHighGI          AlertKind = "high_gi"
	AlertExerciseHypo    AlertKind = "exercise_hypo"
	AlertExerciseCaution AlertKind = "exercise_caution"
)

// SOSAlert is a rule-triggered warning surfaced to the user and potentially
// their emergency contacts. Dispatching any notification is the caller's job.
type SOSAlert struct {
	Severity          Severity  `json:"severity"`
	Kind              AlertKind `json:"kind"`
	Message           string    `json:"message"`
	RecommendedAction string    `json:"recommended_action"`
}
