package health

// bpBand is one row of the blood pressure decision table.
type bpBand struct {
	category BPCategory
	severe   bool
	message  string
	color    string
	matches  func(systolic, diastolic int) bool
}

// Bands ordered most severe first; the first matching band wins. All bands
// use OR semantics across the two values except Elevated, which requires a
// raised systolic together with a normal diastolic. That asymmetry follows
// the AHA definition of isolated systolic elevation and is intentional.
var bpBands = []bpBand{
	{
		category: BPCrisis,
		severe:   true,
		message:  "Hypertensive crisis. Seek immediate medical attention.",
		color:    "#d32f2f",
		matches:  func(s, d int) bool { return s >= 180 || d >= 120 },
	},
	{
		category: BPStage2,
		message:  "Stage 2 hypertension. Contact your healthcare provider.",
		color:    "#f44336",
		matches:  func(s, d int) bool { return s >= 140 || d >= 90 },
	},
	{
		category: BPStage1,
		message:  "Stage 1 hypertension. Lifestyle changes recommended.",
		color:    "#ff9800",
		matches:  func(s, d int) bool { return s >= 130 || d >= 80 },
	},
	{
		category: BPElevated,
		message:  "Elevated blood pressure. Keep monitoring.",
		color:    "#ffc107",
		matches:  func(s, d int) bool { return s >= 120 && d < 80 },
	},
}

// ClassifyBloodPressure maps a systolic/diastolic pair to its AHA-style
// category. The function is pure and total over the validated input domain;
// callers validate the reading before classifying.
func ClassifyBloodPressure(systolic, diastolic int) BPClassification {
	for _, band := range bpBands {
		if band.matches(systolic, diastolic) {
			return BPClassification{
				Category: band.category,
				Severe:   band.severe,
				Message:  band.message,
				Color:    band.color,
			}
		}
	}
	return BPClassification{
		Category: BPNormal,
		Message:  "Blood pressure is in the normal range.",
		Color:    "#4caf50",
	}
}
