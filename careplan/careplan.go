// Package careplan generates personalized daily care plans, HbA1c feedback,
// hydration targets and care reminders from a patient's disease profile.
package careplan

import (
	"fmt"
	"sort"
	"time"
)

// Known disease identifiers accepted in a patient profile.
const (
	DiseaseDiabetes     = "diabetes"
	DiseaseHeartDisease = "heart_disease"
	DiseaseHypertension = "hypertension"
)

// Task is one timed entry in a daily care plan.
type Task struct {
	Time     string `json:"time"` // "07:00 AM"
	Task     string `json:"task"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// Plan is a full daily care plan for one patient.
type Plan struct {
	UserName  string   `json:"user_name"`
	Diseases  []string `json:"diseases"`
	Date      string   `json:"date"`
	Tasks     []Task   `json:"tasks"`
	Tips      []string `json:"tips"`
	Citations []string `json:"citations"`
}

// Generate builds a care plan for the named patient. Base morning and
// evening tasks apply to everyone; disease-specific tasks, tips and
// citations are layered on top. Tasks come back sorted by time of day.
func Generate(userName string, diseases []string) *Plan {
	tasks := []Task{
		{Time: "07:00 AM", Task: "Take morning medications", Category: "medication", Priority: "high"},
		{Time: "07:30 AM", Task: "Light stretching exercise (10 mins)", Category: "exercise", Priority: "medium"},
	}
	var tips []string
	citations := map[string]struct{}{}

	for _, d := range diseases {
		switch d {
		case DiseaseDiabetes:
			tasks = append(tasks,
				Task{Time: "08:00 AM", Task: "Check fasting blood sugar level", Category: "monitoring", Priority: "high"},
				Task{Time: "12:00 PM", Task: "Eat balanced lunch (low glycemic index)", Category: "diet", Priority: "high"},
				Task{Time: "06:00 PM", Task: "Check post-meal blood sugar", Category: "monitoring", Priority: "medium"},
			)
			tips = append(tips,
				"Keep blood sugar levels between 80-130 mg/dL before meals (ADA Guidelines)",
				"Stay hydrated - drink at least 8 glasses of water daily",
				"Target HbA1c below 7% for most adults with diabetes",
			)
			citations["American Diabetes Association. Standards of Medical Care in Diabetes - 2024. Diabetes Care 2024;47(Suppl 1)"] = struct{}{}
		case DiseaseHeartDisease:
			tasks = append(tasks,
				Task{Time: "08:30 AM", Task: "Monitor blood pressure", Category: "monitoring", Priority: "high"},
				Task{Time: "10:00 AM", Task: "30-minute brisk walk", Category: "exercise", Priority: "high"},
				Task{Time: "01:00 PM", Task: "Take heart medication with lunch", Category: "medication", Priority: "high"},
			)
			tips = append(tips,
				"Limit sodium intake to less than 2,300mg per day (AHA Guidelines)",
				"Avoid saturated fats and trans fats",
				"Aim for 150 minutes of moderate exercise per week",
			)
			citations["American Heart Association. Diet and Lifestyle Recommendations. 2024"] = struct{}{}
		case DiseaseHypertension:
			tasks = append(tasks,
				Task{Time: "09:00 AM", Task: "Morning blood pressure check", Category: "monitoring", Priority: "high"},
				Task{Time: "05:00 PM", Task: "Evening blood pressure check", Category: "monitoring", Priority: "high"},
				Task{Time: "08:00 PM", Task: "Relaxation/meditation (15 mins)", Category: "wellness", Priority: "medium"},
			)
			tips = append(tips,
				"Target blood pressure below 130/80 mmHg (AHA Guidelines)",
				"Reduce salt intake to help control blood pressure",
				"Practice stress management techniques daily",
			)
			citations["American Heart Association. Understanding Blood Pressure Readings. 2024"] = struct{}{}
		}
	}

	tasks = append(tasks,
		Task{Time: "09:00 PM", Task: "Take evening medications", Category: "medication", Priority: "high"},
		Task{Time: "10:00 PM", Task: "Prepare for 7-8 hours of sleep", Category: "wellness", Priority: "medium"},
	)

	sort.SliceStable(tasks, func(i, j int) bool {
		return clockMinutes(tasks[i].Time) < clockMinutes(tasks[j].Time)
	})

	citationList := make([]string, 0, len(citations))
	for c := range citations {
		citationList = append(citationList, c)
	}
	sort.Strings(citationList)

	return &Plan{
		UserName:  userName,
		Diseases:  diseases,
		Date:      time.Now().Format("2006-01-02"),
		Tasks:     tasks,
		Tips:      tips,
		Citations: citationList,
	}
}

func clockMinutes(s string) int {
	t, err := time.Parse("03:04 PM", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// HbA1cFeedback returns plain-language feedback for an HbA1c percentage,
// following the ADA categorization.
func HbA1cFeedback(value float64) string {
	switch {
	case value < 5.7:
		return "Normal range - excellent blood sugar control."
	case value < 6.5:
		return "Prediabetes range (5.7-6.4%) - consider lifestyle modifications."
	case value < 7.0:
		return "Good control for most diabetics. Target is below 7% (ADA Guidelines)."
	case value < 8.0:
		return "Above target - discuss with your doctor about optimizing your care plan."
	default:
		return "Above 8% - please consult your healthcare provider about adjusting treatment."
	}
}

// Hydration targets in milliliters per day.
const (
	WaterTargetMl  = 2500
	WaterMinimumMl = 1500
)

// WaterStatus summarizes the day's water intake against the daily target.
type WaterStatus struct {
	TotalMl    int    `json:"total_ml"`
	TargetMl   int    `json:"target_ml"`
	PercentMet int    `json:"percent_met"`
	Message    string `json:"message"`
}

// EvaluateWater builds the day's hydration status. Intakes below the
// minimum get a nudge to drink more.
func EvaluateWater(totalMl int) WaterStatus {
	status := WaterStatus{
		TotalMl:    totalMl,
		TargetMl:   WaterTargetMl,
		PercentMet: totalMl * 100 / WaterTargetMl,
	}
	switch {
	case totalMl >= WaterTargetMl:
		status.Message = "Daily hydration target met. Well done!"
	case totalMl < WaterMinimumMl:
		status.Message = fmt.Sprintf("Only %dml so far today. Aim for at least %dml - proper hydration helps manage blood sugar.", totalMl, WaterTargetMl)
	default:
		status.Message = fmt.Sprintf("%dml of %dml logged. Keep sipping through the day.", totalMl, WaterTargetMl)
	}
	return status
}
