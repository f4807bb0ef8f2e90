// Package trends analyzes seven-day measurement history and produces
// insight reports and weekly care plan adjustments.
package trends

import (
	"fmt"
	"time"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/careplan"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

// Trend direction values.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// Report statuses.
const (
	StatusAnalyzed         = "analyzed"
	StatusInsufficientData = "insufficient_data"
)

// Guideline thresholds (ADA / AHA).
const (
	glucoseFastingMin = 80.0
	glucoseFastingMax = 130.0
	glucoseAlertLevel = 200.0

	weeklyActivityTargetMinutes = 150.0

	glucoseCitation  = "American Diabetes Association. Standards of Medical Care in Diabetes - 2024. Diabetes Care 2024;47(Suppl 1)"
	bpCitation       = "American Heart Association. Understanding Blood Pressure Readings. 2024"
	activityCitation = "American Heart Association. Recommendations for Physical Activity in Adults. 2024"
)

// Stats summarizes one week of readings.
type Stats struct {
	Average       float64  `json:"average"`
	Min           float64  `json:"min"`
	Max           float64  `json:"max"`
	ReadingsCount int      `json:"readings_count"`
	AvgSecondary  *float64 `json:"avg_secondary,omitempty"`
}

// Report is a seven-day trend analysis for one measurement type.
type Report struct {
	Status          string   `json:"status"`
	Period          string   `json:"period"`
	Message         string   `json:"message,omitempty"`
	Stats           *Stats   `json:"stats,omitempty"`
	BPCategory      string   `json:"bp_category,omitempty"`
	TrendDirection  string   `json:"trend_direction,omitempty"`
	InTargetRange   bool     `json:"in_target_range"`
	Insights        []string `json:"insights,omitempty"`
	Recommendations []string `json:"recommendations"`
	Alerts          []string `json:"alerts,omitempty"`
	Citation        string   `json:"citation,omitempty"`
}

// Adjustment is one weekly care plan change driven by trend data.
type Adjustment struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// WeeklyAdjustments bundles the adjustments generated for one week.
type WeeklyAdjustments struct {
	WeekOf          string       `json:"week_of"`
	Adjustments     []Adjustment `json:"adjustments"`
	AdjustmentCount int          `json:"adjustment_count"`
	Message         string       `json:"message"`
}

// ActivitySummary compares the week's exercise minutes with the AHA target.
type ActivitySummary struct {
	TotalMinutes  float64 `json:"total_minutes"`
	TargetMinutes float64 `json:"target_minutes"`
	OnTrack       bool    `json:"on_track"`
	Citation      string  `json:"citation"`
}

// FullReport is the complete trend report for one patient.
type FullReport struct {
	GeneratedAt       string             `json:"generated_at"`
	Period            string             `json:"period"`
	Glucose           *Report            `json:"glucose,omitempty"`
	BloodPressure     *Report            `json:"blood_pressure,omitempty"`
	WeeklyAdjustments *WeeklyAdjustments `json:"weekly_adjustments"`
	ActivitySummary   *ActivitySummary   `json:"activity_summary"`
}

// Analyzer computes trend reports from stored records.
type Analyzer struct {
	store records.Store
}

func NewAnalyzer(store records.Store) *Analyzer {
	return &Analyzer{store: store}
}

// Direction classifies a chronological series of values as increasing,
// decreasing or stable by comparing the first-half average with the
// second-half average. A swing beyond five percent in either direction
// counts as a trend.
func Direction(values []float64) string {
	if len(values) < 3 {
		return TrendInsufficientData
	}
	mid := len(values) / 2
	var firstSum, secondSum float64
	for _, v := range values[:mid] {
		firstSum += v
	}
	for _, v := range values[mid:] {
		secondSum += v
	}
	firstAvg := firstSum / float64(mid)
	secondAvg := secondSum / float64(len(values)-mid)
	if firstAvg <= 0 {
		return TrendStable
	}
	diffPercent := (secondAvg - firstAvg) / firstAvg * 100
	switch {
	case diffPercent > 5:
		return TrendIncreasing
	case diffPercent < -5:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// GlucoseTrends analyzes the last seven days of glucose readings.
func (a *Analyzer) GlucoseTrends(patientID string) (*Report, error) {
	logs, err := a.store.ListDailyLogs(patientID, records.LogGlucose, 7)
	if err != nil {
		return nil, fmt.Errorf("loading glucose logs: %w", err)
	}
	stats, err := a.store.WeeklyStats(patientID, records.LogGlucose)
	if err != nil {
		return nil, fmt.Errorf("loading glucose stats: %w", err)
	}
	if len(logs) == 0 || stats.Count == 0 {
		return &Report{
			Status:  StatusInsufficientData,
			Message: "Not enough glucose readings to analyze trends. Log at least 3 readings.",
			Recommendations: []string{
				"Log your fasting glucose daily",
				"Log after-meal readings",
			},
		}, nil
	}

	report := &Report{
		Status: StatusAnalyzed,
		Period: "7 days",
		Stats: &Stats{
			Average:       stats.Average,
			Min:           stats.Min,
			Max:           stats.Max,
			ReadingsCount: stats.Count,
		},
		TrendDirection: Direction(chronologicalValues(logs)),
		InTargetRange:  stats.Average >= glucoseFastingMin && stats.Average <= glucoseFastingMax,
		Citation:       glucoseCitation,
	}

	avg := stats.Average
	switch {
	case avg > glucoseFastingMax:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average glucose (%.0f mg/dL) is above target range", avg))
		report.Recommendations = append(report.Recommendations,
			"Consider reducing carbohydrate intake",
			"Increase physical activity duration")
		if avg > glucoseAlertLevel {
			report.Alerts = append(report.Alerts,
				"Persistently high glucose - consult your healthcare provider")
		}
	case avg < glucoseFastingMin:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average glucose (%.0f mg/dL) is below target range", avg))
		report.Recommendations = append(report.Recommendations,
			"Monitor for hypoglycemia symptoms",
			"Consider adjusting meal timing")
	default:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average glucose (%.0f mg/dL) is within target range!", avg))
	}

	switch report.TrendDirection {
	case TrendIncreasing:
		report.Insights = append(report.Insights,
			"Your glucose levels show an increasing trend this week")
		report.Recommendations = append(report.Recommendations,
			"Review recent dietary changes")
	case TrendDecreasing:
		report.Insights = append(report.Insights,
			"Your glucose levels show a decreasing trend - good progress!")
	}
	return report, nil
}

// BPTrends analyzes the last seven days of blood pressure readings.
func (a *Analyzer) BPTrends(patientID string) (*Report, error) {
	logs, err := a.store.ListDailyLogs(patientID, records.LogBP, 7)
	if err != nil {
		return nil, fmt.Errorf("loading bp logs: %w", err)
	}
	stats, err := a.store.WeeklyStats(patientID, records.LogBP)
	if err != nil {
		return nil, fmt.Errorf("loading bp stats: %w", err)
	}
	if len(logs) == 0 || stats.Count == 0 {
		return &Report{
			Status:          StatusInsufficientData,
			Message:         "Not enough BP readings to analyze trends. Log at least 3 readings.",
			Recommendations: []string{"Log your blood pressure morning and evening"},
		}, nil
	}

	avgSystolic := stats.Average
	avgDiastolic := 0.0
	if stats.AvgSecondary != nil {
		avgDiastolic = *stats.AvgSecondary
	}
	classification := health.ClassifyBloodPressure(int(avgSystolic+0.5), int(avgDiastolic+0.5))

	report := &Report{
		Status: StatusAnalyzed,
		Period: "7 days",
		Stats: &Stats{
			Average:       avgSystolic,
			Min:           stats.Min,
			Max:           stats.Max,
			ReadingsCount: stats.Count,
			AvgSecondary:  stats.AvgSecondary,
		},
		BPCategory:     string(classification.Category),
		TrendDirection: Direction(chronologicalValues(logs)),
		InTargetRange:  classification.Category == health.BPNormal,
		Citation:       bpCitation,
	}

	avgLabel := fmt.Sprintf("%.0f/%.0f", avgSystolic, avgDiastolic)
	switch classification.Category {
	case health.BPNormal:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average BP (%s) is in the normal range!", avgLabel))
	case health.BPElevated:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average BP (%s) is elevated", avgLabel))
		report.Recommendations = append(report.Recommendations,
			"Reduce sodium intake to less than 2,300mg/day",
			"Increase physical activity to 150 minutes/week")
	case health.BPStage1:
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average BP (%s) indicates Stage 1 hypertension", avgLabel))
		report.Recommendations = append(report.Recommendations,
			"Follow DASH diet principles",
			"Limit alcohol and caffeine")
		report.Alerts = append(report.Alerts,
			"Discuss medication options with your healthcare provider")
	default: // stage 2 and crisis
		report.Insights = append(report.Insights,
			fmt.Sprintf("Your average BP (%s) indicates Stage 2 hypertension", avgLabel))
		report.Recommendations = append(report.Recommendations,
			"Monitor BP twice daily")
		report.Alerts = append(report.Alerts,
			"Contact your healthcare provider about blood pressure management")
	}

	switch report.TrendDirection {
	case TrendIncreasing:
		report.Insights = append(report.Insights,
			"Your systolic pressure shows an increasing trend")
		report.Recommendations = append(report.Recommendations,
			"Review stress levels and sleep quality")
	case TrendDecreasing:
		report.Insights = append(report.Insights,
			"Your blood pressure is trending downward - great progress!")
	}
	return report, nil
}

// WeeklyAdjustments derives care plan adjustments from the week's trends.
func (a *Analyzer) WeeklyAdjustments(patientID string, diseases []string) (*WeeklyAdjustments, error) {
	var adjustments []Adjustment

	if contains(diseases, careplan.DiseaseDiabetes) {
		glucose, err := a.GlucoseTrends(patientID)
		if err != nil {
			return nil, err
		}
		if glucose.Status == StatusAnalyzed && !glucose.InTargetRange {
			switch {
			case glucose.Stats.Average > 180:
				adjustments = append(adjustments,
					Adjustment{
						Type:   "diet",
						Action: "Add an extra vegetable serving to lunch and dinner",
						Reason: "High average glucose levels detected",
					},
					Adjustment{
						Type:   "activity",
						Action: "Increase walking duration by 10 minutes",
						Reason: "Physical activity helps regulate blood sugar",
					})
			case glucose.Stats.Average < 80:
				adjustments = append(adjustments, Adjustment{
					Type:   "diet",
					Action: "Add a small snack between meals",
					Reason: "Low average glucose levels detected",
				})
			}
		}
	}

	if contains(diseases, careplan.DiseaseHypertension) {
		bp, err := a.BPTrends(patientID)
		if err != nil {
			return nil, err
		}
		if bp.Status == StatusAnalyzed && isHypertensive(bp.BPCategory) {
			adjustments = append(adjustments,
				Adjustment{
					Type:   "diet",
					Action: "Reduce sodium to less than 1,500mg daily",
					Reason: "Elevated blood pressure detected",
				},
				Adjustment{
					Type:   "wellness",
					Action: "Add 10-minute evening relaxation session",
					Reason: "Stress management helps lower blood pressure",
				})
		}
	}

	message := "No adjustments needed - keep up the good work!"
	if len(adjustments) > 0 {
		message = "Your care plan has been updated based on this week's data"
	}
	return &WeeklyAdjustments{
		WeekOf:          time.Now().Format("2006-01-02"),
		Adjustments:     adjustments,
		AdjustmentCount: len(adjustments),
		Message:         message,
	}, nil
}

// FullReport builds the comprehensive trend report for one patient.
func (a *Analyzer) FullReport(patientID string, diseases []string) (*FullReport, error) {
	adjustments, err := a.WeeklyAdjustments(patientID, diseases)
	if err != nil {
		return nil, err
	}
	report := &FullReport{
		GeneratedAt:       time.Now().Format(time.RFC3339),
		Period:            "7 days",
		WeeklyAdjustments: adjustments,
	}

	if contains(diseases, careplan.DiseaseDiabetes) {
		if report.Glucose, err = a.GlucoseTrends(patientID); err != nil {
			return nil, err
		}
	}
	if contains(diseases, careplan.DiseaseHypertension) {
		if report.BloodPressure, err = a.BPTrends(patientID); err != nil {
			return nil, err
		}
	}

	activityLogs, err := a.store.ListDailyLogs(patientID, records.LogActivity, 7)
	if err != nil {
		return nil, fmt.Errorf("loading activity logs: %w", err)
	}
	var totalMinutes float64
	for _, l := range activityLogs {
		totalMinutes += l.Value
	}
	report.ActivitySummary = &ActivitySummary{
		TotalMinutes:  totalMinutes,
		TargetMinutes: weeklyActivityTargetMinutes,
		OnTrack:       totalMinutes >= weeklyActivityTargetMinutes,
		Citation:      activityCitation,
	}
	return report, nil
}

// chronologicalValues extracts values oldest first from a newest-first
// log listing.
func chronologicalValues(logs []*records.DailyLog) []float64 {
	values := make([]float64, len(logs))
	for i, l := range logs {
		values[len(logs)-1-i] = l.Value
	}
	return values
}

func isHypertensive(category string) bool {
	switch health.BPCategory(category) {
	case health.BPStage1, health.BPStage2, health.BPCrisis:
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
