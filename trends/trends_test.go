package trends

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/careplan"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"too few readings", []float64{100, 110}, TrendInsufficientData},
		{"rising", []float64{100, 100, 120, 120}, TrendIncreasing},
		{"falling", []float64{120, 120, 100, 100}, TrendDecreasing},
		{"flat", []float64{100, 101, 100, 102}, TrendStable},
		{"small swing under threshold", []float64{100, 100, 104, 104}, TrendStable},
		{"just over threshold", []float64{100, 100, 106, 106}, TrendIncreasing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Direction(tt.values); got != tt.want {
				t.Errorf("Direction(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func seedGlucose(t *testing.T, s records.Store, patientID string, values ...float64) {
	t.Helper()
	base := time.Now().Add(-time.Duration(len(values)) * time.Hour)
	for i, v := range values {
		err := s.SaveDailyLog(&records.DailyLog{
			ID:        uuid.New().String(),
			PatientID: patientID,
			LogType:   records.LogGlucose,
			Value:     v,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveDailyLog: %v", err)
		}
	}
}

func seedBP(t *testing.T, s records.Store, patientID string, readings ...[2]float64) {
	t.Helper()
	base := time.Now().Add(-time.Duration(len(readings)) * time.Hour)
	for i, r := range readings {
		d := r[1]
		err := s.SaveDailyLog(&records.DailyLog{
			ID:             uuid.New().String(),
			PatientID:      patientID,
			LogType:        records.LogBP,
			Value:          r[0],
			ValueSecondary: &d,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveDailyLog: %v", err)
		}
	}
}

func TestGlucoseTrendsInsufficientData(t *testing.T) {
	a := NewAnalyzer(records.NewInMemoryStore())
	report, err := a.GlucoseTrends("p1")
	if err != nil {
		t.Fatalf("GlucoseTrends: %v", err)
	}
	if report.Status != StatusInsufficientData {
		t.Errorf("status = %q, want %q", report.Status, StatusInsufficientData)
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected logging recommendations with no data")
	}
}

func TestGlucoseTrendsHighAverage(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 210, 205, 220, 215)
	report, err := NewAnalyzer(s).GlucoseTrends("p1")
	if err != nil {
		t.Fatalf("GlucoseTrends: %v", err)
	}
	if report.Status != StatusAnalyzed {
		t.Fatalf("status = %q, want analyzed", report.Status)
	}
	if report.InTargetRange {
		t.Error("average above 130 should not be in target range")
	}
	if len(report.Alerts) == 0 {
		t.Error("average above 200 should produce a provider alert")
	}
	if !hasSubstring(report.Insights, "above target range") {
		t.Errorf("insights = %v, want above-target insight", report.Insights)
	}
}

func TestGlucoseTrendsInTarget(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 100, 110, 105, 95)
	report, err := NewAnalyzer(s).GlucoseTrends("p1")
	if err != nil {
		t.Fatalf("GlucoseTrends: %v", err)
	}
	if !report.InTargetRange {
		t.Error("average near 100 should be in target range")
	}
	if len(report.Alerts) != 0 {
		t.Errorf("unexpected alerts: %v", report.Alerts)
	}
}

func TestGlucoseTrendsIncreasingInsight(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 90, 92, 110, 115)
	report, err := NewAnalyzer(s).GlucoseTrends("p1")
	if err != nil {
		t.Fatalf("GlucoseTrends: %v", err)
	}
	if report.TrendDirection != TrendIncreasing {
		t.Errorf("trend = %q, want increasing", report.TrendDirection)
	}
	if !hasSubstring(report.Insights, "increasing trend") {
		t.Errorf("insights = %v, want increasing-trend insight", report.Insights)
	}
}

func TestBPTrendsStageTwoAlerts(t *testing.T) {
	s := records.NewInMemoryStore()
	seedBP(t, s, "p1", [2]float64{150, 95}, [2]float64{148, 92}, [2]float64{152, 94})
	report, err := NewAnalyzer(s).BPTrends("p1")
	if err != nil {
		t.Fatalf("BPTrends: %v", err)
	}
	if report.BPCategory != "Stage2" {
		t.Errorf("category = %q, want Stage2", report.BPCategory)
	}
	if len(report.Alerts) == 0 {
		t.Error("stage 2 average should alert")
	}
	if report.Stats.AvgSecondary == nil {
		t.Error("expected diastolic average in stats")
	}
}

func TestBPTrendsNormal(t *testing.T) {
	s := records.NewInMemoryStore()
	seedBP(t, s, "p1", [2]float64{115, 75}, [2]float64{112, 74}, [2]float64{118, 76})
	report, err := NewAnalyzer(s).BPTrends("p1")
	if err != nil {
		t.Fatalf("BPTrends: %v", err)
	}
	if !report.InTargetRange {
		t.Error("normal BP average should be in target range")
	}
	if len(report.Alerts) != 0 {
		t.Errorf("unexpected alerts: %v", report.Alerts)
	}
}

func TestWeeklyAdjustmentsHighGlucose(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 210, 205, 220, 215)
	adj, err := NewAnalyzer(s).WeeklyAdjustments("p1", []string{careplan.DiseaseDiabetes})
	if err != nil {
		t.Fatalf("WeeklyAdjustments: %v", err)
	}
	if adj.AdjustmentCount != 2 {
		t.Fatalf("got %d adjustments, want 2", adj.AdjustmentCount)
	}
	if adj.Adjustments[0].Type != "diet" || adj.Adjustments[1].Type != "activity" {
		t.Errorf("adjustments = %+v, want diet then activity", adj.Adjustments)
	}
}

func TestWeeklyAdjustmentsLowGlucose(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 72, 75, 70, 74)
	adj, err := NewAnalyzer(s).WeeklyAdjustments("p1", []string{careplan.DiseaseDiabetes})
	if err != nil {
		t.Fatalf("WeeklyAdjustments: %v", err)
	}
	if adj.AdjustmentCount != 1 || !strings.Contains(adj.Adjustments[0].Action, "snack") {
		t.Errorf("adjustments = %+v, want single snack adjustment", adj.Adjustments)
	}
}

func TestWeeklyAdjustmentsNoneNeeded(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 100, 105, 110)
	adj, err := NewAnalyzer(s).WeeklyAdjustments("p1", []string{careplan.DiseaseDiabetes})
	if err != nil {
		t.Fatalf("WeeklyAdjustments: %v", err)
	}
	if adj.AdjustmentCount != 0 {
		t.Errorf("got %d adjustments, want 0", adj.AdjustmentCount)
	}
	if !strings.Contains(adj.Message, "No adjustments needed") {
		t.Errorf("message = %q", adj.Message)
	}
}

func TestWeeklyAdjustmentsHypertension(t *testing.T) {
	s := records.NewInMemoryStore()
	seedBP(t, s, "p1", [2]float64{150, 95}, [2]float64{148, 92}, [2]float64{152, 94})
	adj, err := NewAnalyzer(s).WeeklyAdjustments("p1", []string{careplan.DiseaseHypertension})
	if err != nil {
		t.Fatalf("WeeklyAdjustments: %v", err)
	}
	if adj.AdjustmentCount != 2 {
		t.Fatalf("got %d adjustments, want 2", adj.AdjustmentCount)
	}
	if !strings.Contains(adj.Adjustments[0].Action, "sodium") {
		t.Errorf("first adjustment = %+v, want sodium reduction", adj.Adjustments[0])
	}
}

func TestFullReport(t *testing.T) {
	s := records.NewInMemoryStore()
	seedGlucose(t, s, "p1", 100, 105, 110)
	seedBP(t, s, "p1", [2]float64{115, 75}, [2]float64{112, 74}, [2]float64{118, 76})
	for i, minutes := range []float64{40, 50, 70} {
		err := s.SaveDailyLog(&records.DailyLog{
			ID:        uuid.New().String(),
			PatientID: "p1",
			LogType:   records.LogActivity,
			Value:     minutes,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveDailyLog: %v", err)
		}
	}

	report, err := NewAnalyzer(s).FullReport("p1", []string{careplan.DiseaseDiabetes, careplan.DiseaseHypertension})
	if err != nil {
		t.Fatalf("FullReport: %v", err)
	}
	if report.Glucose == nil || report.BloodPressure == nil {
		t.Fatal("expected both glucose and blood pressure sections")
	}
	if report.ActivitySummary.TotalMinutes != 160 {
		t.Errorf("activity total = %v, want 160", report.ActivitySummary.TotalMinutes)
	}
	if !report.ActivitySummary.OnTrack {
		t.Error("160 minutes should be on track against a 150 minute target")
	}
	if report.WeeklyAdjustments == nil {
		t.Fatal("expected weekly adjustments section")
	}
}

func TestFullReportSkipsSectionsForMissingDiseases(t *testing.T) {
	s := records.NewInMemoryStore()
	report, err := NewAnalyzer(s).FullReport("p1", []string{careplan.DiseaseDiabetes})
	if err != nil {
		t.Fatalf("FullReport: %v", err)
	}
	if report.Glucose == nil {
		t.Error("expected glucose section for diabetic patient")
	}
	if report.BloodPressure != nil {
		t.Error("did not expect blood pressure section without hypertension")
	}
	if report.ActivitySummary.OnTrack {
		t.Error("no activity should not be on track")
	}
}

func hasSubstring(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
