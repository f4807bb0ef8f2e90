package rules

import (
	"strings"
	"sync"
	"testing"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
)

func glucoseRule(id string, expression string) *Rule {
	return &Rule{
		ID:                id,
		PatientID:         "patient-1",
		Name:              "Rule " + id,
		Expression:        expression,
		AppliesTo:         health.KindGlucose,
		Severity:          health.SeverityWarning,
		Message:           "Custom glucose alert",
		RecommendedAction: "Contact your care team",
		Active:            true,
	}
}

func TestNewEngineCompilesExistingRules(t *testing.T) {
	store := NewInMemoryRuleStore()

	existing := []*Rule{
		glucoseRule("rule-1", `Glucose.Value > 140.0`),
		glucoseRule("rule-2", `Glucose.Context == "fasting" && Glucose.Value > 130.0`),
	}
	inactive := glucoseRule("rule-3", `Glucose.Value > 100.0`)
	inactive.Active = false

	for _, rule := range append(existing, inactive) {
		if err := store.Add(rule); err != nil {
			t.Fatalf("Failed to add rule: %v", err)
		}
	}

	engine, err := NewEngine(store)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	results, err := engine.EvaluateMeasurement(health.GlucoseReading{
		ValueMgDl: 150,
		Context:   health.ContextFasting,
	})
	if err != nil {
		t.Fatalf("EvaluateMeasurement() failed: %v", err)
	}

	// Only the two active rules run, and both match.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, res := range results {
		if !res.Matched {
			t.Errorf("rule %s should match glucose 150 fasting", res.RuleID)
		}
		if res.Alert == nil {
			t.Errorf("matched rule %s should carry an alert", res.RuleID)
		}
	}
}

func TestCompileRuleSuccess(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	testCases := []struct {
		name       string
		expression string
	}{
		{"Simple boolean", `true`},
		{"Glucose threshold", `Glucose.Value > 200.0`},
		{"Context check", `Glucose.Context == "bedtime"`},
		{"BP pair", `BloodPressure.Systolic >= 135 && BloodPressure.Diastolic >= 85`},
		{"Food macros", `Food.HasMacros && Food.Sugar > 25.0`},
		{"Exercise arithmetic", `Exercise.DurationMinutes * 2.0 > 100.0`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := engine.CompileRule("test-"+tc.name, tc.expression); err != nil {
				t.Errorf("CompileRule(%q) failed: %v", tc.expression, err)
			}
		})
	}
}

func TestCompileRuleError(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	testCases := []struct {
		name       string
		expression string
	}{
		{"Syntax error", `Glucose.Value >`},
		{"Invalid operator", `Glucose.Value === 18`},
		{"Undeclared variable", `HeartRate.Value > 100`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := engine.CompileRule("bad-"+tc.name, tc.expression)
			if err == nil {
				t.Errorf("CompileRule(%q) should fail", tc.expression)
			} else if !strings.Contains(err.Error(), "compile error") {
				t.Errorf("error should be descriptive, got: %v", err)
			}
		})
	}
}

func TestAddRuleValidatesBeforeStoring(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	bad := glucoseRule("bad-rule", `Glucose.Value >`)
	if err := engine.AddRule(bad); err == nil {
		t.Fatal("AddRule should reject an uncompilable expression")
	}
	if _, err := store.Get("bad-rule"); err == nil {
		t.Error("rejected rule should not reach the store")
	}
}

func TestAddRuleRejectsUnknownKind(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	rule := glucoseRule("odd-kind", `true`)
	rule.AppliesTo = "heart_rate"
	if err := engine.AddRule(rule); err == nil {
		t.Fatal("AddRule should reject an unknown measurement kind")
	}
}

func TestAddRuleRejectsDuplicateID(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	if err := engine.AddRule(glucoseRule("dup", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("first AddRule failed: %v", err)
	}
	if err := engine.AddRule(glucoseRule("dup", `Glucose.Value > 200.0`)); err == nil {
		t.Fatal("duplicate rule ID should be rejected")
	}
}

func TestEvaluateMeasurementFiltersByKind(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	if err := engine.AddRule(glucoseRule("g-1", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	exercise := &Rule{
		ID:         "e-1",
		PatientID:  "patient-1",
		Name:       "Short sessions",
		Expression: `Exercise.DurationMinutes < 10.0`,
		AppliesTo:  health.KindExercise,
		Severity:   health.SeverityWarning,
		Message:    "Session very short",
		Active:     true,
	}
	if err := engine.AddRule(exercise); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	results, err := engine.EvaluateMeasurement(health.ExerciseSession{
		DurationMinutes: 5,
		Intensity:       health.IntensityLight,
	})
	if err != nil {
		t.Fatalf("EvaluateMeasurement() failed: %v", err)
	}
	if len(results) != 1 || results[0].RuleID != "e-1" {
		t.Fatalf("expected only the exercise rule to run, got %+v", results)
	}
	if !results[0].Matched {
		t.Error("exercise rule should match a 5 minute session")
	}
}

func TestAlertsReturnsOnlyMatchedRules(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	if err := engine.AddRule(glucoseRule("match", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if err := engine.AddRule(glucoseRule("no-match", `Glucose.Value > 500.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	alerts, err := engine.Alerts(health.GlucoseReading{ValueMgDl: 150, Context: health.ContextRandom})
	if err != nil {
		t.Fatalf("Alerts() failed: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Kind != "custom:match" {
		t.Errorf("alert kind = %s, want custom:match", alerts[0].Kind)
	}
	if alerts[0].Message != "Custom glucose alert" {
		t.Errorf("alert message = %q", alerts[0].Message)
	}
}

func TestEvaluationContinuesPastRuleErrors(t *testing.T) {
	store := NewInMemoryRuleStore()
	engine, _ := NewEngine(store)

	// Compiles (DynType defers field checks) but errors at runtime because
	// glucose facts have no Missing field.
	if err := engine.AddRule(glucoseRule("broken", `Glucose.Missing > 1.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if err := engine.AddRule(glucoseRule("working", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	results, err := engine.EvaluateMeasurement(health.GlucoseReading{ValueMgDl: 150, Context: health.ContextRandom})
	if err != nil {
		t.Fatalf("EvaluateMeasurement() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	var sawError, sawMatch bool
	for _, res := range results {
		if res.RuleID == "broken" && res.Error != nil {
			sawError = true
		}
		if res.RuleID == "working" && res.Matched {
			sawMatch = true
		}
	}
	if !sawError {
		t.Error("broken rule should report its evaluation error")
	}
	if !sawMatch {
		t.Error("working rule should still match")
	}
}

func TestDeleteRuleRemovesProgram(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	if err := engine.AddRule(glucoseRule("gone", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if err := engine.DeleteRule("gone"); err != nil {
		t.Fatalf("DeleteRule failed: %v", err)
	}

	results, err := engine.EvaluateMeasurement(health.GlucoseReading{ValueMgDl: 150, Context: health.ContextRandom})
	if err != nil {
		t.Fatalf("EvaluateMeasurement() failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("deleted rule should not run, got %+v", results)
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	engine, _ := NewEngine(NewInMemoryRuleStore())

	if err := engine.AddRule(glucoseRule("conc", `Glucose.Value > 100.0`)); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.EvaluateMeasurement(health.GlucoseReading{ValueMgDl: 150, Context: health.ContextRandom})
			if err != nil {
				t.Errorf("concurrent evaluation failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
