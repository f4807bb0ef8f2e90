package patientengine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/rules"
)

// Limits on rule definitions accepted over the API.
const (
	MaxRuleNameLength   = 100
	MaxExpressionLength = 2000
	MaxMessageLength    = 500
	MaxRulesPerPatient  = 50
	MinRuleIDLength     = 1
	MaxRuleIDLength     = 100
)

// Rule IDs are letters, digits, underscores and hyphens. Server-generated
// IDs are UUIDs, so a leading digit is valid.
var ruleIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// measurementVars maps each measurement kind to the CEL variable a rule
// for that kind is expected to reference.
var measurementVars = map[health.MeasurementKind]string{
	health.KindBloodPressure: rules.VarBloodPressure,
	health.KindGlucose:       rules.VarGlucose,
	health.KindFood:          rules.VarFood,
	health.KindExercise:      rules.VarExercise,
}

// ValidateRule checks a rule definition before it reaches the engine.
// Compilation errors are still caught by the engine; this catches the
// cheap structural problems first so API callers get clear messages.
func ValidateRule(r *rules.Rule) error {
	if err := validateRuleID(r.ID); err != nil {
		return fmt.Errorf("invalid rule id %q: %w", r.ID, err)
	}
	if r.Name == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if len(r.Name) > MaxRuleNameLength {
		return fmt.Errorf("rule name length %d exceeds maximum of %d characters", len(r.Name), MaxRuleNameLength)
	}

	expr := strings.TrimSpace(r.Expression)
	if expr == "" {
		return fmt.Errorf("rule expression cannot be empty")
	}
	if len(r.Expression) > MaxExpressionLength {
		return fmt.Errorf("rule expression length %d exceeds maximum of %d characters", len(r.Expression), MaxExpressionLength)
	}

	wantVar, ok := measurementVars[r.AppliesTo]
	if !ok {
		return fmt.Errorf("unknown measurement kind %q (must be one of: bp, glucose, food, exercise)", r.AppliesTo)
	}
	if !referencesVariable(expr, wantVar) {
		return fmt.Errorf("expression for %s rules must reference the %s variable", r.AppliesTo, wantVar)
	}

	switch r.Severity {
	case health.SeverityWarning, health.SeveritySevere:
	default:
		return fmt.Errorf("invalid severity %q (must be warning or severe)", r.Severity)
	}

	if len(r.Message) > MaxMessageLength {
		return fmt.Errorf("rule message length %d exceeds maximum of %d characters", len(r.Message), MaxMessageLength)
	}
	return nil
}

func validateRuleID(id string) error {
	if len(id) < MinRuleIDLength {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(id) > MaxRuleIDLength {
		return fmt.Errorf("identifier length %d exceeds maximum of %d characters", len(id), MaxRuleIDLength)
	}
	if !ruleIDPattern.MatchString(id) {
		return fmt.Errorf("must contain only letters, digits, underscores, or hyphens, and not start with a hyphen")
	}
	return nil
}

// referencesVariable reports whether expr mentions name as a standalone
// identifier rather than as part of a longer word.
func referencesVariable(expr, name string) bool {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	return pattern.MatchString(expr)
}
