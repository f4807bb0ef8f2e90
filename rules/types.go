// Package rules implements care-team-defined alert rules. The built-in
// thresholds in the health package cover the clinical guidelines; this
// package lets a care team attach extra CEL expressions per patient that
// are evaluated against the same measurements and produce SOS alerts with
// configured content.
package rules

import (
	"time"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
)

// Rule is a single care-team-defined alert rule. Expression is a CEL
// boolean expression over the measurement variable named by AppliesTo
// (Glucose, BloodPressure, Food or Exercise).
type Rule struct {
	ID                string                 `json:"id"`
	PatientID         string                 `json:"patient_id"`
	Name              string                 `json:"name"`
	Expression        string                 `json:"expression"`
	AppliesTo         health.MeasurementKind `json:"applies_to"`
	Severity          health.Severity        `json:"severity"`
	Message           string                 `json:"message"`
	RecommendedAction string                 `json:"recommended_action,omitempty"`
	Active            bool                   `json:"active"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// Alert builds the SOS alert a matched rule raises. Custom rules carry the
// rule ID as the alert kind so the UI can distinguish them from built-ins.
func (r *Rule) Alert() *health.SOSAlert {
	return &health.SOSAlert{
		Severity:          r.Severity,
		Kind:              health.AlertKind("custom:" + r.ID),
		Message:           r.Message,
		RecommendedAction: r.RecommendedAction,
	}
}

// EvaluationResult is the outcome of evaluating one rule against a
// measurement. Alert is non-nil only when the rule matched.
type EvaluationResult struct {
	RuleID   string
	RuleName string
	Matched  bool
	Alert    *health.SOSAlert
	Error    error
}
