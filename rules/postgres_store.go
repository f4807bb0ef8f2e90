package rules

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
)

// PostgresRuleStore implements RuleStore backed by PostgreSQL, scoped to a
// single patient.
type PostgresRuleStore struct {
	db        *sql.DB
	patientID string
}

// NewPostgresRuleStore creates a PostgreSQL-backed RuleStore for a patient.
func NewPostgresRuleStore(db *sql.DB, patientID string) *PostgresRuleStore {
	return &PostgresRuleStore{
		db:        db,
		patientID: patientID,
	}
}

// Add inserts a new rule into the database.
func (s *PostgresRuleStore) Add(rule *Rule) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM alert_rules WHERE id = $1 AND patient_id = $2)
	`, rule.ID, s.patientID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check rule existence: %w", err)
	}
	if exists {
		return fmt.Errorf("rule with ID %s already exists", rule.ID)
	}

	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO alert_rules
			(id, patient_id, name, expression, applies_to, severity, message,
			 recommended_action, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rule.ID, s.patientID, rule.Name, rule.Expression, string(rule.AppliesTo),
		string(rule.Severity), rule.Message, rule.RecommendedAction, rule.Active,
		rule.CreatedAt, rule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return nil
}

// Get retrieves a rule by ID.
func (s *PostgresRuleStore) Get(id string) (*Rule, error) {
	rule, err := scanRule(s.db.QueryRow(`
		SELECT id, patient_id, name, expression, applies_to, severity, message,
		       recommended_action, active, created_at, updated_at
		FROM alert_rules
		WHERE id = $1 AND patient_id = $2
	`, id, s.patientID))

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("rule %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return rule, nil
}

// ListActive returns all active rules for the patient.
func (s *PostgresRuleStore) ListActive() ([]*Rule, error) {
	rows, err := s.db.Query(`
		SELECT id, patient_id, name, expression, applies_to, severity, message,
		       recommended_action, active, created_at, updated_at
		FROM alert_rules
		WHERE patient_id = $1 AND active = true
		ORDER BY created_at ASC
	`, s.patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	defer rows.Close()

	var rulesList []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rulesList = append(rulesList, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rulesList, nil
}

// Update modifies an existing rule.
func (s *PostgresRuleStore) Update(rule *Rule) error {
	rule.UpdatedAt = time.Now()

	result, err := s.db.Exec(`
		UPDATE alert_rules
		SET name = $1, expression = $2, applies_to = $3, severity = $4,
		    message = $5, recommended_action = $6, active = $7, updated_at = $8
		WHERE id = $9 AND patient_id = $10
	`, rule.Name, rule.Expression, string(rule.AppliesTo), string(rule.Severity),
		rule.Message, rule.RecommendedAction, rule.Active, rule.UpdatedAt,
		rule.ID, s.patientID)

	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("rule %s not found", rule.ID)
	}

	return nil
}

// Delete removes a rule from the database.
func (s *PostgresRuleStore) Delete(id string) error {
	result, err := s.db.Exec(`
		DELETE FROM alert_rules
		WHERE id = $1 AND patient_id = $2
	`, id, s.patientID)

	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("rule %s not found", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*Rule, error) {
	var r Rule
	var appliesTo, severity string
	if err := row.Scan(&r.ID, &r.PatientID, &r.Name, &r.Expression, &appliesTo,
		&severity, &r.Message, &r.RecommendedAction, &r.Active,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.AppliesTo = health.MeasurementKind(appliesTo)
	r.Severity = health.Severity(severity)
	return &r, nil
}
