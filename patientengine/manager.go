// Package patientengine manages one custom-rules engine per patient.
// Each patient gets an isolated rule set; engines are created on signup,
// loaded in bulk at startup, and hot-swapped when rules change.
package patientengine

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/rules"
)

// StoreFactory builds the rule store backing one patient's engine.
type StoreFactory func(patientID string) rules.RuleStore

// PatientEngine pairs a patient with their compiled rules engine.
type PatientEngine struct {
	PatientID string
	Engine    *rules.Engine
}

// Manager holds the engine for every known patient.
type Manager struct {
	engines  map[string]*PatientEngine
	db       *sql.DB
	newStore StoreFactory
	mu       sync.RWMutex
}

// NewManager creates a manager whose engines persist rules in Postgres.
func NewManager(db *sql.DB) *Manager {
	return &Manager{
		engines: make(map[string]*PatientEngine),
		db:      db,
		newStore: func(patientID string) rules.RuleStore {
			return rules.NewPostgresRuleStore(db, patientID)
		},
	}
}

// NewManagerWithStores creates a manager with a custom store factory.
// Used for in-memory operation and in tests.
func NewManagerWithStores(factory StoreFactory) *Manager {
	return &Manager{
		engines:  make(map[string]*PatientEngine),
		newStore: factory,
	}
}

// LoadAllPatients initializes an engine for every patient that has at
// least one alert rule stored. Patients without rules get their engine
// lazily on first use.
func (m *Manager) LoadAllPatients() error {
	if m.db == nil {
		return nil
	}
	rows, err := m.db.Query(`SELECT DISTINCT patient_id FROM alert_rules WHERE active = true`)
	if err != nil {
		return fmt.Errorf("failed to fetch patients with rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var patientID string
		if err := rows.Scan(&patientID); err != nil {
			return fmt.Errorf("failed to scan patient row: %w", err)
		}
		if err := m.CreatePatient(patientID); err != nil {
			return fmt.Errorf("failed to initialize patient %s: %w", patientID, err)
		}
	}
	return rows.Err()
}

// CreatePatient builds and registers an engine for the patient, compiling
// any rules already in their store.
func (m *Manager) CreatePatient(patientID string) error {
	engine, err := rules.NewEngine(m.newStore(patientID))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	m.engines[patientID] = &PatientEngine{
		PatientID: patientID,
		Engine:    engine,
	}
	m.mu.Unlock()
	return nil
}

// GetEngine retrieves the engine for a patient, creating one on first use.
func (m *Manager) GetEngine(patientID string) (*rules.Engine, error) {
	m.mu.RLock()
	pe, exists := m.engines[patientID]
	m.mu.RUnlock()
	if exists {
		return pe.Engine, nil
	}

	if err := m.CreatePatient(patientID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engines[patientID].Engine, nil
}

// ReloadPatient rebuilds the patient's engine from their stored rules and
// atomically swaps it in. In-flight evaluations on the old engine finish
// against the old rule set.
func (m *Manager) ReloadPatient(patientID string) error {
	engine, err := rules.NewEngine(m.newStore(patientID))
	if err != nil {
		return fmt.Errorf("failed to rebuild engine: %w", err)
	}

	m.mu.Lock()
	m.engines[patientID] = &PatientEngine{
		PatientID: patientID,
		Engine:    engine,
	}
	m.mu.Unlock()
	return nil
}

// ListPatients returns the IDs of all patients with a loaded engine.
func (m *Manager) ListPatients() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	patients := make([]string, 0, len(m.engines))
	for patientID := range m.engines {
		patients = append(patients, patientID)
	}
	return patients
}

// RemovePatient drops a patient's engine from memory. Stored rules are
// not deleted.
func (m *Manager) RemovePatient(patientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[patientID]; !exists {
		return fmt.Errorf("patient %s not found", patientID)
	}
	delete(m.engines, patientID)
	return nil
}
