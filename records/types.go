// Package records persists the patient-facing log data: daily measurements,
// water intake, HbA1c results, medications and reminders.
package records

import "time"

// LogType tags a daily log row.
const (
	LogGlucose  = "glucose"
	LogBP       = "bp"
	LogFood     = "food"
	LogActivity = "activity"
	LogWater    = "water"
)

// ValidLogType reports whether t is a known daily log type.
func ValidLogType(t string) bool {
	switch t {
	case LogGlucose, LogBP, LogFood, LogActivity, LogWater:
		return true
	}
	return false
}

// User is a registered patient account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Diseases     []string  `json:"diseases"`
	CreatedAt    time.Time `json:"created_at"`
}

// DailyLog is one logged measurement. Value carries the primary number
// (mg/dL, systolic mmHg, kcal, minutes or ml depending on LogType);
// ValueSecondary holds the diastolic value for blood pressure rows.
type DailyLog struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	LogType        string    `json:"log_type"`
	Value          float64   `json:"value"`
	ValueSecondary *float64  `json:"value_secondary,omitempty"`
	Unit           string    `json:"unit"`
	ReadingContext string    `json:"reading_context,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// WeeklyStats aggregates the last seven days of one log type.
type WeeklyStats struct {
	Count        int      `json:"count"`
	Average      float64  `json:"avg_value"`
	Min          float64  `json:"min_value"`
	Max          float64  `json:"max_value"`
	AvgSecondary *float64 `json:"avg_secondary,omitempty"`
}

// HbA1cResult is a lab HbA1c test result in percent.
type HbA1cResult struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Value     float64   `json:"value"`
	TestDate  string    `json:"test_date"` // YYYY-MM-DD
	LabName   string    `json:"lab_name,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Medication is a doctor-prescribed medication schedule.
type Medication struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	Name       string    `json:"name"`
	Dosage     string    `json:"dosage"`
	Frequency  string    `json:"frequency"`
	TimesOfDay []string  `json:"times_of_day"`
	Notes      string    `json:"notes,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// MedicationIntake records whether one scheduled dose was taken.
type MedicationIntake struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	MedicationID  string    `json:"medication_id"`
	ScheduledTime string    `json:"scheduled_time"` // HH:MM
	Taken         bool      `json:"taken"`
	TakenAt       time.Time `json:"taken_at"`
}

// Appointment type for visits that count toward the check-up reminder.
const AppointmentDoctorVisit = "doctor_visit"

// Appointment is a scheduled care visit (doctor visit, lab test, ...).
// Date is YYYY-MM-DD; Time is free-form clock text.
type Appointment struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patient_id"`
	Type        string     `json:"appointment_type"`
	DoctorName  string     `json:"doctor_name,omitempty"`
	Location    string     `json:"location,omitempty"`
	Date        string     `json:"appointment_date"`
	Time        string     `json:"appointment_time,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Reminder is a patient-specific custom reminder. The built-in daily
// reminders live in the careplan package.
type Reminder struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"description"`
	Priority  string    `json:"priority"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
