package records

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("records: not found")
	ErrDuplicate = errors.New("records: already exists")
)

// Store persists users and their health records. Implementations must be
// safe for concurrent use.
type Store interface {
	CreateUser(u *User) error
	UserByEmail(email string) (*User, error)
	UserByID(id string) (*User, error)

	SaveDailyLog(l *DailyLog) error
	// ListDailyLogs returns logs for one patient newest first, limited to
	// the trailing number of days. An empty logType matches all types.
	ListDailyLogs(patientID, logType string, days int) ([]*DailyLog, error)
	WeeklyStats(patientID, logType string) (*WeeklyStats, error)
	// WaterTotalSince sums water log values (ml) recorded at or after since.
	WaterTotalSince(patientID string, since time.Time) (int, error)

	SaveHbA1c(r *HbA1cResult) error
	HbA1cHistory(patientID string) ([]*HbA1cResult, error)
	LatestHbA1c(patientID string) (*HbA1cResult, error)

	SaveMedication(m *Medication) error
	ListMedications(patientID string) ([]*Medication, error)
	DeactivateMedication(patientID, medicationID string) error
	SaveMedicationIntake(in *MedicationIntake) error
	MedicationIntakesSince(patientID string, since time.Time) ([]*MedicationIntake, error)

	SaveAppointment(a *Appointment) error
	// ListAppointments returns a patient's appointments; when upcomingOnly
	// is set, only those dated today or later, soonest first. Otherwise all,
	// newest first.
	ListAppointments(patientID string, upcomingOnly bool) ([]*Appointment, error)
	// LastDoctorVisit returns the most recent completed doctor visit.
	LastDoctorVisit(patientID string) (*Appointment, error)
	CompleteAppointment(patientID, appointmentID string) error

	SaveReminder(r *Reminder) error
	ActiveReminders(patientID string) ([]*Reminder, error)
	DeactivateReminder(patientID, reminderID string) error
}
