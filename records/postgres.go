package records

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostgresStore implements Store on a Postgres database. The schema lives
// in the migrations directory at the repository root.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO users (id, name, email, password_hash, age, gender, diseases, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Age, u.Gender, pq.Array(u.Diseases), u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserByEmail(email string) (*User, error) {
	row := s.db.QueryRow(
		`SELECT id, name, email, password_hash, age, gender, diseases, created_at
		 FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (s *PostgresStore) UserByID(id string) (*User, error) {
	row := s.db.QueryRow(
		`SELECT id, name, email, password_hash, age, gender, diseases, created_at
		 FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Gender,
		pq.Array(&u.Diseases), &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) SaveDailyLog(l *DailyLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO daily_logs (id, patient_id, log_type, value, value_secondary, unit, reading_context, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.PatientID, l.LogType, l.Value, l.ValueSecondary, l.Unit, l.ReadingContext, l.Notes, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting daily log: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListDailyLogs(patientID, logType string, days int) ([]*DailyLog, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	query := `SELECT id, patient_id, log_type, value, value_secondary, unit, reading_context, notes, created_at
		 FROM daily_logs WHERE patient_id = $1 AND created_at >= $2`
	args := []any{patientID, cutoff}
	if logType != "" {
		query += ` AND log_type = $3`
		args = append(args, logType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying daily logs: %w", err)
	}
	defer rows.Close()

	var out []*DailyLog
	for rows.Next() {
		var l DailyLog
		if err := rows.Scan(&l.ID, &l.PatientID, &l.LogType, &l.Value, &l.ValueSecondary,
			&l.Unit, &l.ReadingContext, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning daily log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (s *PostgresStore) WeeklyStats(patientID, logType string) (*WeeklyStats, error) {
	cutoff := time.Now().AddDate(0, 0, -7)
	row := s.db.QueryRow(
		`SELECT count(*), coalesce(avg(value), 0), coalesce(min(value), 0),
		        coalesce(max(value), 0), avg(value_secondary)
		 FROM daily_logs
		 WHERE patient_id = $1 AND log_type = $2 AND created_at >= $3`,
		patientID, logType, cutoff)

	stats := &WeeklyStats{}
	if err := row.Scan(&stats.Count, &stats.Average, &stats.Min, &stats.Max, &stats.AvgSecondary); err != nil {
		return nil, fmt.Errorf("scanning weekly stats: %w", err)
	}
	return stats, nil
}

func (s *PostgresStore) WaterTotalSince(patientID string, since time.Time) (int, error) {
	var total int
	err := s.db.QueryRow(
		`SELECT coalesce(sum(value), 0) FROM daily_logs
		 WHERE patient_id = $1 AND log_type = $2 AND created_at >= $3`,
		patientID, LogWater, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing water intake: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) SaveHbA1c(r *HbA1cResult) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO hba1c_results (id, patient_id, value, test_date, lab_name, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.PatientID, r.Value, r.TestDate, r.LabName, r.Notes, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting hba1c result: %w", err)
	}
	return nil
}

func (s *PostgresStore) HbA1cHistory(patientID string) ([]*HbA1cResult, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, value, test_date, lab_name, notes, created_at
		 FROM hba1c_results WHERE patient_id = $1 ORDER BY test_date DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("querying hba1c history: %w", err)
	}
	defer rows.Close()

	var out []*HbA1cResult
	for rows.Next() {
		var r HbA1cResult
		if err := rows.Scan(&r.ID, &r.PatientID, &r.Value, &r.TestDate, &r.LabName, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning hba1c result: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) LatestHbA1c(patientID string) (*HbA1cResult, error) {
	row := s.db.QueryRow(
		`SELECT id, patient_id, value, test_date, lab_name, notes, created_at
		 FROM hba1c_results WHERE patient_id = $1 ORDER BY test_date DESC LIMIT 1`, patientID)
	var r HbA1cResult
	err := row.Scan(&r.ID, &r.PatientID, &r.Value, &r.TestDate, &r.LabName, &r.Notes, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning hba1c result: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) SaveMedication(m *Medication) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO medications (id, patient_id, name, dosage, frequency, times_of_day, notes, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.PatientID, m.Name, m.Dosage, m.Frequency, pq.Array(m.TimesOfDay), m.Notes, m.Active, m.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting medication: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMedications(patientID string) ([]*Medication, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, name, dosage, frequency, times_of_day, notes, active, created_at
		 FROM medications WHERE patient_id = $1 AND active ORDER BY name`, patientID)
	if err != nil {
		return nil, fmt.Errorf("querying medications: %w", err)
	}
	defer rows.Close()

	var out []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.Frequency,
			pq.Array(&m.TimesOfDay), &m.Notes, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning medication: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeactivateMedication(patientID, medicationID string) error {
	res, err := s.db.Exec(
		`UPDATE medications SET active = false WHERE id = $1 AND patient_id = $2`,
		medicationID, patientID)
	if err != nil {
		return fmt.Errorf("deactivating medication: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveMedicationIntake(in *MedicationIntake) error {
	if in.TakenAt.IsZero() {
		in.TakenAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO medication_intakes (id, patient_id, medication_id, scheduled_time, taken, taken_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.PatientID, in.MedicationID, in.ScheduledTime, in.Taken, in.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("inserting medication intake: %w", err)
	}
	return nil
}

func (s *PostgresStore) MedicationIntakesSince(patientID string, since time.Time) ([]*MedicationIntake, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, medication_id, scheduled_time, taken, taken_at
		 FROM medication_intakes WHERE patient_id = $1 AND taken_at >= $2`, patientID, since)
	if err != nil {
		return nil, fmt.Errorf("querying medication intakes: %w", err)
	}
	defer rows.Close()

	var out []*MedicationIntake
	for rows.Next() {
		var in MedicationIntake
		if err := rows.Scan(&in.ID, &in.PatientID, &in.MedicationID, &in.ScheduledTime, &in.Taken, &in.TakenAt); err != nil {
			return nil, fmt.Errorf("scanning medication intake: %w", err)
		}
		out = append(out, &in)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveAppointment(a *Appointment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO appointments (id, patient_id, appointment_type, doctor_name, location,
		                           appointment_date, appointment_time, notes, completed, completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.PatientID, a.Type, a.DoctorName, a.Location, a.Date, a.Time, a.Notes,
		a.Completed, a.CompletedAt, a.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAppointments(patientID string, upcomingOnly bool) ([]*Appointment, error) {
	query := `SELECT id, patient_id, appointment_type, doctor_name, location,
	                 appointment_date, appointment_time, notes, completed, completed_at, created_at
	          FROM appointments WHERE patient_id = $1`
	if upcomingOnly {
		query += ` AND appointment_date >= to_char(current_date, 'YYYY-MM-DD') ORDER BY appointment_date ASC`
	} else {
		query += ` ORDER BY appointment_date DESC`
	}

	rows, err := s.db.Query(query, patientID)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Type, &a.DoctorName, &a.Location,
			&a.Date, &a.Time, &a.Notes, &a.Completed, &a.CompletedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (s *PostgresStore) LastDoctorVisit(patientID string) (*Appointment, error) {
	row := s.db.QueryRow(
		`SELECT id, patient_id, appointment_type, doctor_name, location,
		        appointment_date, appointment_time, notes, completed, completed_at, created_at
		 FROM appointments
		 WHERE patient_id = $1 AND completed AND appointment_type = $2
		 ORDER BY appointment_date DESC LIMIT 1`, patientID, AppointmentDoctorVisit)
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.Type, &a.DoctorName, &a.Location,
		&a.Date, &a.Time, &a.Notes, &a.Completed, &a.CompletedAt, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning appointment: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) CompleteAppointment(patientID, appointmentID string) error {
	res, err := s.db.Exec(
		`UPDATE appointments SET completed = true, completed_at = now()
		 WHERE id = $1 AND patient_id = $2`,
		appointmentID, patientID)
	if err != nil {
		return fmt.Errorf("completing appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveReminder(r *Reminder) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO reminders (id, patient_id, type, title, description, priority, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.PatientID, r.Type, r.Title, r.Body, r.Priority, r.Active, r.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

func (s *PostgresStore) ActiveReminders(patientID string) ([]*Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, type, title, description, priority, active, created_at
		 FROM reminders WHERE patient_id = $1 AND active ORDER BY created_at`, patientID)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var out []*Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.PatientID, &r.Type, &r.Title, &r.Body, &r.Priority, &r.Active, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeactivateReminder(patientID, reminderID string) error {
	res, err := s.db.Exec(
		`UPDATE reminders SET active = false WHERE id = $1 AND patient_id = $2`,
		reminderID, patientID)
	if err != nil {
		return fmt.Errorf("deactivating reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
