package records

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// InMemoryStore keeps all records in process memory. Used in tests and as
// a fallback when no database is configured.
type InMemoryStore struct {
	mu          sync.RWMutex
	users       map[string]*User // keyed by ID
	logs        []*DailyLog
	hba1c       []*HbA1cResult
	medications  map[string]*Medication
	intakes      []*MedicationIntake
	appointments map[string]*Appointment
	reminders    map[string]*Reminder
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:        make(map[string]*User),
		medications:  make(map[string]*Medication),
		appointments: make(map[string]*Appointment),
		reminders:    make(map[string]*Reminder),
	}
}

func (s *InMemoryStore) CreateUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *InMemoryStore) UserByEmail(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) UserByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryStore) SaveDailyLog(l *DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	cp := *l
	s.logs = append(s.logs, &cp)
	return nil
}

func (s *InMemoryStore) ListDailyLogs(patientID, logType string, days int) ([]*DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []*DailyLog
	for _, l := range s.logs {
		if l.PatientID != patientID || l.CreatedAt.Before(cutoff) {
			continue
		}
		if logType != "" && l.LogType != logType {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) WeeklyStats(patientID, logType string) (*WeeklyStats, error) {
	logs, err := s.ListDailyLogs(patientID, logType, 7)
	if err != nil {
		return nil, err
	}
	stats := &WeeklyStats{}
	var sum, sumSecondary float64
	var secondaryCount int
	for _, l := range logs {
		stats.Count++
		sum += l.Value
		if stats.Count == 1 || l.Value < stats.Min {
			stats.Min = l.Value
		}
		if l.Value > stats.Max {
			stats.Max = l.Value
		}
		if l.ValueSecondary != nil {
			sumSecondary += *l.ValueSecondary
			secondaryCount++
		}
	}
	if stats.Count > 0 {
		stats.Average = sum / float64(stats.Count)
	}
	if secondaryCount > 0 {
		avg := sumSecondary / float64(secondaryCount)
		stats.AvgSecondary = &avg
	}
	return stats, nil
}

func (s *InMemoryStore) WaterTotalSince(patientID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.logs {
		if l.PatientID == patientID && l.LogType == LogWater && !l.CreatedAt.Before(since) {
			total += int(l.Value)
		}
	}
	return total, nil
}

func (s *InMemoryStore) SaveHbA1c(r *HbA1cResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	s.hba1c = append(s.hba1c, &cp)
	return nil
}

func (s *InMemoryStore) HbA1cHistory(patientID string) ([]*HbA1cResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*HbA1cResult
	for _, r := range s.hba1c {
		if r.PatientID == patientID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TestDate > out[j].TestDate })
	return out, nil
}

func (s *InMemoryStore) LatestHbA1c(patientID string) (*HbA1cResult, error) {
	history, err := s.HbA1cHistory(patientID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	return history[0], nil
}

func (s *InMemoryStore) SaveMedication(m *Medication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.medications[m.ID]; ok {
		return ErrDuplicate
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	cp.TimesOfDay = append([]string(nil), m.TimesOfDay...)
	s.medications[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) ListMedications(patientID string) ([]*Medication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Medication
	for _, m := range s.medications {
		if m.PatientID != patientID || !m.Active {
			continue
		}
		cp := *m
		cp.TimesOfDay = append([]string(nil), m.TimesOfDay...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) DeactivateMedication(patientID, medicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.medications[medicationID]
	if !ok || m.PatientID != patientID {
		return ErrNotFound
	}
	m.Active = false
	return nil
}

func (s *InMemoryStore) SaveMedicationIntake(in *MedicationIntake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.TakenAt.IsZero() {
		in.TakenAt = time.Now()
	}
	cp := *in
	s.intakes = append(s.intakes, &cp)
	return nil
}

func (s *InMemoryStore) MedicationIntakesSince(patientID string, since time.Time) ([]*MedicationIntake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*MedicationIntake
	for _, in := range s.intakes {
		if in.PatientID == patientID && !in.TakenAt.Before(since) {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemoryStore) SaveAppointment(a *Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[a.ID]; ok {
		return ErrDuplicate
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	s.appointments[a.ID] = &cp
	return nil
}

func (s *InMemoryStore) ListAppointments(patientID string, upcomingOnly bool) ([]*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	today := time.Now().Format("2006-01-02")
	var out []*Appointment
	for _, a := range s.appointments {
		if a.PatientID != patientID {
			continue
		}
		if upcomingOnly && a.Date < today {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	if upcomingOnly {
		sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	}
	return out, nil
}

func (s *InMemoryStore) LastDoctorVisit(patientID string) (*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *Appointment
	for _, a := range s.appointments {
		if a.PatientID != patientID || !a.Completed || a.Type != AppointmentDoctorVisit {
			continue
		}
		if last == nil || a.Date > last.Date {
			last = a
		}
	}
	if last == nil {
		return nil, ErrNotFound
	}
	cp := *last
	return &cp, nil
}

func (s *InMemoryStore) CompleteAppointment(patientID, appointmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[appointmentID]
	if !ok || a.PatientID != patientID {
		return ErrNotFound
	}
	now := time.Now()
	a.Completed = true
	a.CompletedAt = &now
	return nil
}

func (s *InMemoryStore) SaveReminder(r *Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reminders[r.ID]; ok {
		return ErrDuplicate
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	cp := *r
	s.reminders[r.ID] = &cp
	return nil
}

func (s *InMemoryStore) ActiveReminders(patientID string) ([]*Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Reminder
	for _, r := range s.reminders {
		if r.PatientID == patientID && r.Active {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) DeactivateReminder(patientID, reminderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[reminderID]
	if !ok || r.PatientID != patientID {
		return ErrNotFound
	}
	r.Active = false
	return nil
}
