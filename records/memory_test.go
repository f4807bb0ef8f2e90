package records

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

func testUser() *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Age:          54,
		Gender:       "female",
		Diseases:     []string{"diabetes", "hypertension"},
	}
}

func TestCreateAndFetchUser(t *testing.T) {
	s := NewInMemoryStore()
	u := testUser()
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	byID, err := s.UserByID(u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if byID.Email != u.Email {
		t.Errorf("email = %q, want %q", byID.Email, u.Email)
	}

	byEmail, err := s.UserByEmail("ASHA@example.com")
	if err != nil {
		t.Fatalf("UserByEmail (case-insensitive): %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("id = %q, want %q", byEmail.ID, u.ID)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.CreateUser(testUser()); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	dup := testUser()
	dup.ID = uuid.New().String()
	if err := s.CreateUser(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second CreateUser err = %v, want ErrDuplicate", err)
	}
}

func TestUnknownUserReturnsNotFound(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.UserByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID err = %v, want ErrNotFound", err)
	}
	if _, err := s.UserByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByEmail err = %v, want ErrNotFound", err)
	}
}

func saveLog(t *testing.T, s Store, patientID, logType string, value float64, at time.Time) {
	t.Helper()
	err := s.SaveDailyLog(&DailyLog{
		ID:        uuid.New().String(),
		PatientID: patientID,
		LogType:   logType,
		Value:     value,
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("SaveDailyLog: %v", err)
	}
}

func TestListDailyLogsFiltersByTypeAndAge(t *testing.T) {
	s := NewInMemoryStore()
	now := time.Now()
	saveLog(t, s, "p1", LogGlucose, 110, now)
	saveLog(t, s, "p1", LogGlucose, 140, now.Add(-time.Hour))
	saveLog(t, s, "p1", LogFood, 450, now)
	saveLog(t, s, "p1", LogGlucose, 200, now.AddDate(0, 0, -10)) // too old
	saveLog(t, s, "p2", LogGlucose, 95, now)                     // other patient

	logs, err := s.ListDailyLogs("p1", LogGlucose, 7)
	if err != nil {
		t.Fatalf("ListDailyLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2", len(logs))
	}
	if logs[0].Value != 110 {
		t.Errorf("newest first: logs[0].Value = %v, want 110", logs[0].Value)
	}

	all, err := s.ListDailyLogs("p1", "", 7)
	if err != nil {
		t.Fatalf("ListDailyLogs all types: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d logs for all types, want 3", len(all))
	}
}

func TestWeeklyStats(t *testing.T) {
	s := NewInMemoryStore()
	now := time.Now()
	d1, d2 := 80.0, 90.0
	if err := s.SaveDailyLog(&DailyLog{ID: uuid.New().String(), PatientID: "p1", LogType: LogBP, Value: 120, ValueSecondary: &d1, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDailyLog(&DailyLog{ID: uuid.New().String(), PatientID: "p1", LogType: LogBP, Value: 140, ValueSecondary: &d2, CreatedAt: now}); err != nil {
		t.Fatal(err)
	}

	stats, err := s.WeeklyStats("p1", LogBP)
	if err != nil {
		t.Fatalf("WeeklyStats: %v", err)
	}
	if stats.Count != 2 || stats.Average != 130 || stats.Min != 120 || stats.Max != 140 {
		t.Errorf("stats = %+v, want count 2 avg 130 min 120 max 140", stats)
	}
	if stats.AvgSecondary == nil || *stats.AvgSecondary != 85 {
		t.Errorf("AvgSecondary = %v, want 85", stats.AvgSecondary)
	}
}

func TestWeeklyStatsEmpty(t *testing.T) {
	s := NewInMemoryStore()
	stats, err := s.WeeklyStats("p1", LogGlucose)
	if err != nil {
		t.Fatalf("WeeklyStats: %v", err)
	}
	if stats.Count != 0 || stats.Average != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
}

func TestWaterTotalSince(t *testing.T) {
	s := NewInMemoryStore()
	midnight := time.Now().Truncate(24 * time.Hour)
	saveLog(t, s, "p1", LogWater, 500, midnight.Add(8*time.Hour))
	saveLog(t, s, "p1", LogWater, 300, midnight.Add(12*time.Hour))
	saveLog(t, s, "p1", LogWater, 700, midnight.Add(-2*time.Hour)) // yesterday
	saveLog(t, s, "p1", LogGlucose, 110, midnight.Add(9*time.Hour))

	total, err := s.WaterTotalSince("p1", midnight)
	if err != nil {
		t.Fatalf("WaterTotalSince: %v", err)
	}
	if total != 800 {
		t.Errorf("total = %d, want 800", total)
	}
}

func TestHbA1cHistoryAndLatest(t *testing.T) {
	s := NewInMemoryStore()
	for _, r := range []HbA1cResult{
		{ID: uuid.New().String(), PatientID: "p1", Value: 7.2, TestDate: "2026-01-15"},
		{ID: uuid.New().String(), PatientID: "p1", Value: 6.8, TestDate: "2026-06-20"},
		{ID: uuid.New().String(), PatientID: "p2", Value: 5.4, TestDate: "2026-06-01"},
	} {
		r := r
		if err := s.SaveHbA1c(&r); err != nil {
			t.Fatalf("SaveHbA1c: %v", err)
		}
	}

	history, err := s.HbA1cHistory("p1")
	if err != nil {
		t.Fatalf("HbA1cHistory: %v", err)
	}
	if len(history) != 2 || history[0].Value != 6.8 {
		t.Errorf("history = %+v, want 2 entries newest first", history)
	}

	latest, err := s.LatestHbA1c("p1")
	if err != nil {
		t.Fatalf("LatestHbA1c: %v", err)
	}
	if latest.Value != 6.8 {
		t.Errorf("latest.Value = %v, want 6.8", latest.Value)
	}

	if _, err := s.LatestHbA1c("p3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestHbA1c for empty history err = %v, want ErrNotFound", err)
	}
}

func TestMedicationLifecycle(t *testing.T) {
	s := NewInMemoryStore()
	m := &Medication{
		ID:         uuid.New().String(),
		PatientID:  "p1",
		Name:       "Metformin",
		Dosage:     "500mg",
		Frequency:  "twice daily",
		TimesOfDay: []string{"08:00", "20:00"},
		Active:     true,
	}
	if err := s.SaveMedication(m); err != nil {
		t.Fatalf("SaveMedication: %v", err)
	}
	if err := s.SaveMedication(m); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate SaveMedication err = %v, want ErrDuplicate", err)
	}

	meds, err := s.ListMedications("p1")
	if err != nil {
		t.Fatalf("ListMedications: %v", err)
	}
	if len(meds) != 1 || meds[0].Name != "Metformin" {
		t.Fatalf("meds = %+v, want one Metformin entry", meds)
	}

	if err := s.DeactivateMedication("p1", m.ID); err != nil {
		t.Fatalf("DeactivateMedication: %v", err)
	}
	meds, err = s.ListMedications("p1")
	if err != nil {
		t.Fatalf("ListMedications after deactivate: %v", err)
	}
	if len(meds) != 0 {
		t.Errorf("got %d medications after deactivate, want 0", len(meds))
	}

	if err := s.DeactivateMedication("p2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deactivating other patient's medication err = %v, want ErrNotFound", err)
	}
}

func TestMedicationIntakes(t *testing.T) {
	s := NewInMemoryStore()
	midnight := time.Now().Truncate(24 * time.Hour)
	intake := &MedicationIntake{
		ID:            uuid.New().String(),
		PatientID:     "p1",
		MedicationID:  "med-1",
		ScheduledTime: "08:00",
		Taken:         true,
		TakenAt:       midnight.Add(8 * time.Hour),
	}
	if err := s.SaveMedicationIntake(intake); err != nil {
		t.Fatalf("SaveMedicationIntake: %v", err)
	}

	today, err := s.MedicationIntakesSince("p1", midnight)
	if err != nil {
		t.Fatalf("MedicationIntakesSince: %v", err)
	}
	if len(today) != 1 || !today[0].Taken {
		t.Errorf("intakes = %+v, want one taken dose", today)
	}
}

func TestReminderLifecycle(t *testing.T) {
	s := NewInMemoryStore()
	r := &Reminder{
		ID:        uuid.New().String(),
		PatientID: "p1",
		Type:      "medication",
		Title:     "Evening dose",
		Priority:  "high",
		Active:    true,
	}
	if err := s.SaveReminder(r); err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}

	active, err := s.ActiveReminders("p1")
	if err != nil {
		t.Fatalf("ActiveReminders: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("got %d reminders, want 1", len(active))
	}

	if err := s.DeactivateReminder("p1", r.ID); err != nil {
		t.Fatalf("DeactivateReminder: %v", err)
	}
	active, err = s.ActiveReminders("p1")
	if err != nil {
		t.Fatalf("ActiveReminders after deactivate: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("got %d reminders after deactivate, want 0", len(active))
	}
}

func testAppointment(patientID, apptType string, daysFromNow int) *Appointment {
	return &Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		Type:      apptType,
		Date:      time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02"),
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	s := NewInMemoryStore()
	past := testAppointment("p1", AppointmentDoctorVisit, -30)
	soon := testAppointment("p1", "lab_test", 7)
	later := testAppointment("p1", AppointmentDoctorVisit, 30)
	for _, a := range []*Appointment{past, soon, later} {
		if err := s.SaveAppointment(a); err != nil {
			t.Fatalf("SaveAppointment(%s): %v", a.Date, err)
		}
	}
	if err := s.SaveAppointment(past); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate SaveAppointment err = %v, want ErrDuplicate", err)
	}

	upcoming, err := s.ListAppointments("p1", true)
	if err != nil {
		t.Fatalf("ListAppointments(upcoming): %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != soon.ID || upcoming[1].ID != later.ID {
		t.Fatalf("upcoming = %+v, want [soon, later] soonest first", upcoming)
	}

	all, err := s.ListAppointments("p1", false)
	if err != nil {
		t.Fatalf("ListAppointments(all): %v", err)
	}
	if len(all) != 3 || all[0].ID != later.ID || all[2].ID != past.ID {
		t.Fatalf("all = %+v, want all three newest first", all)
	}

	if err := s.CompleteAppointment("p2", past.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("completing other patient's appointment err = %v, want ErrNotFound", err)
	}
	if err := s.CompleteAppointment("p1", past.ID); err != nil {
		t.Fatalf("CompleteAppointment: %v", err)
	}
	all, _ = s.ListAppointments("p1", false)
	if !all[2].Completed || all[2].CompletedAt == nil {
		t.Errorf("completed appointment = %+v, want Completed with a timestamp", all[2])
	}
}

func TestLastDoctorVisit(t *testing.T) {
	s := NewInMemoryStore()
	if _, err := s.LastDoctorVisit("p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LastDoctorVisit with no appointments err = %v, want ErrNotFound", err)
	}

	old := testAppointment("p1", AppointmentDoctorVisit, -200)
	recent := testAppointment("p1", AppointmentDoctorVisit, -20)
	lab := testAppointment("p1", "lab_test", -5)
	for _, a := range []*Appointment{old, recent, lab} {
		if err := s.SaveAppointment(a); err != nil {
			t.Fatalf("SaveAppointment: %v", err)
		}
	}

	// Incomplete visits never count as the last doctor visit.
	if _, err := s.LastDoctorVisit("p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LastDoctorVisit with only incomplete visits err = %v, want ErrNotFound", err)
	}

	for _, a := range []*Appointment{old, recent, lab} {
		if err := s.CompleteAppointment("p1", a.ID); err != nil {
			t.Fatalf("CompleteAppointment: %v", err)
		}
	}
	visit, err := s.LastDoctorVisit("p1")
	if err != nil {
		t.Fatalf("LastDoctorVisit: %v", err)
	}
	if visit.ID != recent.ID {
		t.Errorf("LastDoctorVisit = %s on %s, want the most recent doctor visit %s", visit.ID, visit.Date, recent.ID)
	}
}
