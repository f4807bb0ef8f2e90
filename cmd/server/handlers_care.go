package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/careplan"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

const hba1cCitation = "American Diabetes Association. Standards of Medical Care in Diabetes - 2024"

// hba1cTestIntervalDays is how often patients should retest.
const hba1cTestIntervalDays = 90

// checkupIntervalDays is how long a patient can go without a completed
// doctor visit before the appointment list nags them.
const checkupIntervalDays = 180

func (s *Server) handleCarePlan(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	plan := careplan.Generate(user.Name, user.Diseases)
	for i := range plan.Tasks {
		plan.Tasks[i].Task = s.localize(r, plan.Tasks[i].Task)
	}
	for i := range plan.Tips {
		plan.Tips[i] = s.localize(r, plan.Tips[i])
	}
	respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleLogHbA1c(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req HbA1cLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Value < 3 || req.Value > 20 {
		respondError(w, http.StatusBadRequest, "hba1c value must be between 3 and 20 percent", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", req.TestDate); err != nil {
		respondError(w, http.StatusBadRequest, "test_date must be YYYY-MM-DD", err)
		return
	}

	result := &records.HbA1cResult{
		ID:        uuid.New().String(),
		PatientID: user.ID,
		Value:     req.Value,
		TestDate:  req.TestDate,
		LabName:   req.LabName,
		Notes:     req.Notes,
	}
	if err := s.store.SaveHbA1c(result); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save result", err)
		return
	}

	respondJSON(w, http.StatusCreated, HbA1cLogResponse{
		ID:       result.ID,
		Message:  s.localize(r, fmt.Sprintf("HbA1c of %.1f%% logged for %s", req.Value, req.TestDate)),
		Feedback: s.localize(r, careplan.HbA1cFeedback(req.Value)),
		Citation: hba1cCitation,
	})
}

func (s *Server) handleHbA1cHistory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	history, err := s.store.HbA1cHistory(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load history", err)
		return
	}
	if history == nil {
		history = []*records.HbA1cResult{}
	}

	resp := HbA1cHistoryResponse{History: history}
	if len(history) > 0 {
		resp.Latest = history[0]
		if testDate, err := time.Parse("2006-01-02", resp.Latest.TestDate); err == nil {
			daysSince := int(time.Since(testDate).Hours() / 24)
			if daysSince > hba1cTestIntervalDays {
				resp.Reminder = s.localize(r, fmt.Sprintf(
					"It's been %d days since your last HbA1c test. Schedule one soon!", daysSince))
			}
		}
	} else {
		resp.Reminder = s.localize(r, "No HbA1c results yet. Ask your doctor for a baseline test.")
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	total, err := s.store.WaterTotalSince(user.ID, startOfDay(time.Now()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to total water intake", err)
		return
	}
	status := careplan.EvaluateWater(total)
	status.Message = s.localize(r, status.Message)
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	custom, err := s.store.ActiveReminders(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load reminders", err)
		return
	}
	if custom == nil {
		custom = []*records.Reminder{}
	}

	daily := careplan.DefaultReminders()
	for i := range daily {
		daily[i].Title = s.localize(r, daily[i].Title)
		daily[i].Body = s.localize(r, daily[i].Body)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"custom_reminders": custom,
		"daily_reminders":  daily,
		"disclaimer":       s.localize(r, careplan.RemindersDisclaimer),
	})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required", nil)
		return
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}

	reminder := &records.Reminder{
		ID:        uuid.New().String(),
		PatientID: user.ID,
		Type:      req.Type,
		Title:     req.Title,
		Body:      req.Body,
		Priority:  req.Priority,
		Active:    true,
	}
	if err := s.store.SaveReminder(reminder); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save reminder", err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	reminderID := chi.URLParam(r, "reminderId")
	if err := s.store.DeactivateReminder(user.ID, reminderID); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondError(w, http.StatusNotFound, "reminder not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete reminder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTravelChecklist(w http.ResponseWriter, r *http.Request) {
	checklist := careplan.TravelChecklist()
	for i := range checklist {
		checklist[i].Item = s.localize(r, checklist[i].Item)
		checklist[i].Reason = s.localize(r, checklist[i].Reason)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"checklist":          checklist,
		"gp_letter_template": careplan.GPLetterTemplate,
		"disclaimer":         s.localize(r, careplan.TravelDisclaimer),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	report, err := s.analyzer.FullReport(user.ID, user.Diseases)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build trend report", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleGlucoseTrends(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	report, err := s.analyzer.GlucoseTrends(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build glucose trends", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleBPTrends(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	report, err := s.analyzer.BPTrends(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build blood pressure trends", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleWeeklyAdjustments(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	adjustments, err := s.analyzer.WeeklyAdjustments(user.ID, user.Diseases)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build adjustments", err)
		return
	}
	adjustments.Message = s.localize(r, adjustments.Message)
	respondJSON(w, http.StatusOK, adjustments)
}

func (s *Server) handleListMedications(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	meds, err := s.store.ListMedications(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load medications", err)
		return
	}
	if meds == nil {
		meds = []*records.Medication{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"medications": meds})
}

func (s *Server) handleCreateMedication(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req MedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	med := &records.Medication{
		ID:         uuid.New().String(),
		PatientID:  user.ID,
		Name:       req.Name,
		Dosage:     req.Dosage,
		Frequency:  req.Frequency,
		TimesOfDay: req.TimesOfDay,
		Notes:      req.Notes,
		Active:     true,
	}
	if err := s.store.SaveMedication(med); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save medication", err)
		return
	}
	respondJSON(w, http.StatusCreated, med)
}

func (s *Server) handleDeleteMedication(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	medicationID := chi.URLParam(r, "medicationId")
	if err := s.store.DeactivateMedication(user.ID, medicationID); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondError(w, http.StatusNotFound, "medication not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete medication", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMedicationIntake(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	medicationID := chi.URLParam(r, "medicationId")
	var req MedicationIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	intake := &records.MedicationIntake{
		ID:            uuid.New().String(),
		PatientID:     user.ID,
		MedicationID:  medicationID,
		ScheduledTime: req.ScheduledTime,
		Taken:         req.Taken,
	}
	if err := s.store.SaveMedicationIntake(intake); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record intake", err)
		return
	}
	respondJSON(w, http.StatusCreated, intake)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Type == "" {
		respondError(w, http.StatusBadRequest, "appointment_type is required", nil)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "appointment_date must be YYYY-MM-DD", err)
		return
	}

	appt := &records.Appointment{
		ID:         uuid.New().String(),
		PatientID:  user.ID,
		Type:       req.Type,
		DoctorName: req.DoctorName,
		Location:   req.Location,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	}
	if err := s.store.SaveAppointment(appt); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save appointment", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":      appt.ID,
		"message": s.localize(r, fmt.Sprintf("Appointment scheduled for %s", appt.Date)),
	})
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	upcomingOnly := r.URL.Query().Get("upcoming") != "false"
	appts, err := s.store.ListAppointments(user.ID, upcomingOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load appointments", err)
		return
	}
	if appts == nil {
		appts = []*records.Appointment{}
	}

	resp := AppointmentListResponse{Appointments: appts}
	lastVisit, err := s.store.LastDoctorVisit(user.ID)
	switch {
	case err == nil:
		resp.LastDoctorVisit = lastVisit
		if visitDate, err := time.Parse("2006-01-02", lastVisit.Date); err == nil {
			daysSince := int(time.Since(visitDate).Hours() / 24)
			if daysSince > checkupIntervalDays {
				resp.Reminder = s.localize(r, fmt.Sprintf(
					"It's been %d days since your last doctor visit. Schedule a check-up soon!", daysSince))
			}
		}
	case errors.Is(err, records.ErrNotFound):
		resp.Reminder = s.localize(r,
			"Don't forget to schedule regular check-ups with your doctor (every 3-6 months).")
	default:
		respondError(w, http.StatusInternalServerError, "failed to load appointments", err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteAppointment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	appointmentID := chi.URLParam(r, "appointmentId")
	if err := s.store.CompleteAppointment(user.ID, appointmentID); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			respondError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to complete appointment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
