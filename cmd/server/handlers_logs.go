package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/careplan"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/internal/logger"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

// alertsFor merges guideline alerts with the patient's matched custom
// rules. Custom rule failures are logged but never block the response.
func (s *Server) alertsFor(patientID string, m health.Measurement) []*health.SOSAlert {
	alerts := []*health.SOSAlert{}
	if a := health.EvaluateSOS(m); a != nil {
		alerts = append(alerts, a)
	}

	engine, err := s.engines.GetEngine(patientID)
	if err != nil {
		logger.Error("failed to get rules engine", "patient_id", patientID, "error", err)
		return alerts
	}
	custom, err := engine.Alerts(m)
	if err != nil {
		logger.Error("custom rule evaluation failed", "patient_id", patientID, "error", err)
		return alerts
	}
	return append(alerts, custom...)
}

func (s *Server) localizeAlerts(r *http.Request, alerts []*health.SOSAlert) {
	for _, a := range alerts {
		a.Message = s.localize(r, a.Message)
		a.RecommendedAction = s.localize(r, a.RecommendedAction)
	}
}

func (s *Server) handleLogGlucose(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req GlucoseLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reading := health.GlucoseReading{
		ValueMgDl: req.Value,
		Context:   health.GlucoseContext(req.Context),
	}
	if err := reading.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid glucose reading", err)
		return
	}

	log := &records.DailyLog{
		ID:             uuid.New().String(),
		PatientID:      user.ID,
		LogType:        records.LogGlucose,
		Value:          req.Value,
		Unit:           "mg/dL",
		ReadingContext: req.Context,
		Notes:          req.Notes,
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save log", err)
		return
	}

	alerts := s.alertsFor(user.ID, reading)
	s.localizeAlerts(r, alerts)
	respondJSON(w, http.StatusCreated, LogResponse{
		ID:      log.ID,
		Message: s.localize(r, fmt.Sprintf("Glucose logged: %.0f mg/dL (%s)", req.Value, req.Context)),
		Alerts:  alerts,
	})
}

func (s *Server) handleLogBP(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req BPLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reading := health.BloodPressureReading{
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
		Pulse:     req.Pulse,
	}
	if err := reading.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid blood pressure reading", err)
		return
	}

	diastolic := float64(req.Diastolic)
	log := &records.DailyLog{
		ID:             uuid.New().String(),
		PatientID:      user.ID,
		LogType:        records.LogBP,
		Value:          float64(req.Systolic),
		ValueSecondary: &diastolic,
		Unit:           "mmHg",
		Notes:          req.Notes,
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save log", err)
		return
	}

	classification := health.ClassifyBloodPressure(req.Systolic, req.Diastolic)
	classification.Message = s.localize(r, classification.Message)
	alerts := s.alertsFor(user.ID, reading)
	s.localizeAlerts(r, alerts)
	respondJSON(w, http.StatusCreated, LogResponse{
		ID:             log.ID,
		Message:        s.localize(r, fmt.Sprintf("Blood pressure logged: %d/%d mmHg", req.Systolic, req.Diastolic)),
		Classification: &classification,
		Alerts:         alerts,
	})
}

func (s *Server) handleLogFood(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req FoodLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	intake := health.FoodIntake{
		Calories:       req.Calories,
		CarbohydratesG: req.CarbohydratesG,
		SugarG:         req.SugarG,
		GlycemicIndex:  req.GlycemicIndex,
		FiberG:         req.FiberG,
	}
	if err := intake.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid food intake", err)
		return
	}

	log := &records.DailyLog{
		ID:        uuid.New().String(),
		PatientID: user.ID,
		LogType:   records.LogFood,
		Value:     req.Calories,
		Unit:      "kcal",
		Notes:     req.Notes,
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save log", err)
		return
	}

	alerts := s.alertsFor(user.ID, intake)
	s.localizeAlerts(r, alerts)
	respondJSON(w, http.StatusCreated, LogResponse{
		ID:      log.ID,
		Message: s.localize(r, fmt.Sprintf("Meal logged: %.0f kcal", req.Calories)),
		Alerts:  alerts,
	})
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req ActivityLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	session := health.ExerciseSession{
		DurationMinutes: req.DurationMinutes,
		Intensity:       health.Intensity(req.Intensity),
	}
	if err := session.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid exercise session", err)
		return
	}

	log := &records.DailyLog{
		ID:        uuid.New().String(),
		PatientID: user.ID,
		LogType:   records.LogActivity,
		Value:     req.DurationMinutes,
		Unit:      "minutes",
		Notes:     req.Notes,
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save log", err)
		return
	}

	alerts := s.alertsFor(user.ID, session)
	s.localizeAlerts(r, alerts)
	respondJSON(w, http.StatusCreated, LogResponse{
		ID:      log.ID,
		Message: s.localize(r, fmt.Sprintf("Activity logged: %.0f minutes (%s)", req.DurationMinutes, req.Intensity)),
		Alerts:  alerts,
	})
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req WaterLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.AmountMl <= 0 {
		req.AmountMl = 250 // default glass of water
	}

	log := &records.DailyLog{
		ID:        uuid.New().String(),
		PatientID: user.ID,
		LogType:   records.LogWater,
		Value:     float64(req.AmountMl),
		Unit:      "ml",
	}
	if err := s.store.SaveDailyLog(log); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save log", err)
		return
	}

	total, err := s.store.WaterTotalSince(user.ID, startOfDay(time.Now()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to total water intake", err)
		return
	}
	status := careplan.EvaluateWater(total)
	status.Message = s.localize(r, status.Message)
	respondJSON(w, http.StatusCreated, LogResponse{
		ID:          log.ID,
		Message:     s.localize(r, fmt.Sprintf("Water intake logged: %dml (total today: %dml)", req.AmountMl, total)),
		Alerts:      []*health.SOSAlert{},
		WaterStatus: status,
	})
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	logType := r.URL.Query().Get("type")
	if logType != "" && !records.ValidLogType(logType) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown log type %q", logType), nil)
		return
	}
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > 365 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 365", nil)
			return
		}
		days = n
	}

	logs, err := s.store.ListDailyLogs(user.ID, logType, days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list logs", err)
		return
	}
	if logs == nil {
		logs = []*records.DailyLog{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	logType := r.URL.Query().Get("type")
	if !records.ValidLogType(logType) {
		respondError(w, http.StatusBadRequest, "type query parameter is required", nil)
		return
	}

	stats, err := s.store.WeeklyStats(user.ID, logType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
