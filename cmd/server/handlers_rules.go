package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/patientengine"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/rules"
)

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	engine, err := s.engines.GetEngine(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get rules engine", err)
		return
	}
	active, err := engine.ActiveRules()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules", err)
		return
	}
	if active == nil {
		active = []*rules.Rule{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"rules": active})
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	rule := &rules.Rule{
		ID:                req.ID,
		PatientID:         user.ID,
		Name:              req.Name,
		Expression:        req.Expression,
		AppliesTo:         health.MeasurementKind(req.AppliesTo),
		Severity:          health.Severity(req.Severity),
		Message:           req.Message,
		RecommendedAction: req.RecommendedAction,
		Active:            req.Active,
	}
	if err := patientengine.ValidateRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule", err)
		return
	}

	engine, err := s.engines.GetEngine(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get rules engine", err)
		return
	}
	existing, err := engine.ActiveRules()
	if err == nil && len(existing) >= patientengine.MaxRulesPerPatient {
		respondError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("rule limit of %d reached", patientengine.MaxRulesPerPatient), nil)
		return
	}

	if err := engine.AddRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to add rule", err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ruleID := chi.URLParam(r, "ruleId")

	engine, err := s.engines.GetEngine(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get rules engine", err)
		return
	}
	rule, err := engine.Rule(ruleID)
	if err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ruleID := chi.URLParam(r, "ruleId")

	var req UpdateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	engine, err := s.engines.GetEngine(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get rules engine", err)
		return
	}
	existing, err := engine.Rule(ruleID)
	if err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}

	rule := &rules.Rule{
		ID:                ruleID,
		PatientID:         user.ID,
		Name:              req.Name,
		Expression:        req.Expression,
		AppliesTo:         existing.AppliesTo,
		Severity:          health.Severity(req.Severity),
		Message:           req.Message,
		RecommendedAction: req.RecommendedAction,
		Active:            req.Active,
	}
	if err := patientengine.ValidateRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule", err)
		return
	}
	if err := engine.UpdateRule(rule); err != nil {
		respondError(w, http.StatusBadRequest, "failed to update rule", err)
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	ruleID := chi.URLParam(r, "ruleId")

	engine, err := s.engines.GetEngine(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get rules engine", err)
		return
	}
	if err := engine.DeleteRule(ruleID); err != nil {
		respondError(w, http.StatusNotFound, "rule not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEvaluate runs one ad-hoc measurement through the guideline checks
// and the patient's custom rules without persisting a log entry.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var m health.Measurement
	switch health.MeasurementKind(req.Kind) {
	case health.KindGlucose:
		if req.Glucose == nil {
			respondError(w, http.StatusBadRequest, "glucose payload is required", nil)
			return
		}
		m = health.GlucoseReading{
			ValueMgDl: req.Glucose.Value,
			Context:   health.GlucoseContext(req.Glucose.Context),
		}
	case health.KindBloodPressure:
		if req.BP == nil {
			respondError(w, http.StatusBadRequest, "bp payload is required", nil)
			return
		}
		m = health.BloodPressureReading{
			Systolic:  req.BP.Systolic,
			Diastolic: req.BP.Diastolic,
			Pulse:     req.BP.Pulse,
		}
	case health.KindFood:
		if req.Food == nil {
			respondError(w, http.StatusBadRequest, "food payload is required", nil)
			return
		}
		m = health.FoodIntake{
			Calories:       req.Food.Calories,
			CarbohydratesG: req.Food.CarbohydratesG,
			SugarG:         req.Food.SugarG,
			GlycemicIndex:  req.Food.GlycemicIndex,
			FiberG:         req.Food.FiberG,
		}
	case health.KindExercise:
		if req.Activity == nil {
			respondError(w, http.StatusBadRequest, "activity payload is required", nil)
			return
		}
		m = health.ExerciseSession{
			DurationMinutes: req.Activity.DurationMinutes,
			Intensity:       health.Intensity(req.Activity.Intensity),
		}
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown measurement kind %q", req.Kind), nil)
		return
	}

	if err := m.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid measurement", err)
		return
	}

	start := time.Now()
	alerts := s.alertsFor(user.ID, m)
	s.localizeAlerts(r, alerts)
	respondJSON(w, http.StatusOK, EvaluateResponse{
		Alerts:         alerts,
		EvaluationTime: time.Since(start).String(),
	})
}
