package main

import (
	"time"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/health"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

// API request and response models.

type SignupRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Age      int      `json:"age"`
	Gender   string   `json:"gender"`
	Diseases []string `json:"diseases"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *records.User `json:"user"`
}

type GlucoseLogRequest struct {
	Value   float64 `json:"value"`
	Context string  `json:"context"`
	Notes   string  `json:"notes,omitempty"`
}

type BPLogRequest struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Pulse     *int   `json:"pulse,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type FoodLogRequest struct {
	Calories       float64  `json:"calories"`
	CarbohydratesG *float64 `json:"carbohydrates_g,omitempty"`
	SugarG         *float64 `json:"sugar_g,omitempty"`
	GlycemicIndex  *float64 `json:"glycemic_index,omitempty"`
	FiberG         *float64 `json:"fiber_g,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type ActivityLogRequest struct {
	DurationMinutes float64 `json:"duration_minutes"`
	Intensity       string  `json:"intensity"`
	Notes           string  `json:"notes,omitempty"`
}

type WaterLogRequest struct {
	AmountMl int `json:"amount_ml"`
}

// LogResponse is returned from every measurement logging endpoint. The
// Alerts slice merges guideline alerts with matched custom rules.
type LogResponse struct {
	ID             string                   `json:"id"`
	Message        string                   `json:"message"`
	Classification *health.BPClassification `json:"classification,omitempty"`
	Alerts         []*health.SOSAlert       `json:"alerts"`
	WaterStatus    any                      `json:"water_status,omitempty"`
}

type HbA1cLogRequest struct {
	Value    float64 `json:"value"`
	TestDate string  `json:"test_date"`
	LabName  string  `json:"lab_name,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type HbA1cLogResponse struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Feedback string `json:"feedback"`
	Citation string `json:"citation"`
}

type HbA1cHistoryResponse struct {
	History  []*records.HbA1cResult `json:"history"`
	Latest   *records.HbA1cResult   `json:"latest,omitempty"`
	Reminder string                 `json:"reminder,omitempty"`
}

type AppointmentRequest struct {
	Type       string `json:"appointment_type"`
	DoctorName string `json:"doctor_name,omitempty"`
	Location   string `json:"location,omitempty"`
	Date       string `json:"appointment_date"`
	Time       string `json:"appointment_time,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type AppointmentListResponse struct {
	Appointments    []*records.Appointment `json:"appointments"`
	LastDoctorVisit *records.Appointment   `json:"last_doctor_visit,omitempty"`
	Reminder        string                 `json:"reminder,omitempty"`
}

type ReminderRequest struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Body     string `json:"description"`
	Priority string `json:"priority"`
}

type MedicationRequest struct {
	Name       string   `json:"name"`
	Dosage     string   `json:"dosage"`
	Frequency  string   `json:"frequency"`
	TimesOfDay []string `json:"times_of_day"`
	Notes      string   `json:"notes,omitempty"`
}

type MedicationIntakeRequest struct {
	ScheduledTime string `json:"scheduled_time"`
	Taken         bool   `json:"taken"`
}

type CreateRuleRequest struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Expression        string `json:"expression"`
	AppliesTo         string `json:"applies_to"`
	Severity          string `json:"severity"`
	Message           string `json:"message"`
	RecommendedAction string `json:"recommended_action,omitempty"`
	Active            bool   `json:"active"`
}

type UpdateRuleRequest struct {
	Name              string `json:"name"`
	Expression        string `json:"expression"`
	Severity          string `json:"severity"`
	Message           string `json:"message"`
	RecommendedAction string `json:"recommended_action,omitempty"`
	Active            bool   `json:"active"`
}

// EvaluateRequest carries one ad-hoc measurement to run against the
// patient's custom rules without persisting it.
type EvaluateRequest struct {
	Kind     string              `json:"kind"`
	Glucose  *GlucoseLogRequest  `json:"glucose,omitempty"`
	BP       *BPLogRequest       `json:"bp,omitempty"`
	Food     *FoodLogRequest     `json:"food,omitempty"`
	Activity *ActivityLogRequest `json:"activity,omitempty"`
}

type EvaluateResponse struct {
	Alerts         []*health.SOSAlert `json:"alerts"`
	EvaluationTime string             `json:"evaluation_time"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MetricsResponse struct {
	LogLevel       string `json:"log_level"`
	TotalErrors    int64  `json:"total_errors"`
	TotalWarnings  int64  `json:"total_warnings"`
	Total5xxErrors int64  `json:"total_5xx_errors"`
	Total4xxErrors int64  `json:"total_4xx_errors"`
	SlowRequests   int64  `json:"slow_requests"`
}

type HealthResponse struct {
	Status        string    `json:"status"`
	EnginesLoaded int       `json:"engines_loaded"`
	Time          time.Time `json:"time"`
}
