package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/careplan"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/internal/logger"
	"github.com/Phantom-deluxe06/chronic-disease-care-planner-sub000/records"
)

type contextKey string

const userContextKey contextKey = "user"

// hashPassword returns "salt$hash" where hash = sha256(salt || password).
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	sum := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum[:]), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	sum := sha256.Sum256(append(salt, []byte(password)...))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(parts[1])) == 1
}

// tokenStore maps bearer tokens to user IDs. Tokens live for the process
// lifetime; a restart logs everyone out.
type tokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]string)}
}

func (ts *tokenStore) Issue(userID string) string {
	token := uuid.New().String()
	ts.mu.Lock()
	ts.tokens[token] = userID
	ts.mu.Unlock()
	return token
}

func (ts *tokenStore) Lookup(token string) (string, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	userID, ok := ts.tokens[token]
	return userID, ok
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "name, email and a password of at least 6 characters are required", nil)
		return
	}
	for _, d := range req.Diseases {
		switch d {
		case careplan.DiseaseDiabetes, careplan.DiseaseHeartDisease, careplan.DiseaseHypertension:
		default:
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown disease %q", d), nil)
			return
		}
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create account", err)
		return
	}
	user := &records.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Age:          req.Age,
		Gender:       req.Gender,
		Diseases:     req.Diseases,
	}
	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, records.ErrDuplicate) {
			respondError(w, http.StatusConflict, "an account with this email already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create account", err)
		return
	}

	if err := s.engines.CreatePatient(user.ID); err != nil {
		logger.Error("failed to create rules engine for new patient", "patient_id", user.ID, "error", err)
	}

	logger.Info("patient signed up", "patient_id", user.ID)
	respondJSON(w, http.StatusCreated, AuthResponse{
		Token: s.tokens.Issue(user.ID),
		User:  user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := s.store.UserByEmail(req.Email)
	if err != nil || !verifyPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: s.tokens.Issue(user.ID),
		User:  user,
	})
}

// handleMe returns the authenticated user's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, currentUser(r))
}

// requireAuth resolves the bearer token to a user and stores it on the
// request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		userID, ok := s.tokens.Lookup(token)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		user, err := s.store.UserByID(userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "account no longer exists", nil)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated user set by requireAuth.
func currentUser(r *http.Request) *records.User {
	user, _ := r.Context().Value(userContextKey).(*records.User)
	return user
}
