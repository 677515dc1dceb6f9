package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/fitcoach/internal/errors"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/models"
	"github.com/julianstephens/fitcoach/internal/validation"
)

const maxBodyBytes = 1 << 20

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the profile plus credentials. The top-level email
// shadows ProfileInput.Email.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	models.ProfileInput
}

type weightRequest struct {
	Weight *float64 `json:"weight"`
}

type generateRequest struct {
	UserID string `json:"userId"`
	ID     string `json:"id"` // a full profile may be posted instead
}

type authResponse struct {
	Success bool                  `json:"success"`
	User    *models.PublicProfile `json:"user,omitempty"`
	Message string                `json:"message,omitempty"`
}

type planResponse struct {
	Success bool                  `json:"success"`
	Plan    *models.GeneratedPlan `json:"plan,omitempty"`
	Message string                `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrWrongPassword):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrAlreadyExists):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidProfile), stderrors.Is(err, errors.ErrInvalidWeight):
		return http.StatusBadRequest
	case stderrors.Is(err, errors.ErrGenerationFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage shows validation details and the friendly text for everything else.
func errorMessage(err error) string {
	if statusFor(err) == http.StatusBadRequest {
		return err.Error()
	}
	return errors.UserMessage(err)
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, messageResponse{Message: errorMessage(err)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decode(w, r, &req) {
		return
	}
	u, err := s.mgr.Authenticate(req.Email, req.Password)
	if err != nil {
		writeJSON(w, statusFor(err), authResponse{Message: errors.UserMessage(err)})
		return
	}
	pub := u.Public()
	writeJSON(w, http.StatusOK, authResponse{Success: true, User: &pub})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := s.mgr.Register(req.Email, req.Password, req.ProfileInput)
	if err != nil {
		writeJSON(w, statusFor(err), authResponse{Message: errorMessage(err)})
		return
	}
	pub := u.Public()
	writeJSON(w, http.StatusCreated, authResponse{Success: true, User: &pub})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.mgr.User(chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if !decode(w, r, &in) {
		return
	}
	u, err := s.mgr.UpdateProfile(chi.URLParam(r, "userId"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

func (s *Server) handleLogWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Weight == nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "weight is required"})
		return
	}
	if err := validation.ValidateWeight(*req.Weight); err != nil {
		writeError(w, err)
		return
	}
	u, err := s.mgr.RecordWeight(chi.URLParam(r, "userId"), *req.Weight)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	id := req.UserID
	if id == "" {
		id = req.ID
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, planResponse{Message: "userId is required"})
		return
	}

	plan, err := s.mgr.GeneratePlan(r.Context(), id)
	if err != nil && !stderrors.Is(err, errors.ErrIO) {
		writeJSON(w, statusFor(err), planResponse{Message: errors.UserMessage(err)})
		return
	}
	if err != nil {
		logger.Warn("Plan generated but not cached", "user", id, "error", err)
	}
	writeJSON(w, http.StatusOK, planResponse{Success: true, Plan: &plan})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")
	plan, err := s.mgr.CachedPlan(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, planResponse{Message: "No plan generated yet"})
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Success: true, Plan: plan})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.mgr.Users()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]models.PublicProfile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	writeJSON(w, http.StatusOK, out)
}
