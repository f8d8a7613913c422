package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
	"github.com/rosterlab/memberd/internal/service"
)

// AuthService defines member registration and login operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
}

// Auth handles the anonymous-reachable authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	MemberID int64  `json:"memberId"`
	Role     string `json:"role"`
}

// Register creates a member and returns the initial capability.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, model.ErrInvalidInput)
		return
	}

	session, err := h.authService.Register(r.Context(), service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Debug("Auth handler: registration failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:    session.Token,
		MemberID: session.MemberID,
		Role:     string(session.Role),
	})
}

// Login verifies credentials and returns a fresh capability.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, model.ErrInvalidInput)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Auth handler: login failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:    session.Token,
		MemberID: session.MemberID,
		Role:     string(session.Role),
	})
}
