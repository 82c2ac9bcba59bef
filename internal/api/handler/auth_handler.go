package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talenthq/succession-portal/internal/api/metrics"
	"github.com/talenthq/succession-portal/internal/core/domain"
	"github.com/talenthq/succession-portal/internal/core/ports"
)

// AuthHandler serves the signup/login/logout surface for one role. The
// response shapes differ between outcomes and are part of the contract the
// frontend depends on:
//
//	signup  201 {message}  400 {errors:[...]}  400 {message}  500 {message}
//	login   200 {message,user,token} + jwt cookie  400 {error}
//	logout  200 {message}  401 {message}
type AuthHandler struct {
	role          domain.Role
	service       ports.AuthService
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandler(role domain.Role, service ports.AuthService, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{role: role, service: service, tokenTTL: tokenTTL, secureCookies: secureCookies}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors []string `json:"errors"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
}

// Signup creates a new credential record. No token is issued and no session
// starts; the client logs in separately.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	_, err := h.service.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.SignupsTotal.WithLabelValues(h.role.Name, "validation_error").Inc()
			return c.JSON(http.StatusBadRequest, validationResponse{Errors: verr.Violations})
		case errors.Is(err, domain.ErrUserExists):
			metrics.SignupsTotal.WithLabelValues(h.role.Name, "conflict").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: h.role.Label + " already exists"})
		default:
			metrics.SignupsTotal.WithLabelValues(h.role.Name, "error").Inc()
			return err
		}
	}

	metrics.SignupsTotal.WithLabelValues(h.role.Name, "created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: h.role.Label + " created successfully"})
}

// Login verifies credentials and establishes a session: the token is set as
// an HTTP-only cookie and also returned in the body for clients that manage
// it themselves. Unknown-user and wrong-password responses are identical.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues(h.role.Name, "invalid_credentials").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid username or password"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues(h.role.Name, "rate_limited").Inc()
			return c.JSON(http.StatusTooManyRequests, messageResponse{Message: "too many login attempts, try again later"})
		default:
			metrics.LoginsTotal.WithLabelValues(h.role.Name, "error").Inc()
			return err
		}
	}

	setSessionCookie(c, token, h.tokenTTL, h.secureCookies)
	metrics.LoginsTotal.WithLabelValues(h.role.Name, "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// Logout instructs the client to discard the session cookie. The token is
// not revoked server-side; it stays cryptographically valid until expiry.
// Requests with no session cookie are rejected for both roles.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := c.Cookie(sessionCookieName); err != nil {
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "You are not logged in"})
	}

	clearSessionCookie(c, h.secureCookies)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
