package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loginapi/login-service/internal/pkg/metrics"
	"github.com/loginapi/login-service/internal/api/middleware"
	"github.com/loginapi/login-service/internal/core/domain"
	"github.com/loginapi/login-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Failure      500   {object}  loginResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()

	var req loginRequest
	if err := decodeJSON(c, &req, maxLoginBody); err != nil {
		return respondLogin(c, domain.LoginFailed(domain.ReasonInvalidInput), start)
	}
	if err := c.Validate(&req); err != nil {
		return respondLogin(c, domain.LoginFailed(domain.ReasonInvalidInput), start)
	}

	result := h.authService.Login(c.Request().Context(), domain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	return respondLogin(c, result, start)
}

// Me echoes the identity asserted by the bearer token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  loginResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	email, _ := c.Get(middleware.ContextEmailKey).(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, meResponse{Success: true, Message: msgTokenValid, Email: email})
}

// respondLogin maps a LoginResult onto its status code and envelope and
// records the attempt.
func respondLogin(c echo.Context, result domain.LoginResult, start time.Time) error {
	outcome := result.Outcome()
	metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
	metrics.LoginDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if result.Succeeded() {
		metrics.TokensIssuedTotal.Inc()
		return c.JSON(http.StatusOK, loginResponse{
			Success: true,
			Message: msgLoginSuccessful,
			Token:   result.Token,
			Email:   result.Email,
		})
	}

	status, msg := loginFailure(result.Reason)
	return c.JSON(status, loginResponse{Success: false, Message: msg})
}

func loginFailure(reason domain.FailureReason) (int, string) {
	switch reason {
	case domain.ReasonInvalidInput:
		return http.StatusBadRequest, msgInvalidInput
	case domain.ReasonInvalidCredentials:
		return http.StatusUnauthorized, msgInvalidCredentials
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}
