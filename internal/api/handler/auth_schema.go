package handler

// User-facing messages. The two credential failures share one message so a
// caller cannot tell an unknown email from a wrong password.
const (
	msgLoginSuccessful    = "Login successful"
	msgInvalidInput       = "Invalid input data"
	msgInvalidCredentials = "Invalid email or password"
	msgInternalError      = "An error occurred during login"
	msgTokenValid         = "Token valid"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse is the envelope for every /api/auth/login outcome.
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Email   string `json:"email,omitempty"`
}

type meResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
}
