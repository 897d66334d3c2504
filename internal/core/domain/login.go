package domain

// FailureReason classifies an unsuccessful login.
type FailureReason string

const (
	ReasonInvalidInput       FailureReason = "invalid-input"
	ReasonInvalidCredentials FailureReason = "invalid-credentials"
	ReasonInternalError      FailureReason = "internal-error"
)

// LoginRequest carries the submitted credentials. Password is plaintext and
// must never be persisted or logged.
type LoginRequest struct {
	Email    string
	Password string
}

// LoginResult is the outcome of a login attempt. Build it with LoginSucceeded
// or LoginFailed so that exactly one variant is populated.
type LoginResult struct {
	Token  string
	Email  string
	Reason FailureReason
}

func LoginSucceeded(token, email string) LoginResult {
	return LoginResult{Token: token, Email: email}
}

func LoginFailed(reason FailureReason) LoginResult {
	return LoginResult{Reason: reason}
}

// Succeeded reports whether the result carries a token.
func (r LoginResult) Succeeded() bool {
	return r.Reason == ""
}

// Outcome is a short label for logs and metrics.
func (r LoginResult) Outcome() string {
	if r.Succeeded() {
		return "success"
	}
	return string(r.Reason)
}
