package api

// EvaluateRequest optionally overrides the instant being checked; when At
// is empty the current time is used.
type EvaluateRequest struct {
	At string `json:"at"` // RFC3339
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
