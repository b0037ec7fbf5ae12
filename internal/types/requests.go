package types

// SignupRequest is the request body for POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and login: the user plus the
// opaque session token the client presents as a bearer credential.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpgradePlanRequest is the request body for POST /users/{id}/upgrade.
// Upgrading is modeled as a state transition only; payment is out of
// scope.
type UpgradePlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=pro enterprise"`
}

// SaveResumeRequest is the request body for POST /resumes. When
// Transcript is present and Output is nil the server generates both
// documents from the transcript before persisting.
type SaveResumeRequest struct {
	Transcript []Message    `json:"transcript,omitempty"`
	Output     *FinalOutput `json:"output,omitempty"`
}

// ChatRequest is the request body for POST /chat: the interview
// history so far plus the next user message.
type ChatRequest struct {
	History []Message `json:"history,omitempty"`
	Message string    `json:"message" validate:"required,min=1,max=4000"`
}

// ChatResponse carries the model's next interview turn.
type ChatResponse struct {
	Reply string `json:"reply"`
}
