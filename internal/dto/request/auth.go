package request

// RegisterRequest requires both fields to be non-empty. The email is not
// format-checked; any non-empty string registers.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required,min=1,max=50"`
}

// LoginRequest carries the email only. There is no password in this system;
// a matching user row is a successful login.
type LoginRequest struct {
	Email string `json:"email" validate:"required"`
}
