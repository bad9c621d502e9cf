package request

type SignUpRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ClientInfo describes the browser a session is opened from.
type ClientInfo struct {
	UserAgent string
	IP        string
}
