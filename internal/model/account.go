package model

// Role separates teachers, who keep the logbook, from administrators.
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleAdmin   Role = "ADMIN"
)

// Account represents a teacher or administrator login.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	// Secret is the admin credential (bcrypt hash). Teachers log in without one.
	Secret string `json:"-"`
}

// IsAdmin reports whether the account carries the ADMIN role.
func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// LoginRequest is the payload for authentication. Password is only checked
// for ADMIN accounts.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// CreateTeacherRequest is the payload for adding a teacher account.
type CreateTeacherRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
}

// ChangePasswordRequest is the payload for changing the admin credential.
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
