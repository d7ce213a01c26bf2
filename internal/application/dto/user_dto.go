package dto

// LoginRequest body para POST /api/api-token-auth.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y datos básicos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserRequest alta/edición de usuario. En edición, password vacío conserva la contraseña actual.
type UserRequest struct {
	Name     string `json:"nombre" validate:"max=255"`
	Username string `json:"usuario" validate:"required,max=100"`
	Password string `json:"contraseña" validate:"omitempty,min=6"`
	Role     string `json:"rol" validate:"omitempty,oneof=Cajero Administrador"`
	Enabled  *bool  `json:"habilitado"`
}

// UserResponse usuario sin datos sensibles.
type UserResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Username string `json:"usuario"`
	Role     string `json:"rol"`
	Enabled  bool   `json:"habilitado"`
}
