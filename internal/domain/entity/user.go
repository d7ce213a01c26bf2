package entity

// Roles válidos para User.
const (
	RoleCajero        = "Cajero"
	RoleAdministrador = "Administrador"
)

// User representa a quien opera la caja o administra el sistema.
type User struct {
	ID           int64
	Name         string
	Username     string // único
	PasswordHash string // bcrypt; nunca en texto plano después de persistir
	Role         string
	Enabled      bool
}

// ValidRole indica si el rol es aceptado (vacío se permite).
func ValidRole(role string) bool {
	return role == "" || role == RoleCajero || role == RoleAdministrador
}
