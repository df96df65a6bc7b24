package entity

import "time"

// Roles de usuario del sistema de suministros.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleAlmacenero = "almacenero"
	RoleEmpleado   = "empleado"
)

// User usuario del sistema (empleado de la entidad).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Department   string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
