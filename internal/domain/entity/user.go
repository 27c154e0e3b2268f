package entity

import "time"

// Role rol de un usuario. Enumeración cerrada: nunca comparar contra
// strings sueltos fuera de estas constantes.
type Role string

// Roles válidos para User.
const (
	RoleAdministrator Role = "ADMINISTRATOR" // plataforma, sin tenant
	RoleOwner         Role = "OWNER"         // dueño de una o varias empresas
	RoleManager       Role = "MANAGER"       // subordinado a un OWNER
	RoleEmployee      Role = "EMPLOYEE"      // subordinado a un OWNER
	RoleCustomer      Role = "CUSTOMER"      // cliente; nunca resuelve tenant propio
)

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleOwner, RoleManager, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// Subordinate indica si el rol depende de un OWNER (requiere OwnerID).
func (r Role) Subordinate() bool {
	return r == RoleManager || r == RoleEmployee
}

// User representa una cuenta del sistema (cualquier rol).
// Nunca se elimina físicamente: solo se desactiva con Active=false.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; nunca en claro después de persistir
	Role         Role
	Active       bool
	OwnerID      *string // OWNER que gobierna a MANAGER/EMPLOYEE/CUSTOMER; nil para OWNER y ADMINISTRATOR
	EnterpriseID *string // empresa a la que pertenece una cuenta no-OWNER (enterprise_belong_id)
	Phone        string
	PhotoKey     *string // clave del archivo de foto en el storage; nil si no tiene
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveOwnerID devuelve el OWNER efectivo para chequeos de permisos:
// el propio ID si el rol es OWNER, el OwnerID para MANAGER/EMPLOYEE.
// Devuelve "" cuando el rol no tiene owner efectivo (ADMINISTRATOR, CUSTOMER
// usan otra vía de resolución) o cuando el back-reference falta.
func (u *User) EffectiveOwnerID() string {
	switch u.Role {
	case RoleOwner:
		return u.ID
	case RoleManager, RoleEmployee:
		if u.OwnerID != nil {
			return *u.OwnerID
		}
	}
	return ""
}
