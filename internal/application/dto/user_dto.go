package dto

import "time"

// CreateUserRequest alta de un usuario subordinado (MANAGER/EMPLOYEE) o CUSTOMER.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// UpdateProfileRequest actualización del perfil propio.
// PhotoKey reemplaza la foto anterior; la clave vieja sale en el outbox
// de archivos pendientes de borrar (el caller decide cuándo ejecutarlo).
type UpdateProfileRequest struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	PhotoKey *string `json:"photo_key"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	EnterpriseID *string   `json:"enterprise_id,omitempty"`
	Phone        string    `json:"phone"`
	PhotoKey     *string   `json:"photo_key,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateProfileResponse perfil actualizado + outbox de archivos a eliminar.
type UpdateProfileResponse struct {
	User           UserResponse `json:"user"`
	PendingRemoval []string     `json:"-"` // claves de storage reemplazadas; las ejecuta el caller
}
