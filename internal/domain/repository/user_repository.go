package repository

import (
	"context"

	"github.com/soltecla/solarops-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios dentro de una empresa.
// Search se normaliza (minúsculas, sin tildes) antes de llegar aquí.
type UserFilter struct {
	Roles  []entity.Role
	Search string
	Limit  int
	Offset int
}

// UserRepository persistencia de usuarios (cualquier rol).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByEnterprise(ctx context.Context, enterpriseID string, filter UserFilter) ([]*entity.User, error)
	ListAll(ctx context.Context, limit, offset int) ([]*entity.User, error) // plataforma (ADMINISTRATOR)
	Update(ctx context.Context, user *entity.User) error
	// SetActive bloquea/desbloquea una cuenta. Nunca hay borrado físico.
	SetActive(ctx context.Context, id string, active bool) error
}
