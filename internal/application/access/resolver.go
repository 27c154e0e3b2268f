// Package access implementa el resolver de identidad/rol y el resolver de
// tenant. Toda petición acotada a empresa pasa por aquí ANTES de tocar
// cualquier otro repositorio; las operaciones declaran su propia lista de
// roles permitidos en lugar de chequear arrays de strings ad hoc.
package access

import (
	"context"
	"fmt"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// Input datos de la petición ya verificados criptográficamente por el
// middleware JWT: sujeto, empresa activa seleccionada y la allow-list que
// declara la operación llamante.
type Input struct {
	UserID       string // claim subject; vacío = token sin sujeto
	EnterpriseID string // claim de empresa activa
	Allowed      []entity.Role
}

// Grant resultado de una resolución exitosa.
// Enterprise es nil para ADMINISTRATOR (opera a nivel plataforma) y para
// CUSTOMER (nunca resuelve tenant propio; lo consulta el personal de la
// empresa que lo atiende).
type Grant struct {
	User             *entity.User
	Enterprise       *entity.Enterprise
	EffectiveOwnerID string // "" cuando no aplica (ADMINISTRATOR, CUSTOMER)
}

// Resolver resuelve identidad, rol y tenant contra el estado ACTUAL de la
// base en cada petición. No cachea nada: revocar un ownership surte efecto
// en la siguiente petición, sin ventana de sesión obsoleta.
type Resolver struct {
	userRepo       repository.UserRepository
	enterpriseRepo repository.EnterpriseRepository
}

// NewResolver construye el resolver.
func NewResolver(userRepo repository.UserRepository, enterpriseRepo repository.EnterpriseRepository) *Resolver {
	return &Resolver{userRepo: userRepo, enterpriseRepo: enterpriseRepo}
}

// Resolve ejecuta la cadena completa: identidad → rol → owner efectivo → tenant.
//
// Fallos en orden: ErrUnauthenticated (sin sujeto), ErrUserNotFound,
// ErrUserInactive, ErrRoleNotAllowed (rol fuera de la allow-list) y
// ErrEnterpriseNotAllowed para cualquier fallo de tenant — deliberadamente el
// mismo error genérico tanto si la empresa no existe como si el usuario no es
// miembro, para no filtrar existencia de tenants ajenos.
func (r *Resolver) Resolve(ctx context.Context, in Input) (*Grant, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("access: cargar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	if !roleAllowed(user.Role, in.Allowed) {
		return nil, domain.ErrRoleNotAllowed
	}

	// ADMINISTRATOR opera a nivel plataforma y se salta la resolución de
	// tenant por completo; su allow-list es exactamente {ADMINISTRATOR}.
	// CUSTOMER jamás resuelve un tenant propio.
	if user.Role == entity.RoleAdministrator || user.Role == entity.RoleCustomer {
		return &Grant{User: user}, nil
	}

	effectiveOwnerID := user.EffectiveOwnerID()
	if effectiveOwnerID == "" || in.EnterpriseID == "" {
		return nil, domain.ErrEnterpriseNotAllowed
	}

	// Los subordinados además deben estar adscritos a la empresa reclamada.
	if user.Role.Subordinate() {
		if user.EnterpriseID == nil || *user.EnterpriseID != in.EnterpriseID {
			return nil, domain.ErrEnterpriseNotAllowed
		}
	}

	enterprise, err := r.enterpriseRepo.GetByID(ctx, in.EnterpriseID)
	if err != nil {
		return nil, fmt.Errorf("access: cargar empresa: %w", err)
	}
	if enterprise == nil {
		return nil, domain.ErrEnterpriseNotAllowed
	}

	isOwner, err := r.enterpriseRepo.OwnerExists(ctx, in.EnterpriseID, effectiveOwnerID)
	if err != nil {
		return nil, fmt.Errorf("access: verificar membresía: %w", err)
	}
	if !isOwner {
		return nil, domain.ErrEnterpriseNotAllowed
	}

	return &Grant{
		User:             user,
		Enterprise:       enterprise,
		EffectiveOwnerID: effectiveOwnerID,
	}, nil
}

func roleAllowed(role entity.Role, allowed []entity.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
