package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/soltecla/solarops-api/internal/application/auth"
	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
	"github.com/soltecla/solarops-api/pkg/textutil"
)

// UserUseCase gestión de cuentas dentro de un tenant: alta de plantilla
// (MANAGER/EMPLOYEE) y clientes, listados, bloqueo y perfil propio.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// CreateStaff da de alta un MANAGER o EMPLOYEE subordinado al OWNER efectivo
// del solicitante y adscrito a la empresa activa.
func (uc *UserUseCase) CreateStaff(ctx context.Context, ownerID, enterpriseID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(strings.ToUpper(in.Role))
	if !role.Subordinate() {
		return nil, domain.ErrInvalidInput
	}
	return uc.create(ctx, role, &ownerID, enterpriseID, in)
}

// CreateCustomer da de alta un CUSTOMER adscrito a la empresa activa.
func (uc *UserUseCase) CreateCustomer(ctx context.Context, ownerID, enterpriseID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	return uc.create(ctx, entity.RoleCustomer, &ownerID, enterpriseID, in)
}

func (uc *UserUseCase) create(ctx context.Context, role entity.Role, ownerID *string, enterpriseID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		OwnerID:      ownerID,
		EnterpriseID: &enterpriseID,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// ListStaff lista MANAGER y EMPLOYEE del tenant, con búsqueda opcional
// insensible a mayúsculas y tildes.
func (uc *UserUseCase) ListStaff(ctx context.Context, enterpriseID, search string, page dto.PageRequest) ([]dto.UserResponse, error) {
	return uc.list(ctx, enterpriseID, []entity.Role{entity.RoleManager, entity.RoleEmployee}, search, page)
}

// ListCustomers lista los CUSTOMER del tenant.
func (uc *UserUseCase) ListCustomers(ctx context.Context, enterpriseID, search string, page dto.PageRequest) ([]dto.UserResponse, error) {
	return uc.list(ctx, enterpriseID, []entity.Role{entity.RoleCustomer}, search, page)
}

func (uc *UserUseCase) list(ctx context.Context, enterpriseID string, roles []entity.Role, search string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByEnterprise(ctx, enterpriseID, repository.UserFilter{
		Roles:  roles,
		Search: textutil.NormalizeSearch(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID devuelve un usuario del tenant.
func (uc *UserUseCase) GetByID(ctx context.Context, enterpriseID, userID string) (*dto.UserResponse, error) {
	u, err := uc.tenantUser(ctx, enterpriseID, userID)
	if err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(u)
	return &resp, nil
}

// SetActive bloquea o desbloquea una cuenta del tenant. No hay borrado
// físico de usuarios: bloquear es la única baja.
func (uc *UserUseCase) SetActive(ctx context.Context, enterpriseID, userID string, active bool) error {
	u, err := uc.tenantUser(ctx, enterpriseID, userID)
	if err != nil {
		return err
	}
	if u.Active == active {
		return nil
	}
	return uc.userRepo.SetActive(ctx, u.ID, active)
}

// UpdateProfile actualiza el perfil propio. Si PhotoKey reemplaza una foto
// existente, la clave anterior se devuelve en PendingRemoval para que el
// caller la elimine del storage DESPUÉS de confirmar la escritura.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	var pending []string
	if in.Name != "" {
		u.Name = in.Name
	}
	u.Phone = in.Phone
	if in.PhotoKey != nil {
		if u.PhotoKey != nil && *u.PhotoKey != *in.PhotoKey {
			pending = append(pending, *u.PhotoKey)
		}
		u.PhotoKey = in.PhotoKey
	}
	u.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UpdateProfileResponse{User: auth.ToUserResponse(u), PendingRemoval: pending}, nil
}

// SetActiveAny bloquea o desbloquea cualquier cuenta de la plataforma,
// sin acotar por tenant (ADMINISTRATOR).
func (uc *UserUseCase) SetActiveAny(ctx context.Context, userID string, active bool) error {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	if u.Active == active {
		return nil
	}
	return uc.userRepo.SetActive(ctx, u.ID, active)
}

// ListAll listado de plataforma (ADMINISTRATOR).
func (uc *UserUseCase) ListAll(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListAll(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// tenantUser carga el usuario SOLO si está adscrito a la empresa activa.
func (uc *UserUseCase) tenantUser(ctx context.Context, enterpriseID, userID string) (*entity.User, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.EnterpriseID == nil || *u.EnterpriseID != enterpriseID {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
