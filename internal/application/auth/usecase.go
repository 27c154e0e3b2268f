package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
	"github.com/soltecla/solarops-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de OWNER y login.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	enterpriseRepo repository.EnterpriseRepository
	txRunner       TxRunner
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	enterpriseRepo repository.EnterpriseRepository,
	txRunner TxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		enterpriseRepo: enterpriseRepo,
		txRunner:       txRunner,
		jwtCfg:         jwtCfg,
	}
}

// RegisterOwner crea un OWNER con su primera empresa y la fila de ownership,
// todo en una transacción. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterOwner(ctx context.Context, in dto.RegisterOwnerRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" || in.EnterpriseName == "" {
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
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleOwner,
		Active:       true,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	enterprise := &entity.Enterprise{
		ID:        uuid.New().String(),
		Name:      in.EnterpriseName,
		Document:  in.EnterpriseDocument,
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunSignup(ctx, func(
		userRepo repository.UserRepository,
		enterpriseRepo repository.EnterpriseRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := enterpriseRepo.Create(ctx, enterprise); err != nil {
			return err
		}
		return enterpriseRepo.AddOwner(ctx, enterprise.ID, user.ID)
	})
	if err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifica credenciales, resuelve la empresa activa y emite el JWT.
//
// La empresa del claim se valida aquí una vez, pero el resolver de tenant la
// revalida igualmente en cada petición posterior: el token solo transporta la
// selección, no la autoriza de forma permanente.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	enterpriseID, err := uc.selectEnterprise(ctx, user, in.EnterpriseID)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, enterpriseID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// selectEnterprise resuelve la empresa activa del token según el rol.
func (uc *AuthUseCase) selectEnterprise(ctx context.Context, user *entity.User, requested string) (string, error) {
	switch user.Role {
	case entity.RoleAdministrator:
		// Plataforma: sin tenant en el token.
		return "", nil
	case entity.RoleOwner:
		if requested != "" {
			ok, err := uc.enterpriseRepo.OwnerExists(ctx, requested, user.ID)
			if err != nil {
				return "", err
			}
			if !ok {
				return "", domain.ErrEnterpriseNotAllowed
			}
			return requested, nil
		}
		list, err := uc.enterpriseRepo.ListByOwner(ctx, user.ID)
		if err != nil {
			return "", err
		}
		if len(list) == 0 {
			return "", domain.ErrEnterpriseNotAllowed
		}
		return list[0].ID, nil
	default:
		// Subordinados y clientes quedan atados a su empresa de adscripción.
		if user.EnterpriseID == nil {
			return "", domain.ErrEnterpriseNotAllowed
		}
		if requested != "" && requested != *user.EnterpriseID {
			return "", domain.ErrEnterpriseNotAllowed
		}
		return *user.EnterpriseID, nil
	}
}

// ToUserResponse convierte la entidad a su representación pública.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		Active:       u.Active,
		EnterpriseID: u.EnterpriseID,
		Phone:        u.Phone,
		PhotoKey:     u.PhotoKey,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
