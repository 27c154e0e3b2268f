package enterprise

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/reconcile"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// EnterpriseUseCase casos de uso de empresas: alta de empresas adicionales
// del OWNER, edición, listado y reconciliación del conjunto de owners.
type EnterpriseUseCase struct {
	txRunner       TxRunner
	enterpriseRepo repository.EnterpriseRepository
	userRepo       repository.UserRepository
}

// NewEnterpriseUseCase construye el caso de uso.
func NewEnterpriseUseCase(txRunner TxRunner, enterpriseRepo repository.EnterpriseRepository, userRepo repository.UserRepository) *EnterpriseUseCase {
	return &EnterpriseUseCase{txRunner: txRunner, enterpriseRepo: enterpriseRepo, userRepo: userRepo}
}

// Create da de alta una empresa adicional del OWNER solicitante. La empresa
// y la fila de ownership se escriben en la misma transacción: nunca existe
// una empresa sin al menos un owner.
func (uc *EnterpriseUseCase) Create(ctx context.Context, ownerID string, in dto.CreateEnterpriseRequest) (*dto.EnterpriseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	e := &entity.Enterprise{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunOwnerReconcile(ctx, func(
		enterpriseRepo repository.EnterpriseRepository,
		_ repository.UserRepository,
	) error {
		if err := enterpriseRepo.Create(ctx, e); err != nil {
			return err
		}
		return enterpriseRepo.AddOwner(ctx, e.ID, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return toEnterpriseResponse(e), nil
}

// Get devuelve la empresa activa del token.
func (uc *EnterpriseUseCase) Get(ctx context.Context, enterpriseID string) (*dto.EnterpriseResponse, error) {
	e, err := uc.enterpriseRepo.GetByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEnterpriseResponse(e), nil
}

// ListMine lista las empresas donde el usuario figura como owner.
func (uc *EnterpriseUseCase) ListMine(ctx context.Context, ownerID string) ([]dto.EnterpriseResponse, error) {
	list, err := uc.enterpriseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EnterpriseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEnterpriseResponse(e))
	}
	return out, nil
}

// ListAll listado de plataforma (ADMINISTRATOR).
func (uc *EnterpriseUseCase) ListAll(ctx context.Context, limit, offset int) ([]dto.EnterpriseResponse, error) {
	list, err := uc.enterpriseRepo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EnterpriseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEnterpriseResponse(e))
	}
	return out, nil
}

// Update edita los datos de la empresa activa.
func (uc *EnterpriseUseCase) Update(ctx context.Context, enterpriseID string, in dto.UpdateEnterpriseRequest) (*dto.EnterpriseResponse, error) {
	e, err := uc.enterpriseRepo.GetByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		e.Name = in.Name
	}
	if in.Email != "" {
		e.Email = in.Email
	}
	e.Phone = in.Phone
	e.Address = in.Address
	e.UpdatedAt = time.Now()
	if err := uc.enterpriseRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEnterpriseResponse(e), nil
}

// ReconcileOwners converge el conjunto de owners de la empresa hacia el
// deseado. El solicitante se conserva siempre aunque no venga en la lista:
// una empresa nunca queda sin owners y nadie se expulsa a sí mismo por
// accidente. Como el conjunto aplicado puede diferir del enviado, se
// devuelve al caller para que no haya sorpresa silenciosa. Cada id entrante
// debe ser un usuario OWNER existente. Idempotente: repetir con el mismo
// conjunto no produce escrituras.
func (uc *EnterpriseUseCase) ReconcileOwners(ctx context.Context, enterpriseID, requesterID string, desired []string) ([]string, error) {
	for _, id := range desired {
		if id == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	target := append([]string{requesterID}, desired...)

	var applied []string
	err := uc.txRunner.RunOwnerReconcile(ctx, func(
		enterpriseRepo repository.EnterpriseRepository,
		userRepo repository.UserRepository,
	) error {
		// FOR UPDATE: serializa reconciliaciones concurrentes del conjunto
		// de owners de la misma empresa.
		e, err := enterpriseRepo.GetByIDForUpdate(ctx, enterpriseID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrParentNotFound
		}

		current, err := enterpriseRepo.ListOwnerIDs(ctx, enterpriseID)
		if err != nil {
			return err
		}
		plan := reconcile.Diff(current, target)
		if plan.Empty() {
			applied = current
			return nil
		}

		for _, userID := range plan.ToAdd {
			u, err := userRepo.GetByID(ctx, userID)
			if err != nil {
				return err
			}
			if u == nil || u.Role != entity.RoleOwner {
				return domain.ErrChildNotFound
			}
		}
		for _, userID := range plan.ToRemove {
			if err := enterpriseRepo.RemoveOwner(ctx, enterpriseID, userID); err != nil {
				return err
			}
		}
		for _, userID := range plan.ToAdd {
			if err := enterpriseRepo.AddOwner(ctx, enterpriseID, userID); err != nil {
				return err
			}
		}
		applied, err = enterpriseRepo.ListOwnerIDs(ctx, enterpriseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

func toEnterpriseResponse(e *entity.Enterprise) *dto.EnterpriseResponse {
	return &dto.EnterpriseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Document:  e.Document,
		Email:     e.Email,
		Phone:     e.Phone,
		Address:   e.Address,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
