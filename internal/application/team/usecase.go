package team

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

// TeamUseCase casos de uso de cuadrillas: CRUD y reconciliación de miembros.
type TeamUseCase struct {
	txRunner TxRunner
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(txRunner TxRunner, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamUseCase {
	return &TeamUseCase{txRunner: txRunner, teamRepo: teamRepo, userRepo: userRepo}
}

// Create da de alta una cuadrilla del tenant.
func (uc *TeamUseCase) Create(ctx context.Context, enterpriseID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	t := &entity.Team{
		ID:           uuid.New().String(),
		EnterpriseID: enterpriseID,
		Name:         in.Name,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.teamRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTeamResponse(t, nil), nil
}

// GetByID devuelve la cuadrilla con sus miembros actuales.
func (uc *TeamUseCase) GetByID(ctx context.Context, enterpriseID, teamID string) (*dto.TeamResponse, error) {
	t, err := uc.teamRepo.GetByIDAndEnterprise(ctx, teamID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	members, err := uc.teamRepo.ListMemberIDs(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(t, members), nil
}

// List lista las cuadrillas del tenant.
func (uc *TeamUseCase) List(ctx context.Context, enterpriseID string, limit, offset int) ([]dto.TeamResponse, error) {
	teams, err := uc.teamRepo.ListByEnterprise(ctx, enterpriseID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, *toTeamResponse(t, nil))
	}
	return out, nil
}

// Update edita nombre y descripción.
func (uc *TeamUseCase) Update(ctx context.Context, enterpriseID, teamID string, in dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	t, err := uc.teamRepo.GetByIDAndEnterprise(ctx, teamID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		t.Name = in.Name
	}
	t.Description = in.Description
	t.UpdatedAt = time.Now()
	if err := uc.teamRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTeamResponse(t, nil), nil
}

// Delete elimina la cuadrilla del tenant.
func (uc *TeamUseCase) Delete(ctx context.Context, enterpriseID, teamID string) error {
	t, err := uc.teamRepo.GetByIDAndEnterprise(ctx, teamID, enterpriseID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.teamRepo.Delete(ctx, t.ID)
}

// ReconcileMembers converge la membresía de la cuadrilla hacia el conjunto
// deseado de user_ids. Cada id debe ser un usuario de plantilla (MANAGER o
// EMPLOYEE) adscrito al tenant; el conjunto vacío vacía la cuadrilla.
// Idempotente: repetir con el mismo conjunto no produce escrituras.
func (uc *TeamUseCase) ReconcileMembers(ctx context.Context, enterpriseID, teamID string, desired []string) error {
	for _, id := range desired {
		if id == "" {
			return domain.ErrInvalidInput
		}
	}
	return uc.txRunner.RunMemberReconcile(ctx, func(
		teamRepo repository.TeamRepository,
		userRepo repository.UserRepository,
	) error {
		// FOR UPDATE: serializa reconciliaciones concurrentes de la misma
		// cuadrilla dentro de la transacción.
		t, err := teamRepo.GetByIDAndEnterpriseForUpdate(ctx, teamID, enterpriseID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrParentNotFound
		}

		current, err := teamRepo.ListMemberIDs(ctx, t.ID)
		if err != nil {
			return err
		}
		plan := reconcile.Diff(current, desired)
		if plan.Empty() {
			return nil
		}

		// Solo se valida lo que entra; lo que sale no necesita seguir existiendo.
		for _, userID := range plan.ToAdd {
			u, err := userRepo.GetByID(ctx, userID)
			if err != nil {
				return err
			}
			if u == nil || !u.Role.Subordinate() ||
				u.EnterpriseID == nil || *u.EnterpriseID != enterpriseID {
				return domain.ErrChildNotFound
			}
		}
		for _, userID := range plan.ToRemove {
			if err := teamRepo.RemoveMember(ctx, t.ID, userID); err != nil {
				return err
			}
		}
		for _, userID := range plan.ToAdd {
			if err := teamRepo.AddMember(ctx, t.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

func toTeamResponse(t *entity.Team, memberIDs []string) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberIDs:   memberIDs,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
