package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
	"github.com/soltecla/solarops-api/pkg/textutil"
)

// MaterialUseCase catálogo de materiales del tenant.
type MaterialUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(materialRepo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{materialRepo: materialRepo}
}

// Create da de alta un material.
func (uc *MaterialUseCase) Create(ctx context.Context, enterpriseID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || in.Price.Sign() < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.Material{
		ID:           uuid.New().String(),
		EnterpriseID: enterpriseID,
		Name:         in.Name,
		Unit:         in.Unit,
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.materialRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// GetByID devuelve un material del tenant.
func (uc *MaterialUseCase) GetByID(ctx context.Context, enterpriseID, id string) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(m), nil
}

// List lista el catálogo con búsqueda insensible a mayúsculas y tildes.
func (uc *MaterialUseCase) List(ctx context.Context, enterpriseID, search string, page dto.PageRequest) ([]dto.MaterialResponse, error) {
	page.DefaultPage()
	list, err := uc.materialRepo.ListByEnterprise(ctx, enterpriseID, textutil.NormalizeSearch(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

// Update edita un material.
func (uc *MaterialUseCase) Update(ctx context.Context, enterpriseID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.materialRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.Sign() < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		m.Name = in.Name
	}
	m.Unit = in.Unit
	m.Price = in.Price
	m.UpdatedAt = time.Now()
	if err := uc.materialRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Delete elimina un material del catálogo.
func (uc *MaterialUseCase) Delete(ctx context.Context, enterpriseID, id string) error {
	m, err := uc.materialRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.materialRepo.Delete(ctx, m.ID)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
