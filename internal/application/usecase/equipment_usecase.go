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

// EquipmentUseCase catálogo de equipos del tenant.
type EquipmentUseCase struct {
	equipmentRepo repository.EquipmentRepository
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(equipmentRepo repository.EquipmentRepository) *EquipmentUseCase {
	return &EquipmentUseCase{equipmentRepo: equipmentRepo}
}

// Create da de alta un equipo. Sales arranca en cero y solo lo mueve la
// reconciliación de obras.
func (uc *EquipmentUseCase) Create(ctx context.Context, enterpriseID string, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if in.Name == "" || in.Price.Sign() < 0 || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	e := &entity.Equipment{
		ID:           uuid.New().String(),
		EnterpriseID: enterpriseID,
		Name:         in.Name,
		Brand:        in.Brand,
		Model:        in.Model,
		Price:        in.Price,
		Quantity:     in.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.equipmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEquipmentResponse(e), nil
}

// GetByID devuelve un equipo del tenant.
func (uc *EquipmentUseCase) GetByID(ctx context.Context, enterpriseID, id string) (*dto.EquipmentResponse, error) {
	e, err := uc.equipmentRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEquipmentResponse(e), nil
}

// List lista el catálogo con búsqueda insensible a mayúsculas y tildes.
func (uc *EquipmentUseCase) List(ctx context.Context, enterpriseID, search string, page dto.PageRequest) ([]dto.EquipmentResponse, error) {
	page.DefaultPage()
	list, err := uc.equipmentRepo.ListByEnterprise(ctx, enterpriseID, textutil.NormalizeSearch(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEquipmentResponse(e))
	}
	return out, nil
}

// Update edita un equipo. El contador sales no se toca por esta vía.
func (uc *EquipmentUseCase) Update(ctx context.Context, enterpriseID, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := uc.equipmentRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.Sign() < 0 || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		e.Name = in.Name
	}
	e.Brand = in.Brand
	e.Model = in.Model
	e.Price = in.Price
	e.Quantity = in.Quantity
	e.UpdatedAt = time.Now()
	if err := uc.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEquipmentResponse(e), nil
}

// Delete elimina un equipo del catálogo. Si obras vigentes lo referencian,
// la FK lo impide y el repositorio devuelve ErrChildNotFound.
func (uc *EquipmentUseCase) Delete(ctx context.Context, enterpriseID, id string) error {
	e, err := uc.equipmentRepo.GetByIDAndEnterprise(ctx, id, enterpriseID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.equipmentRepo.Delete(ctx, e.ID)
}

func toEquipmentResponse(e *entity.Equipment) *dto.EquipmentResponse {
	return &dto.EquipmentResponse{
		ID:        e.ID,
		Name:      e.Name,
		Brand:     e.Brand,
		Model:     e.Model,
		Price:     e.Price,
		Quantity:  e.Quantity,
		Sales:     e.Sales,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
