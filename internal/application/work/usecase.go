package work

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soltecla/solarops-api/internal/application/dto"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// WorkUseCase casos de uso de obras: CRUD, ciclo de vida, materiales,
// transacciones y reconciliación de equipos (ver reconcile_equipment.go).
type WorkUseCase struct {
	txRunner         TxRunner
	workRepo         repository.WorkRepository
	workEquipRepo    repository.WorkEquipmentRepository
	workMaterialRepo repository.WorkMaterialRepository
	transactionRepo  repository.TransactionRepository
	userRepo         repository.UserRepository
	teamRepo         repository.TeamRepository
}

// NewWorkUseCase construye el caso de uso.
func NewWorkUseCase(
	txRunner TxRunner,
	workRepo repository.WorkRepository,
	workEquipRepo repository.WorkEquipmentRepository,
	workMaterialRepo repository.WorkMaterialRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
) *WorkUseCase {
	return &WorkUseCase{
		txRunner:         txRunner,
		workRepo:         workRepo,
		workEquipRepo:    workEquipRepo,
		workMaterialRepo: workMaterialRepo,
		transactionRepo:  transactionRepo,
		userRepo:         userRepo,
		teamRepo:         teamRepo,
	}
}

// Create da de alta una obra en estado INPROGRESS. El cliente debe existir,
// tener rol CUSTOMER y pertenecer al tenant.
func (uc *WorkUseCase) Create(ctx context.Context, enterpriseID string, in dto.CreateWorkRequest) (*dto.WorkResponse, error) {
	if in.Title == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.userRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != entity.RoleCustomer ||
		customer.EnterpriseID == nil || *customer.EnterpriseID != enterpriseID {
		return nil, domain.ErrChildNotFound
	}

	var teamID *string
	if in.TeamID != "" {
		team, err := uc.teamRepo.GetByIDAndEnterprise(ctx, in.TeamID, enterpriseID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, domain.ErrChildNotFound
		}
		teamID = &in.TeamID
	}

	now := time.Now()
	w := &entity.Work{
		ID:           uuid.New().String(),
		EnterpriseID: enterpriseID,
		CustomerID:   in.CustomerID,
		TeamID:       teamID,
		Title:        in.Title,
		Description:  in.Description,
		Address:      in.Address,
		Status:       entity.WorkInProgress,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.workRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, w, false)
}

// GetByID devuelve la obra con equipos, materiales y transacciones.
func (uc *WorkUseCase) GetByID(ctx context.Context, enterpriseID, workID string) (*dto.WorkResponse, error) {
	w, err := uc.workRepo.GetByIDAndEnterprise(ctx, workID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, w, true)
}

// List lista las obras del tenant, opcionalmente filtradas por estado.
func (uc *WorkUseCase) List(ctx context.Context, enterpriseID string, status entity.WorkStatus, limit, offset int) ([]dto.WorkResponse, error) {
	works, err := uc.workRepo.ListByEnterprise(ctx, enterpriseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkResponse, 0, len(works))
	for _, w := range works {
		resp, err := uc.toResponse(ctx, w, false)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Update edita datos generales. Solo mientras la obra está INPROGRESS.
func (uc *WorkUseCase) Update(ctx context.Context, enterpriseID, workID string, in dto.UpdateWorkRequest) (*dto.WorkResponse, error) {
	w, err := uc.editableWork(ctx, enterpriseID, workID)
	if err != nil {
		return nil, err
	}
	if in.Title != "" {
		w.Title = in.Title
	}
	w.Description = in.Description
	w.Address = in.Address
	if in.TeamID != "" {
		team, err := uc.teamRepo.GetByIDAndEnterprise(ctx, in.TeamID, enterpriseID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, domain.ErrChildNotFound
		}
		w.TeamID = &in.TeamID
	}
	w.UpdatedAt = time.Now()
	if err := uc.workRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, w, false)
}

// Finish marca la obra como COMPLETED. Transición terminal: después de esto
// no se admiten más mutaciones de listas ni finanzas.
func (uc *WorkUseCase) Finish(ctx context.Context, enterpriseID, workID string) error {
	return uc.transition(ctx, enterpriseID, workID, entity.WorkCompleted)
}

// Cancel marca la obra como CANCELLED (terminal).
func (uc *WorkUseCase) Cancel(ctx context.Context, enterpriseID, workID string) error {
	return uc.transition(ctx, enterpriseID, workID, entity.WorkCancelled)
}

func (uc *WorkUseCase) transition(ctx context.Context, enterpriseID, workID string, to entity.WorkStatus) error {
	w, err := uc.editableWork(ctx, enterpriseID, workID)
	if err != nil {
		return err
	}
	return uc.workRepo.UpdateStatus(ctx, w.ID, to)
}

// AddMaterial registra un material consumido (snapshot de precio propio).
func (uc *WorkUseCase) AddMaterial(ctx context.Context, enterpriseID, workID string, in dto.AddWorkMaterialRequest) (*dto.WorkMaterialResponse, error) {
	if in.Name == "" || in.Quantity.Sign() <= 0 || in.Amount.Sign() < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.editableWork(ctx, enterpriseID, workID); err != nil {
		return nil, err
	}
	wm := &entity.WorkMaterial{
		ID:        uuid.New().String(),
		WorkID:    workID,
		Name:      in.Name,
		Unit:      in.Unit,
		Amount:    in.Amount,
		Quantity:  in.Quantity,
		CreatedAt: time.Now(),
	}
	if err := uc.workMaterialRepo.Create(ctx, wm); err != nil {
		return nil, err
	}
	return &dto.WorkMaterialResponse{ID: wm.ID, Name: wm.Name, Unit: wm.Unit, Amount: wm.Amount, Quantity: wm.Quantity}, nil
}

// RemoveMaterial elimina un material de la obra (solo INPROGRESS).
func (uc *WorkUseCase) RemoveMaterial(ctx context.Context, enterpriseID, workID, materialID string) error {
	if _, err := uc.editableWork(ctx, enterpriseID, workID); err != nil {
		return err
	}
	wm, err := uc.workMaterialRepo.GetByIDAndWork(ctx, materialID, workID)
	if err != nil {
		return err
	}
	if wm == nil {
		return domain.ErrNotFound
	}
	return uc.workMaterialRepo.Delete(ctx, wm.ID)
}

// AddTransaction registra un movimiento financiero (solo INPROGRESS).
func (uc *WorkUseCase) AddTransaction(ctx context.Context, enterpriseID, workID string, in dto.AddTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		date = time.Now()
	}
	if _, err := uc.editableWork(ctx, enterpriseID, workID); err != nil {
		return nil, err
	}
	t := &entity.Transaction{
		ID:           uuid.New().String(),
		EnterpriseID: enterpriseID,
		WorkID:       workID,
		Description:  in.Description,
		Amount:       in.Amount,
		Date:         date,
		CreatedAt:    time.Now(),
	}
	if err := uc.transactionRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return &dto.TransactionResponse{ID: t.ID, Description: t.Description, Amount: t.Amount, Date: t.Date}, nil
}

// RemoveTransaction elimina un movimiento financiero (solo INPROGRESS).
func (uc *WorkUseCase) RemoveTransaction(ctx context.Context, enterpriseID, workID, transactionID string) error {
	if _, err := uc.editableWork(ctx, enterpriseID, workID); err != nil {
		return err
	}
	t, err := uc.transactionRepo.GetByIDAndWork(ctx, transactionID, workID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.transactionRepo.Delete(ctx, t.ID)
}

// editableWork carga la obra acotada al tenant y exige estado INPROGRESS.
func (uc *WorkUseCase) editableWork(ctx context.Context, enterpriseID, workID string) (*entity.Work, error) {
	w, err := uc.workRepo.GetByIDAndEnterprise(ctx, workID, enterpriseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrParentNotFound
	}
	if !w.Editable() {
		return nil, domain.ErrWorkNotEditable
	}
	return w, nil
}

func (uc *WorkUseCase) toResponse(ctx context.Context, w *entity.Work, full bool) (*dto.WorkResponse, error) {
	resp := &dto.WorkResponse{
		ID:          w.ID,
		CustomerID:  w.CustomerID,
		TeamID:      w.TeamID,
		Title:       w.Title,
		Description: w.Description,
		Address:     w.Address,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if !full {
		return resp, nil
	}
	equips, err := uc.workEquipRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	for _, we := range equips {
		resp.Equipments = append(resp.Equipments, dto.WorkEquipmentItem{EquipmentID: we.EquipmentID, Quantity: we.Quantity})
	}
	materials, err := uc.workMaterialRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	for _, wm := range materials {
		resp.Materials = append(resp.Materials, dto.WorkMaterialResponse{
			ID: wm.ID, Name: wm.Name, Unit: wm.Unit, Amount: wm.Amount, Quantity: wm.Quantity,
		})
	}
	txs, err := uc.transactionRepo.ListByWork(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
			ID: t.ID, Description: t.Description, Amount: t.Amount, Date: t.Date,
		})
	}
	return resp, nil
}
