package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/application/access"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (solo los métodos que usa el resolver)
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

type fakeEnterpriseRepo struct {
	repository.EnterpriseRepository
	enterprises map[string]*entity.Enterprise
	owners      map[string]map[string]bool // enterpriseID -> userID -> miembro
}

func (f *fakeEnterpriseRepo) GetByID(_ context.Context, id string) (*entity.Enterprise, error) {
	return f.enterprises[id], nil
}

func (f *fakeEnterpriseRepo) OwnerExists(_ context.Context, enterpriseID, userID string) (bool, error) {
	return f.owners[enterpriseID][userID], nil
}

func strPtr(s string) *string { return &s }

// buildResolver arma un escenario base: OWNER dueño de E1, MANAGER y EMPLOYEE
// subordinados a ese OWNER y adscritos a E1, y una empresa ajena E2.
func buildResolver() *access.Resolver {
	users := map[string]*entity.User{
		"owner-1": {ID: "owner-1", Role: entity.RoleOwner, Active: true},
		"manager-1": {
			ID: "manager-1", Role: entity.RoleManager, Active: true,
			OwnerID: strPtr("owner-1"), EnterpriseID: strPtr("E1"),
		},
		"employee-1": {
			ID: "employee-1", Role: entity.RoleEmployee, Active: true,
			OwnerID: strPtr("owner-1"), EnterpriseID: strPtr("E1"),
		},
		"blocked-1": {ID: "blocked-1", Role: entity.RoleOwner, Active: false},
		"admin-1":   {ID: "admin-1", Role: entity.RoleAdministrator, Active: true},
		"orphan-1": { // MANAGER sin owner_id: dato corrupto, debe negarse
			ID: "orphan-1", Role: entity.RoleManager, Active: true,
			EnterpriseID: strPtr("E1"),
		},
	}
	enterprises := map[string]*entity.Enterprise{
		"E1": {ID: "E1", Name: "Solar Andina", Active: true},
		"E2": {ID: "E2", Name: "Otra Empresa", Active: true},
	}
	owners := map[string]map[string]bool{
		"E1": {"owner-1": true},
		"E2": {"otro-owner": true},
	}
	return access.NewResolver(
		&fakeUserRepo{users: users},
		&fakeEnterpriseRepo{enterprises: enterprises, owners: owners},
	)
}

var staffRoles = []entity.Role{entity.RoleOwner, entity.RoleManager, entity.RoleEmployee}

// ──────────────────────────────────────────────────────────────────────────────
// Identidad y rol
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_SinSujeto_NoAutenticado(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{EnterpriseID: "E1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolve_UsuarioInexistente(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "nadie", EnterpriseID: "E1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolve_UsuarioBloqueado(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "blocked-1", EnterpriseID: "E1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestResolve_RolFueraDeAllowList(t *testing.T) {
	r := buildResolver()
	// Operación solo para OWNER: un EMPLOYEE debe recibir el error de rol,
	// que SÍ se distingue del genérico de autorización.
	_, err := r.Resolve(context.Background(), access.Input{
		UserID: "employee-1", EnterpriseID: "E1",
		Allowed: []entity.Role{entity.RoleOwner},
	})
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Owner efectivo
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_OwnerEfectivo_EsElPropioOwner(t *testing.T) {
	r := buildResolver()
	grant, err := r.Resolve(context.Background(), access.Input{UserID: "owner-1", EnterpriseID: "E1", Allowed: staffRoles})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", grant.EffectiveOwnerID)
	require.NotNil(t, grant.Enterprise)
	assert.Equal(t, "E1", grant.Enterprise.ID)
}

func TestResolve_OwnerEfectivo_DeSubordinadoEsSuOwner(t *testing.T) {
	r := buildResolver()
	for _, userID := range []string{"manager-1", "employee-1"} {
		grant, err := r.Resolve(context.Background(), access.Input{UserID: userID, EnterpriseID: "E1", Allowed: staffRoles})
		require.NoError(t, err, userID)
		assert.Equal(t, "owner-1", grant.EffectiveOwnerID,
			"el owner efectivo de %s debe ser su OWNER gobernante", userID)
	}
}

func TestResolve_ManagerSinOwnerID_Denegado(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "orphan-1", EnterpriseID: "E1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrEnterpriseNotAllowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tenant
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: OWNER dueño solo de E1 reclama E2.
func TestResolve_OwnerReclamaEmpresaAjena_Denegado(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "owner-1", EnterpriseID: "E2", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrEnterpriseNotAllowed)
}

func TestResolve_EmpresaInexistente_MismoErrorGenerico(t *testing.T) {
	r := buildResolver()
	// Empresa que no existe y empresa ajena deben ser indistinguibles.
	_, errMissing := r.Resolve(context.Background(), access.Input{UserID: "owner-1", EnterpriseID: "E999", Allowed: staffRoles})
	_, errForeign := r.Resolve(context.Background(), access.Input{UserID: "owner-1", EnterpriseID: "E2", Allowed: staffRoles})
	assert.ErrorIs(t, errMissing, domain.ErrEnterpriseNotAllowed)
	assert.ErrorIs(t, errForeign, domain.ErrEnterpriseNotAllowed)
}

func TestResolve_SubordinadoConClaimDeOtraEmpresa_Denegado(t *testing.T) {
	r := buildResolver()
	// manager-1 está adscrito a E1; aunque su owner fuera dueño de E2, el
	// claim debe coincidir con enterprise_belong_id.
	_, err := r.Resolve(context.Background(), access.Input{UserID: "manager-1", EnterpriseID: "E2", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrEnterpriseNotAllowed)
}

func TestResolve_SinClaimDeEmpresa_Denegado(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "owner-1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrEnterpriseNotAllowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// ADMINISTRATOR
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_AdministradorSaltaTenant(t *testing.T) {
	r := buildResolver()
	grant, err := r.Resolve(context.Background(), access.Input{
		UserID:  "admin-1",
		Allowed: []entity.Role{entity.RoleAdministrator},
	})
	require.NoError(t, err)
	assert.Nil(t, grant.Enterprise, "ADMINISTRATOR opera a nivel plataforma, sin tenant")
	assert.Empty(t, grant.EffectiveOwnerID)
}

func TestResolve_AdministradorFueraDeSuAllowList(t *testing.T) {
	r := buildResolver()
	_, err := r.Resolve(context.Background(), access.Input{UserID: "admin-1", EnterpriseID: "E1", Allowed: staffRoles})
	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed,
		"las operaciones de empresa no incluyen ADMINISTRATOR en su allow-list")
}
