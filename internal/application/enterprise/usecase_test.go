package enterprise_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/application/enterprise"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

type ownerStore struct {
	enterprise *entity.Enterprise
	owners     map[string]bool
	users      map[string]*entity.User
	writes     int
}

type fakeEnterpriseRepo struct {
	repository.EnterpriseRepository
	s *ownerStore
}

func (f *fakeEnterpriseRepo) GetByID(_ context.Context, id string) (*entity.Enterprise, error) {
	if f.s.enterprise == nil || f.s.enterprise.ID != id {
		return nil, nil
	}
	return f.s.enterprise, nil
}

func (f *fakeEnterpriseRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Enterprise, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEnterpriseRepo) ListOwnerIDs(_ context.Context, _ string) ([]string, error) {
	var out []string
	for id := range f.s.owners {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeEnterpriseRepo) AddOwner(_ context.Context, _, userID string) error {
	f.s.owners[userID] = true
	f.s.writes++
	return nil
}

func (f *fakeEnterpriseRepo) RemoveOwner(_ context.Context, _, userID string) error {
	delete(f.s.owners, userID)
	f.s.writes++
	return nil
}

type fakeOwnerUserRepo struct {
	repository.UserRepository
	s *ownerStore
}

func (f *fakeOwnerUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.s.users[id], nil
}

type fakeOwnerTx struct{ s *ownerStore }

func (f *fakeOwnerTx) RunOwnerReconcile(_ context.Context, fn func(
	repository.EnterpriseRepository,
	repository.UserRepository,
) error) error {
	return fn(&fakeEnterpriseRepo{s: f.s}, &fakeOwnerUserRepo{s: f.s})
}

func newOwnerFixture() (*enterprise.EnterpriseUseCase, *ownerStore) {
	s := &ownerStore{
		enterprise: &entity.Enterprise{ID: "E1", Name: "Solar Norte SAS"},
		owners:     map[string]bool{"owner-1": true},
		users: map[string]*entity.User{
			"owner-1": {ID: "owner-1", Role: entity.RoleOwner},
			"owner-2": {ID: "owner-2", Role: entity.RoleOwner},
			"owner-3": {ID: "owner-3", Role: entity.RoleOwner},
			"emp-1":   {ID: "emp-1", Role: entity.RoleEmployee},
		},
	}
	uc := enterprise.NewEnterpriseUseCase(&fakeOwnerTx{s: s}, &fakeEnterpriseRepo{s: s}, &fakeOwnerUserRepo{s: s})
	return uc, s
}

func TestReconcileOwners_AltasYBajas(t *testing.T) {
	uc, s := newOwnerFixture()
	s.owners["owner-2"] = true

	applied, err := uc.ReconcileOwners(context.Background(), "E1", "owner-1", []string{"owner-3"})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"owner-1": true, "owner-3": true}, s.owners)
	assert.ElementsMatch(t, []string{"owner-1", "owner-3"}, applied)
}

// El solicitante se conserva aunque no aparezca en el conjunto deseado: una
// empresa nunca queda sin owners.
func TestReconcileOwners_ConjuntoVacioConservaAlSolicitante(t *testing.T) {
	uc, s := newOwnerFixture()
	s.owners["owner-2"] = true

	applied, err := uc.ReconcileOwners(context.Background(), "E1", "owner-1", nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"owner-1": true}, s.owners)
	assert.Equal(t, []string{"owner-1"}, applied)
}

// La respuesta expone el conjunto realmente aplicado: como el solicitante se
// inyecta siempre, el caller debe poder ver que lo aplicado difiere de lo
// enviado.
func TestReconcileOwners_RespuestaDevuelveElConjuntoAplicado(t *testing.T) {
	uc, s := newOwnerFixture()

	applied, err := uc.ReconcileOwners(context.Background(), "E1", "owner-1", []string{"owner-2"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"owner-1", "owner-2"}, applied,
		"el solicitante aparece aunque no venga en el conjunto enviado")

	// Segunda llamada idéntica: plan vacío, pero la respuesta sigue
	// reflejando el estado vigente.
	applied, err = uc.ReconcileOwners(context.Background(), "E1", "owner-1", []string{"owner-2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"owner-1", "owner-2"}, applied)
	assert.Equal(t, map[string]bool{"owner-1": true, "owner-2": true}, s.owners)
}

func TestReconcileOwners_Idempotente(t *testing.T) {
	uc, s := newOwnerFixture()
	desired := []string{"owner-1", "owner-2"}

	_, err := uc.ReconcileOwners(context.Background(), "E1", "owner-1", desired)
	require.NoError(t, err)
	writesAfterFirst := s.writes

	_, err = uc.ReconcileOwners(context.Background(), "E1", "owner-1", desired)
	require.NoError(t, err)
	assert.Equal(t, writesAfterFirst, s.writes, "mismo conjunto, cero escrituras")
}

func TestReconcileOwners_EntranteDebeSerOwner(t *testing.T) {
	uc, _ := newOwnerFixture()

	_, err := uc.ReconcileOwners(context.Background(), "E1", "owner-1", []string{"emp-1"})
	assert.ErrorIs(t, err, domain.ErrChildNotFound, "un EMPLOYEE no puede ser owner")

	_, err = uc.ReconcileOwners(context.Background(), "E1", "owner-1", []string{"nadie"})
	assert.ErrorIs(t, err, domain.ErrChildNotFound, "usuario inexistente")
}

func TestReconcileOwners_EmpresaInexistente(t *testing.T) {
	uc, _ := newOwnerFixture()
	_, err := uc.ReconcileOwners(context.Background(), "E999", "owner-1", nil)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}
