package team_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltecla/solarops-api/internal/application/team"
	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

type teamStore struct {
	team    *entity.Team
	members map[string]bool
	users   map[string]*entity.User
	writes  int
}

type fakeTeamRepo struct {
	repository.TeamRepository
	s *teamStore
}

func (f *fakeTeamRepo) GetByIDAndEnterprise(_ context.Context, id, enterpriseID string) (*entity.Team, error) {
	t := f.s.team
	if t == nil || t.ID != id || t.EnterpriseID != enterpriseID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeTeamRepo) GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Team, error) {
	return f.GetByIDAndEnterprise(ctx, id, enterpriseID)
}

func (f *fakeTeamRepo) ListMemberIDs(_ context.Context, _ string) ([]string, error) {
	var out []string
	for id := range f.s.members {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeTeamRepo) AddMember(_ context.Context, _, userID string) error {
	f.s.members[userID] = true
	f.s.writes++
	return nil
}

func (f *fakeTeamRepo) RemoveMember(_ context.Context, _, userID string) error {
	delete(f.s.members, userID)
	f.s.writes++
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	s *teamStore
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.s.users[id], nil
}

type fakeMemberTx struct{ s *teamStore }

func (f *fakeMemberTx) RunMemberReconcile(_ context.Context, fn func(
	repository.TeamRepository,
	repository.UserRepository,
) error) error {
	return fn(&fakeTeamRepo{s: f.s}, &fakeUserRepo{s: f.s})
}

func strp(s string) *string { return &s }

func newTeamFixture() (*team.TeamUseCase, *teamStore) {
	e1 := "E1"
	s := &teamStore{
		team:    &entity.Team{ID: "T1", EnterpriseID: e1, Name: "Cuadrilla Norte"},
		members: map[string]bool{},
		users: map[string]*entity.User{
			"mgr-1": {ID: "mgr-1", Role: entity.RoleManager, EnterpriseID: strp(e1)},
			"emp-1": {ID: "emp-1", Role: entity.RoleEmployee, EnterpriseID: strp(e1)},
			"emp-2": {ID: "emp-2", Role: entity.RoleEmployee, EnterpriseID: strp(e1)},
			"cust":  {ID: "cust", Role: entity.RoleCustomer, EnterpriseID: strp(e1)},
			"ajeno": {ID: "ajeno", Role: entity.RoleEmployee, EnterpriseID: strp("E2")},
		},
	}
	uc := team.NewTeamUseCase(&fakeMemberTx{s: s}, &fakeTeamRepo{s: s}, &fakeUserRepo{s: s})
	return uc, s
}

func TestReconcileMembers_AltasYBajas(t *testing.T) {
	uc, s := newTeamFixture()
	s.members["emp-1"] = true
	s.members["emp-2"] = true

	err := uc.ReconcileMembers(context.Background(), "E1", "T1", []string{"emp-1", "mgr-1"})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"emp-1": true, "mgr-1": true}, s.members)
}

func TestReconcileMembers_Idempotente(t *testing.T) {
	uc, s := newTeamFixture()
	desired := []string{"emp-1", "emp-2"}

	require.NoError(t, uc.ReconcileMembers(context.Background(), "E1", "T1", desired))
	writesAfterFirst := s.writes

	require.NoError(t, uc.ReconcileMembers(context.Background(), "E1", "T1", desired))
	assert.Equal(t, writesAfterFirst, s.writes, "mismo conjunto, cero escrituras")
}

func TestReconcileMembers_ConjuntoVacioVaciaLaCuadrilla(t *testing.T) {
	uc, s := newTeamFixture()
	s.members["emp-1"] = true
	s.members["mgr-1"] = true

	require.NoError(t, uc.ReconcileMembers(context.Background(), "E1", "T1", nil))
	assert.Empty(t, s.members)
}

func TestReconcileMembers_MiembroInvalido(t *testing.T) {
	uc, _ := newTeamFixture()

	casos := map[string]string{
		"inexistente":    "nadie",
		"cliente":        "cust",
		"de otro tenant": "ajeno",
	}
	for nombre, userID := range casos {
		err := uc.ReconcileMembers(context.Background(), "E1", "T1", []string{userID})
		assert.ErrorIs(t, err, domain.ErrChildNotFound, nombre)
	}
}

func TestReconcileMembers_CuadrillaInexistente(t *testing.T) {
	uc, _ := newTeamFixture()
	err := uc.ReconcileMembers(context.Background(), "E1", "T999", []string{"emp-1"})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestReconcileMembers_CuadrillaDeOtroTenant(t *testing.T) {
	uc, _ := newTeamFixture()
	err := uc.ReconcileMembers(context.Background(), "E2", "T1", []string{"emp-1"})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}
