package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.EnterpriseRepository = (*EnterpriseRepo)(nil)

const enterpriseColumns = `id, name, document, email, phone, address, active, created_at, updated_at`

// EnterpriseRepo implementación del puerto EnterpriseRepository sobre
// PostgreSQL (usable con pool o tx).
type EnterpriseRepo struct {
	q Querier
}

// NewEnterpriseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEnterpriseRepository(q Querier) *EnterpriseRepo {
	return &EnterpriseRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *EnterpriseRepo) Create(ctx context.Context, e *entity.Enterprise) error {
	query := `
		INSERT INTO enterprises (` + enterpriseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Document, e.Email, e.Phone, e.Address, e.Active, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert enterprise: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *EnterpriseRepo) GetByID(ctx context.Context, id string) (*entity.Enterprise, error) {
	query := `SELECT ` + enterpriseColumns + ` FROM enterprises WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate obtiene la empresa y bloquea la fila (SELECT FOR UPDATE):
// serializa reconciliaciones concurrentes del conjunto de owners.
func (r *EnterpriseRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Enterprise, error) {
	query := `SELECT ` + enterpriseColumns + ` FROM enterprises WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *EnterpriseRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Enterprise, error) {
	var e entity.Enterprise
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.Name, &e.Document, &e.Email, &e.Phone, &e.Address, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enterprise by id: %w", err)
	}
	return &e, nil
}

// Update actualiza los datos de una empresa.
func (r *EnterpriseRepo) Update(ctx context.Context, e *entity.Enterprise) error {
	query := `
		UPDATE enterprises
		SET name = $2, document = $3, email = $4, phone = $5, address = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Document, e.Email, e.Phone, e.Address, e.Active, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update enterprise: %w", err)
	}
	return nil
}

// ListByOwner lista las empresas donde el usuario figura en enterprise_owners.
func (r *EnterpriseRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Enterprise, error) {
	query := `
		SELECT e.id, e.name, e.document, e.email, e.phone, e.address, e.active, e.created_at, e.updated_at
		FROM enterprises e
		JOIN enterprise_owners eo ON eo.enterprise_id = e.id
		WHERE eo.user_id = $1
		ORDER BY e.created_at`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list enterprises by owner: %w", err)
	}
	return r.scanAll(rows)
}

// ListAll listado de plataforma con paginación.
func (r *EnterpriseRepo) ListAll(ctx context.Context, limit, offset int) ([]*entity.Enterprise, error) {
	query := `SELECT ` + enterpriseColumns + ` FROM enterprises ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all enterprises: %w", err)
	}
	return r.scanAll(rows)
}

// OwnerExists verifica la membresía (enterprise_id, user_id) en enterprise_owners.
func (r *EnterpriseRepo) OwnerExists(ctx context.Context, enterpriseID, userID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enterprise_owners WHERE enterprise_id = $1 AND user_id = $2)`,
		enterpriseID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("owner exists: %w", err)
	}
	return exists, nil
}

// ListOwnerIDs devuelve los user_id de los owners de la empresa.
func (r *EnterpriseRepo) ListOwnerIDs(ctx context.Context, enterpriseID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT user_id FROM enterprise_owners WHERE enterprise_id = $1 ORDER BY user_id`, enterpriseID)
	if err != nil {
		return nil, fmt.Errorf("list owner ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddOwner inserta la fila de ownership. Un user_id inexistente viola la FK.
func (r *EnterpriseRepo) AddOwner(ctx context.Context, enterpriseID, userID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO enterprise_owners (enterprise_id, user_id, created_at) VALUES ($1, $2, now())`,
		enterpriseID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("add owner: %w", err)
	}
	return nil
}

// RemoveOwner elimina la fila de ownership.
func (r *EnterpriseRepo) RemoveOwner(ctx context.Context, enterpriseID, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM enterprise_owners WHERE enterprise_id = $1 AND user_id = $2`,
		enterpriseID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove owner: %w", err)
	}
	return nil
}

func (r *EnterpriseRepo) scanAll(rows pgx.Rows) ([]*entity.Enterprise, error) {
	defer rows.Close()
	var list []*entity.Enterprise
	for rows.Next() {
		var e entity.Enterprise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Document, &e.Email, &e.Phone, &e.Address, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan enterprise: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
