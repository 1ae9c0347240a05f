package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/psqlbuilder"
)

// userColumns columnas base con los grupos agregados desde user_groups
var userColumns = []string{
	"u.id",
	"u.username",
	"u.first_name",
	"u.last_name",
	"u.email",
	"u.is_staff",
	"u.is_active",
	"u.receive_emails",
	"COALESCE(array_agg(g.group_name) FILTER (WHERE g.group_name IS NOT NULL), '{}') AS groups",
}

// Repository repositorio de usuarios y sus grupos
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de usuarios
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID obtiene un usuario con sus grupos
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().
		Where(squirrel.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return u, nil
}

// ListStaff lista los usuarios staff activos
func (r *Repository) ListStaff(ctx context.Context) ([]*domain.User, error) {
	return r.listWhere(ctx, squirrel.Eq{"u.is_staff": true, "u.is_active": true})
}

// ListByGroup lista los usuarios activos que pertenecen al grupo.
// Un grupo desconocido retorna cero usuarios, sin error.
func (r *Repository) ListByGroup(ctx context.Context, group string) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().
		Where(squirrel.Eq{"u.is_active": true}).
		Where("u.id IN (SELECT user_id FROM user_groups WHERE group_name = ?)", group).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByGroup - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByGroup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *Repository) listWhere(ctx context.Context, where interface{}) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *Repository) baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(userColumns...).
		From("users u").
		LeftJoin("user_groups g ON g.user_id = u.id").
		GroupBy("u.id").
		OrderBy("u.username ASC")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.IsStaff,
		&u.IsActive,
		&u.ReceiveEmails,
		pq.Array(&u.Groups),
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan user: %v", ErrScanRow, err)
	}
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	out := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return out, nil
}
