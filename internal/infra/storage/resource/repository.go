package resource

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/psqlbuilder"
)

// Repository repositorio de recursos de apoyo (proyectores, telones, etc.)
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de recursos
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserta un nuevo recurso
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns("name", "quantity", "space_id").
		Values(res.Name, res.Quantity, res.SpaceID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return res, nil
}

// Update actualiza los datos del recurso
func (r *Repository) Update(ctx context.Context, res *domain.Resource) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("name", res.Name).
		Set("quantity", res.Quantity).
		Set("space_id", res.SpaceID).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// Delete elimina un recurso del catálogo
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// ListAll lista todos los recursos ordenados por nombre
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Resource, error) {
	return r.list(ctx, nil)
}

// ListByIDs lista los recursos cuyos identificadores se indican.
// Un ID inexistente simplemente no aparece en el resultado; el
// llamador compara largos si necesita validar existencia.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}
	return r.list(ctx, squirrel.Eq{"id": ids})
}

// ListByReservation lista los recursos solicitados en una reserva
func (r *Repository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"res.id",
		"res.name",
		"res.quantity",
		"res.space_id",
		"res.created_at",
	).
		From("resources res").
		Join("reservation_resources rr ON rr.resource_id = res.id").
		Where(squirrel.Eq{"rr.reservation_id": reservationID}).
		OrderBy("res.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanResources(rows)
}

// NamesByReservation retorna los nombres de recursos indexados por
// reserva, para armar reportes sin una consulta por fila.
func (r *Repository) NamesByReservation(ctx context.Context) (map[int64][]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rr.reservation_id", "res.name").
		From("reservation_resources rr").
		Join("resources res ON res.id = rr.resource_id").
		OrderBy("rr.reservation_id ASC", "res.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NamesByReservation - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: NamesByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var reservationID int64
		var name string
		if err := rows.Scan(&reservationID, &name); err != nil {
			return nil, fmt.Errorf("%w: NamesByReservation - scan row: %v", ErrScanRow, err)
		}
		out[reservationID] = append(out[reservationID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: NamesByReservation - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

func (r *Repository) list(ctx context.Context, where interface{}) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "quantity", "space_id", "created_at").
		From("resources").
		OrderBy("name ASC")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanResources(rows)
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanResources(rows rowsScanner) ([]*domain.Resource, error) {
	out := make([]*domain.Resource, 0)
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.Name, &res.Quantity, &res.SpaceID, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan resource: %v", ErrScanRow, err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return out, nil
}
