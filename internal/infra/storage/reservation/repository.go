package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/psqlbuilder"
)

// reservationColumns columnas base con los denormalizados de espacio y usuario
var reservationColumns = []string{
	"r.id",
	"r.user_id",
	"r.space_id",
	"r.start_at",
	"r.end_at",
	"r.purpose",
	"r.attendees_count",
	"r.status",
	"r.resource_notes",
	"r.cancel_reason",
	"r.created_at",
	"s.name AS space_name",
	"u.username",
	"COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username) AS user_full_name",
}

// Repository repositorio de reservas
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de reservas
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserta la reserva (estado inicial PEND) junto con los
// recursos solicitados. Si el contexto lleva una transacción activa
// la usa; el caso normal es dentro de la transacción serializable
// del usecase de creación, para que el chequeo de conflicto y el
// insert sean una sola unidad.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"space_id",
			"start_at",
			"end_at",
			"purpose",
			"attendees_count",
			"status",
			"resource_notes",
		).
		Values(
			res.UserID,
			res.SpaceID,
			res.StartAt,
			res.EndAt,
			res.Purpose,
			res.AttendeesCount,
			res.Status,
			res.ResourceNotes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.Time

	for _, resourceID := range res.ResourceIDs {
		q, a, err := psqlbuilder.Insert("reservation_resources").
			Columns("reservation_id", "resource_id").
			Values(res.ID, resourceID).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build resource insert: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, q, a...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert resource link: %v", ErrExecQuery, err)
		}
	}

	return res, nil
}

// GetByID obtiene una reserva con sus denormalizados y recursos
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("spaces s ON s.id = r.space_id").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	res, err := r.scanOne(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	if err := r.loadResourceIDs(ctx, executor, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListActiveOverlapping retorna las reservas activas (PEND, APPR) del
// espacio que se cruzan con [start, end). Predicado semiabierto:
// start_at < end AND end_at > start, de modo que reservas espalda con
// espalda no chocan. Con onlyApproved solo considera APROBADAS (chequeo
// al momento de aprobar). Dentro de una transacción agrega FOR UPDATE
// para bloquear las filas y cerrar la ventana check-then-act.
func (r *Repository) ListActiveOverlapping(
	ctx context.Context,
	spaceID int64,
	start, end time.Time,
	excludeID *int64,
	onlyApproved bool,
) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := []string{string(domain.StatusPending), string(domain.StatusApproved)}
	if onlyApproved {
		statuses = []string{string(domain.StatusApproved)}
	}

	selectBuilder := psqlbuilder.Select(
		"r.id",
		"r.user_id",
		"r.space_id",
		"r.start_at",
		"r.end_at",
		"r.status",
	).
		From("reservations r").
		Where(squirrel.Eq{"r.space_id": spaceID}).
		Where(squirrel.Eq{"r.status": statuses}).
		Where(squirrel.Lt{"r.start_at": end}).
		Where(squirrel.Gt{"r.end_at": start}).
		OrderBy("r.start_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"r.id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.SpaceID, &res.StartAt, &res.EndAt, &res.Status); err != nil {
			return nil, fmt.Errorf("%w: ListActiveOverlapping - scan row: %v", ErrScanRow, err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveOverlapping - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

// ListWithFilter lista reservas con filtros opcionales.
// Orden: historial por inicio descendente.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("spaces s ON s.id = r.space_id").
		Join("users u ON u.id = r.user_id")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.SpaceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.space_id": *filter.SpaceID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	} else if filter.OnlyActive {
		statuses := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": statuses})
	}

	selectBuilder = selectBuilder.OrderBy("r.start_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// ListAllByStart todas las reservas ordenadas por inicio ascendente (reportes)
func (r *Repository) ListAllByStart(ctx context.Context) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("spaces s ON s.id = r.space_id").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllByStart - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAllByStart - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

// UpdateStatus actualiza el estado de la reserva
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// Cancel marca la reserva como CANC guardando el motivo
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCanceled).
		Set("cancel_reason", reason).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *Repository) loadResourceIDs(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	query, args, err := psqlbuilder.Select("resource_id").
		From("reservation_resources").
		Where(squirrel.Eq{"reservation_id": res.ID}).
		OrderBy("resource_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadResourceIDs - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadResourceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("%w: loadResourceIDs - scan row: %v", ErrScanRow, err)
		}
		res.ResourceIDs = append(res.ResourceIDs, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadResourceIDs - rows error: %v", ErrScanRow, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanOne(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.SpaceID,
		&res.StartAt,
		&res.EndAt,
		&res.Purpose,
		&res.AttendeesCount,
		&res.Status,
		&res.ResourceNotes,
		&res.CancelReason,
		&createdAt,
		&res.SpaceName,
		&res.UserName,
		&res.UserFullName,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
	}

	res.CreatedAt = createdAt.Time
	return &res, nil
}

func (r *Repository) scanMany(rows *sql.Rows) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return out, nil
}
