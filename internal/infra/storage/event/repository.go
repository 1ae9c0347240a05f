package event

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

// Repository repositorio de eventos institucionales, sus bloques de
// espacio y órdenes de trabajo.
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de eventos
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserta el evento junto con sus bloques de espacio y órdenes
// de trabajo. Se espera que el llamador lo envuelva en una transacción.
func (r *Repository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"title",
			"event_type",
			"organizer_id",
			"sede",
			"expected_attendance",
			"visibility",
			"requires_registration",
			"notes",
			"status",
		).
		Values(
			e.Title,
			e.Type,
			e.OrganizerID,
			e.Sede,
			e.ExpectedAttendance,
			e.Visibility,
			e.RequiresRegistration,
			e.Notes,
			e.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	e.CreatedAt = createdAt.Time

	for i := range e.Blocks {
		block := &e.Blocks[i]
		block.EventID = e.ID

		q, a, err := psqlbuilder.Insert("event_spaces").
			Columns("event_id", "space_id", "start_at", "end_at", "setup", "buffer_before_min", "buffer_after_min").
			Values(block.EventID, block.SpaceID, block.StartAt, block.EndAt, block.Setup, block.BufferBeforeMin, block.BufferAfterMin).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build block insert: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, q, a...).Scan(&block.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert block: %v", ErrExecQuery, err)
		}
	}

	for i := range e.Services {
		svc := &e.Services[i]
		svc.EventID = e.ID

		q, a, err := psqlbuilder.Insert("event_service_requests").
			Columns("event_id", "area", "detail", "due_at", "status", "assigned_to").
			Values(svc.EventID, svc.Area, svc.Detail, svc.DueAt, svc.Status, svc.AssignedTo).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build service insert: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, q, a...).Scan(&svc.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert service request: %v", ErrExecQuery, err)
		}
	}

	return e, nil
}

// GetByID obtiene el evento con sus bloques y órdenes de trabajo
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "title", "event_type", "organizer_id", "sede",
		"expected_attendance", "visibility", "requires_registration",
		"notes", "status", "created_at",
	).
		From("events").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select: %v", ErrBuildQuery, err)
	}

	var e domain.Event
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Type, &e.OrganizerID, &e.Sede,
		&e.ExpectedAttendance, &e.Visibility, &e.RequiresRegistration,
		&e.Notes, &e.Status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}
	e.CreatedAt = createdAt.Time

	if e.Blocks, err = r.listBlocks(ctx, executor, squirrel.Eq{"es.event_id": e.ID}); err != nil {
		return nil, err
	}
	if e.Services, err = r.listServices(ctx, executor, e.ID); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByStatus lista eventos por estado, más recientes primero.
// Sin estado lista todos.
func (r *Repository) ListByStatus(ctx context.Context, status *domain.EventStatus) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "title", "event_type", "organizer_id", "sede",
		"expected_attendance", "visibility", "requires_registration",
		"notes", "status", "created_at",
	).
		From("events").
		OrderBy("created_at DESC")
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.Event, 0)
	for rows.Next() {
		var e domain.Event
		var createdAt sql.NullTime
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Type, &e.OrganizerID, &e.Sede,
			&e.ExpectedAttendance, &e.Visibility, &e.RequiresRegistration,
			&e.Notes, &e.Status, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByStatus - scan row: %v", ErrScanRow, err)
		}
		e.CreatedAt = createdAt.Time
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

// ListActiveBlocksOverlapping retorna los bloques de eventos activos
// (PEND, APPR, PUB) del espacio cuya ventana bloqueada, buffers
// incluidos, se cruza con [start, end). Dentro de una transacción
// agrega FOR UPDATE sobre las filas de bloque.
func (r *Repository) ListActiveBlocksOverlapping(ctx context.Context, spaceID int64, start, end time.Time, excludeEventID *int64) ([]domain.EventSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := []string{
		string(domain.EventPending),
		string(domain.EventApproved),
		string(domain.EventPublished),
	}

	selectBuilder := psqlbuilder.Select(
		"es.id",
		"es.event_id",
		"es.space_id",
		"es.start_at",
		"es.end_at",
		"es.setup",
		"es.buffer_before_min",
		"es.buffer_after_min",
		"s.name AS space_name",
	).
		From("event_spaces es").
		Join("events e ON e.id = es.event_id").
		Join("spaces s ON s.id = es.space_id").
		Where(squirrel.Eq{"es.space_id": spaceID}).
		Where(squirrel.Eq{"e.status": statuses}).
		Where("es.start_at - (es.buffer_before_min * interval '1 minute') < ?", end).
		Where("es.end_at + (es.buffer_after_min * interval '1 minute') > ?", start).
		OrderBy("es.start_at ASC")

	if excludeEventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"es.event_id": *excludeEventID})
	}
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF es")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBlocksOverlapping - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBlocksOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// UpdateStatus actualiza el estado del evento
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
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
		return ErrEventNotFound
	}
	return nil
}

// AppendApproval agrega un registro al historial de decisiones del evento
func (r *Repository) AppendApproval(ctx context.Context, a *domain.EventApproval) (*domain.EventApproval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_approvals").
		Columns("event_id", "approver_id", "decision", "notes", "decided_at").
		Values(a.EventID, a.ApproverID, a.Decision, a.Notes, a.DecidedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AppendApproval - build insert: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("%w: AppendApproval - execute insert: %v", ErrExecQuery, err)
	}
	return a, nil
}

// ListApprovals historial de decisiones del evento, en orden cronológico
func (r *Repository) ListApprovals(ctx context.Context, eventID int64) ([]*domain.EventApproval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_id", "approver_id", "decision", "notes", "decided_at").
		From("event_approvals").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("decided_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovals - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.EventApproval, 0)
	for rows.Next() {
		var a domain.EventApproval
		if err := rows.Scan(&a.ID, &a.EventID, &a.ApproverID, &a.Decision, &a.Notes, &a.DecidedAt); err != nil {
			return nil, fmt.Errorf("%w: ListApprovals - scan row: %v", ErrScanRow, err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovals - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

// UpdateServiceRequestStatus actualiza el estado de una orden de trabajo
// y opcionalmente su responsable.
func (r *Repository) UpdateServiceRequestStatus(ctx context.Context, id int64, status domain.ServiceStatus, assignedTo *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("event_service_requests").
		Set("status", status).
		Where(squirrel.Eq{"id": id})
	if assignedTo != nil {
		updateBuilder = updateBuilder.Set("assigned_to", *assignedTo)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceRequestStatus - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceRequestStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceRequestStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrServiceRequestNotFound
	}
	return nil
}

func (r *Repository) listBlocks(ctx context.Context, executor DBExecutor, where interface{}) ([]domain.EventSpace, error) {
	query, args, err := psqlbuilder.Select(
		"es.id",
		"es.event_id",
		"es.space_id",
		"es.start_at",
		"es.end_at",
		"es.setup",
		"es.buffer_before_min",
		"es.buffer_after_min",
		"s.name AS space_name",
	).
		From("event_spaces es").
		Join("spaces s ON s.id = es.space_id").
		Where(where).
		OrderBy("es.start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

func (r *Repository) listServices(ctx context.Context, executor DBExecutor, eventID int64) ([]domain.EventServiceRequest, error) {
	query, args, err := psqlbuilder.Select("id", "event_id", "area", "detail", "due_at", "status", "assigned_to").
		From("event_service_requests").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listServices - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]domain.EventServiceRequest, 0)
	for rows.Next() {
		var svc domain.EventServiceRequest
		if err := rows.Scan(&svc.ID, &svc.EventID, &svc.Area, &svc.Detail, &svc.DueAt, &svc.Status, &svc.AssignedTo); err != nil {
			return nil, fmt.Errorf("%w: listServices - scan row: %v", ErrScanRow, err)
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listServices - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

func scanBlocks(rows *sql.Rows) ([]domain.EventSpace, error) {
	out := make([]domain.EventSpace, 0)
	for rows.Next() {
		var b domain.EventSpace
		if err := rows.Scan(
			&b.ID, &b.EventID, &b.SpaceID, &b.StartAt, &b.EndAt,
			&b.Setup, &b.BufferBeforeMin, &b.BufferAfterMin, &b.SpaceName,
		); err != nil {
			return nil, fmt.Errorf("%w: scan block: %v", ErrScanRow, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return out, nil
}
