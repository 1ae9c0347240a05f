package approval

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/psqlbuilder"
)

// Repository repositorio de decisiones de aprobación. Hay a lo más
// una decisión por reserva (UNIQUE reservation_id); Upsert la
// sobrescribe si la reserva vuelve a decidirse.
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de aprobaciones
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert inserta o reemplaza la decisión de la reserva
func (r *Repository) Upsert(ctx context.Context, a *domain.Approval) (*domain.Approval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("approvals").
		Columns("reservation_id", "approver_id", "decision", "notes", "decided_at").
		Values(a.ReservationID, a.ApproverID, a.Decision, a.Notes, a.DecidedAt).
		Suffix(`ON CONFLICT (reservation_id) DO UPDATE SET
			approver_id = EXCLUDED.approver_id,
			decision = EXCLUDED.decision,
			notes = EXCLUDED.notes,
			decided_at = EXCLUDED.decided_at`).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return a, nil
}

// GetByReservationID obtiene la decisión registrada para una reserva
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.Approval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "reservation_id", "approver_id", "decision", "notes", "decided_at",
	).
		From("approvals").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select: %v", ErrBuildQuery, err)
	}

	var a domain.Approval
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.ReservationID, &a.ApproverID, &a.Decision, &a.Notes, &a.DecidedAt)
	if err == sql.ErrNoRows {
		return nil, ErrApprovalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - scan approval: %v", ErrScanRow, err)
	}
	return &a, nil
}

// NotesByReservation retorna las notas de aprobación indexadas por
// reserva, para armar reportes sin una consulta por fila.
func (r *Repository) NotesByReservation(ctx context.Context) (map[int64]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("reservation_id", "notes").
		From("approvals").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NotesByReservation - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: NotesByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make(map[int64]string)
	for rows.Next() {
		var reservationID int64
		var notes string
		if err := rows.Scan(&reservationID, &notes); err != nil {
			return nil, fmt.Errorf("%w: NotesByReservation - scan row: %v", ErrScanRow, err)
		}
		out[reservationID] = notes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: NotesByReservation - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}
