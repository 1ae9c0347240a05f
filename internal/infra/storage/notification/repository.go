package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/psqlbuilder"
)

// Repository repositorio de notificaciones internas
type Repository struct {
	db DBExecutor
}

// NewRepository crea una nueva instancia del repositorio de notificaciones
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserta una notificación por destinatario en un solo INSERT
func (r *Repository) CreateBatch(ctx context.Context, userIDs []int64, message string) error {
	if len(userIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("notifications").
		Columns("user_id", "message")
	for _, userID := range userIDs {
		insertBuilder = insertBuilder.Values(userID, message)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ListByUser lista las notificaciones del usuario, más recientes primero
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}
	return out, nil
}

// MarkAllRead marca como leídas todas las notificaciones del usuario
// y retorna cuántas cambiaron.
func (r *Repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - build update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkAllRead - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
