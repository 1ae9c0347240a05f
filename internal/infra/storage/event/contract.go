package event

import (
	"context"
	"database/sql"

	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
)

// Reutilizamos las interfaces de dbmetrics para trabajar con la BD
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner origen de transacciones (admite *sql.DB y *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}
