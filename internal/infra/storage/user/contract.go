package user

import "github.com/lxo898/reservas-inacap/pkg/dbmetrics"

// Reutilizamos las interfaces de dbmetrics para trabajar con la BD
type DBExecutor = dbmetrics.DBExecutor
