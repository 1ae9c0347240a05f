package export_reservations

import "context"

type ReportsService interface {
	ExportReservationsCSV(ctx context.Context, requesterID int64, sep string) (string, error)
	FileName() string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
