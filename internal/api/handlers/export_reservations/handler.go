package export_reservations

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	reportsService "github.com/lxo898/reservas-inacap/internal/service/reports"
)

const (
	msgAccessDenied     = "no tienes permisos para exportar reportes"
	msgInvalidSeparator = "separador inválido, se espera semicolon, comma o tab"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reportes/reservas.csv?sep=semicolon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	sep := r.URL.Query().Get("sep")

	csv, err := h.service.ExportReservationsCSV(r.Context(), userID, sep)
	if err != nil {
		switch {
		case errors.Is(err, reportsService.ErrAccessDenied):
			h.logger.Warn("GET /reportes/reservas.csv - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reportsService.ErrInvalidSeparator):
			handlers.RespondBadRequest(w, msgInvalidSeparator)

		default:
			h.logger.Error("GET /reportes/reservas.csv - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reportes/reservas.csv - Exported by user_id=%d", userID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.FileName()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
