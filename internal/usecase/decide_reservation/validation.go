package decide_reservation

import (
	"fmt"
	"strings"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// validateRequest valida los datos de entrada
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.ApproverID <= 0 {
		return fmt.Errorf("%w: approverID must be positive", ErrInvalidInput)
	}
	if !req.Decision.IsValid() {
		return fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}
	if req.Decision == domain.DecisionReject && strings.TrimSpace(req.Notes) == "" {
		return ErrNotesRequired
	}
	return nil
}
