package create_reservation

import (
	"fmt"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// validateRequest valida los datos de entrada
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.SpaceID <= 0 {
		return fmt.Errorf("%w: spaceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartSlot.IsZero() {
		return fmt.Errorf("%w: startSlot is required", ErrInvalidInput)
	}
	if req.EndSlot.IsZero() {
		return fmt.Errorf("%w: endSlot is required", ErrInvalidInput)
	}
	if err := req.StartSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startSlot format: %v", ErrInvalidInput, err)
	}
	if err := req.EndSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endSlot format: %v", ErrInvalidInput, err)
	}
	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}
	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}
	if req.AttendeesCount <= 0 {
		return fmt.Errorf("%w: attendeesCount must be positive", ErrInvalidInput)
	}
	for _, id := range req.ResourceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: resource ids must be positive", ErrInvalidInput)
		}
	}
	return nil
}
