package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/lxo898/reservas-inacap/pkg/types"
)

var (
	// ErrInvalidSlotGrid se retorna cuando la configuración de la grilla es inválida
	ErrInvalidSlotGrid = errors.New("domain: invalid slot grid configuration")

	// ErrSlotNotInGrid se retorna cuando un bloque no pertenece a la grilla del día
	ErrSlotNotInGrid = errors.New("domain: slot label not in day grid")

	// ErrSlotOrder se retorna cuando el bloque de término no es posterior al de inicio
	ErrSlotOrder = errors.New("domain: end slot must be after start slot")
)

// SlotGrid grilla fija de bloques horarios del día. Inmutable tras
// su construcción; se crea una vez desde la configuración.
type SlotGrid struct {
	intervalMin int
	labels      []types.TimeString
	index       map[types.TimeString]int
}

// NewSlotGrid genera la grilla desde dayStart hasta dayEnd inclusive,
// avanzando intervalMin minutos por bloque.
func NewSlotGrid(intervalMin int, dayStart, dayEnd string) (*SlotGrid, error) {
	if intervalMin <= 0 {
		return nil, fmt.Errorf("%w: interval %d", ErrInvalidSlotGrid, intervalMin)
	}

	start, err := types.NewTimeStringFromString(dayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: day start: %v", ErrInvalidSlotGrid, err)
	}
	end, err := types.NewTimeStringFromString(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: day end: %v", ErrInvalidSlotGrid, err)
	}
	if !end.IsAfter(start) {
		return nil, fmt.Errorf("%w: day end %s <= day start %s", ErrInvalidSlotGrid, dayEnd, dayStart)
	}

	grid := &SlotGrid{
		intervalMin: intervalMin,
		index:       make(map[types.TimeString]int),
	}

	cur := start
	for !cur.IsAfter(end) {
		grid.index[cur] = len(grid.labels)
		grid.labels = append(grid.labels, cur)

		next, err := cur.AddMinutes(intervalMin)
		if err != nil {
			// el siguiente paso saldría del día; la grilla termina aquí
			break
		}
		cur = next
	}

	return grid, nil
}

// Labels retorna los bloques "HH:MM" en orden
func (g *SlotGrid) Labels() []types.TimeString {
	out := make([]types.TimeString, len(g.labels))
	copy(out, g.labels)
	return out
}

// IntervalMinutes retorna el paso de la grilla en minutos
func (g *SlotGrid) IntervalMinutes() int {
	return g.intervalMin
}

// Contains indica si el bloque pertenece a la grilla
func (g *SlotGrid) Contains(label types.TimeString) bool {
	_, ok := g.index[label]
	return ok
}

// BuildRange valida los bloques seleccionados y construye el rango
// [start, end) sobre la fecha indicada. La comparación lexicográfica
// entre bloques es válida por el formato fijo "HH:MM".
func (g *SlotGrid) BuildRange(date time.Time, startLabel, endLabel types.TimeString, loc *time.Location) (time.Time, time.Time, error) {
	if !g.Contains(startLabel) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrSlotNotInGrid, startLabel)
	}
	if !g.Contains(endLabel) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrSlotNotInGrid, endLabel)
	}
	if !endLabel.IsAfter(startLabel) {
		return time.Time{}, time.Time{}, ErrSlotOrder
	}

	start, err := startLabel.At(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := endLabel.At(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
