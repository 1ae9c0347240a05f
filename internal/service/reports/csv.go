package reports

import (
	"strings"
)

// Separadores aceptados por el parámetro "sep" del export
const (
	SeparatorSemicolon = "semicolon"
	SeparatorComma     = "comma"
	SeparatorTab       = "tab"
)

// resolveSeparator traduce el parámetro textual al carácter separador.
// Vacío usa punto y coma, el separador que Excel en español espera.
func resolveSeparator(sep string) (rune, error) {
	switch sep {
	case "", SeparatorSemicolon:
		return ';', nil
	case SeparatorComma:
		return ',', nil
	case SeparatorTab:
		return '\t', nil
	default:
		return 0, ErrInvalidSeparator
	}
}

// csvWriter escritor CSV con todos los campos entre comillas.
// encoding/csv solo cita cuando es necesario y Excel interpreta mal
// celdas con saltos de línea sin citar, así que se escribe a mano.
type csvWriter struct {
	sb  strings.Builder
	sep rune
}

func newCSVWriter(sep rune) *csvWriter {
	w := &csvWriter{sep: sep}
	// BOM UTF-8 para que Excel detecte la codificación
	w.sb.WriteString("\uFEFF")
	return w
}

// writeRow escribe una fila citando cada campo
func (w *csvWriter) writeRow(fields ...string) {
	for i, field := range fields {
		if i > 0 {
			w.sb.WriteRune(w.sep)
		}
		w.sb.WriteByte('"')
		w.sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.sb.WriteByte('"')
	}
	w.sb.WriteString("\r\n")
}

func (w *csvWriter) String() string {
	return w.sb.String()
}
