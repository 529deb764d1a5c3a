// Package history renders movement records the way the original web client
// showed them: one Spanish line per movement, localized to Europe/Madrid.
package history

import (
	"fmt"
	"strings"
	"time"

	"inventario-cli/internal/model"
)

// NoMovementsNotice is shown when an item has no history.
const NoMovementsNotice = "Este producto no tiene movimientos."

// MadridLocation returns Europe/Madrid, falling back to UTC when the host
// has no tzdata.
func MadridLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatMovement renders one history line, e.g.
//
//	Entrada de 3 unidades el 1/1/2024 11:00:00 (2 -> 5) por bob
//
// The kind is Creación when the record's type says so (case-insensitive);
// otherwise the sign of the amount decides Entrada vs Salida. The
// before/after range is omitted for Creación.
func FormatMovement(m model.Movement, loc *time.Location) string {
	units := m.Amount
	if units < 0 {
		units = -units
	}
	unitWord := "unidades"
	if units == 1 {
		unitWord = "unidad"
	}

	kind := "Salida"
	creation := strings.EqualFold(m.Type, "creación")
	switch {
	case creation:
		kind = "Creación"
	case m.Amount > 0:
		kind = "Entrada"
	}

	when := m.Timestamp.In(loc).Format("2/1/2006 15:04:05")

	var b strings.Builder
	fmt.Fprintf(&b, "%s de %d %s el %s", kind, units, unitWord, when)
	if !creation {
		fmt.Fprintf(&b, " (%d -> %d)", m.QuantityBefore, m.QuantityAfter)
	}
	if m.Username != "" {
		b.WriteString(" por " + m.Username)
	}
	return b.String()
}

// FormatHistory renders every movement as its own line, newest order
// preserved as given. An empty history yields the no-movements notice.
func FormatHistory(movs []model.Movement, loc *time.Location) string {
	if len(movs) == 0 {
		return NoMovementsNotice
	}
	lines := make([]string, 0, len(movs))
	for _, m := range movs {
		lines = append(lines, FormatMovement(m, loc))
	}
	return strings.Join(lines, "\n")
}
