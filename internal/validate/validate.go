// Package validate holds the client-side pre-checks the TUI and the CLI
// share. A failed check never reaches the network and carries the exact
// message the user sees; the server stays authoritative for everything a
// pre-check also covers.
package validate

import (
	"strconv"
	"strings"

	"inventario-cli/internal/model"
)

// Error is a client-side pre-check failure.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func errf(msg string) error { return &Error{msg: msg} }

// NewQuantity checks an updated quantity: it must parse as an integer and
// differ from the current value.
func NewQuantity(raw string, current int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errf("Cantidad no válida")
	}
	if n == current {
		return 0, errf("La cantidad no ha cambiado")
	}
	return n, nil
}

// NewItem checks a create form against the local collection: all fields
// filled, integer quantity, and no SKU/EAN13 collision. SKU and EAN13 are
// checked independently so each collision gets its own message.
func NewItem(items []model.Item, sku, ean13, rawQty string) (string, string, int, error) {
	sku = strings.TrimSpace(sku)
	ean13 = strings.TrimSpace(ean13)
	rawQty = strings.TrimSpace(rawQty)

	if sku == "" || ean13 == "" || rawQty == "" {
		return "", "", 0, errf("Por favor, rellena todos los campos.")
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil {
		return "", "", 0, errf("Cantidad debe ser un número válido.")
	}
	for _, it := range items {
		if it.SKU == sku {
			return "", "", 0, errf("Ya existe un producto con ese SKU.")
		}
	}
	for _, it := range items {
		if it.EAN13 == ean13 {
			return "", "", 0, errf("Ya existe un producto con ese EAN13.")
		}
	}
	return sku, ean13, qty, nil
}

// PasswordChange checks the three password fields in a fixed order: all
// filled, then new matches its repeat, then new differs from the current
// one. The first failing rule wins.
func PasswordChange(current, next, repeat string) error {
	if current == "" || next == "" || repeat == "" {
		return errf("Rellena los tres campos.")
	}
	if next != repeat {
		return errf("Las contraseñas nuevas no coinciden.")
	}
	if next == current {
		return errf("La nueva contraseña no puede ser igual a la actual.")
	}
	return nil
}
