package cli

import (
	"fmt"

	"inventario-cli/internal/model"
)

type badItemIDError struct {
	raw string
}

func (e badItemIDError) Error() string {
	return fmt.Sprintf("id de artículo no válido: %q", e.raw)
}

func errBadItemID(raw string) error { return badItemIDError{raw: raw} }

type itemNotFoundError struct {
	id int64
}

func (e itemNotFoundError) Error() string {
	return fmt.Sprintf("artículo no encontrado: %d", e.id)
}

func errItemNotFound(id int64) error { return itemNotFoundError{id: id} }

type errConfirmRequired struct{}

func (errConfirmRequired) Error() string {
	return "eliminar borra también los movimientos del artículo; repite con --yes para confirmar"
}

func findItem(items []model.Item, id int64) (model.Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}
