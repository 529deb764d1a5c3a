package cli

import (
	"testing"

	"inventario-cli/internal/model"
)

func TestFindItem(t *testing.T) {
	items := []model.Item{
		{ID: 1, SKU: "A"},
		{ID: 2, SKU: "B"},
	}

	got, ok := findItem(items, 2)
	if !ok || got.SKU != "B" {
		t.Fatalf("findItem(2) = %+v, %v", got, ok)
	}

	if _, ok := findItem(items, 99); ok {
		t.Fatalf("findItem(99) found a nonexistent item")
	}
}

func TestErrorMessagesNameTheProblem(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errBadItemID("abc"), `id de artículo no válido: "abc"`},
		{errItemNotFound(7), "artículo no encontrado: 7"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}
