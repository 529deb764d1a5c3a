package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"inventario-cli/internal/api"
	"inventario-cli/internal/auditlog"
	"inventario-cli/internal/model"
	"inventario-cli/internal/session"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	sessions := session.Store{Dir: t.TempDir()}
	client := api.New("http://127.0.0.1:0", sessions, zerolog.Nop())
	m := newAppModel(client, auditlog.Log{Dir: t.TempDir()}, zerolog.Nop())
	m.view = viewItems
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestItemDeletedMsg_RemovesExactlyOneRow(t *testing.T) {
	m := newTestModel(t)
	m.setItems([]model.Item{
		{ID: 1, SKU: "SKU-1", Quantity: 3},
		{ID: 2, SKU: "SKU-2", Quantity: 7},
		{ID: 3, SKU: "SKU-3", Quantity: 1},
	})
	m.modal = modalConfirmDelete

	updated, _ := m.Update(itemDeletedMsg{id: 2})
	got := updated.(appModel)

	if len(got.items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.items))
	}
	for _, it := range got.items {
		if it.ID == 2 {
			t.Fatalf("item 2 still present after delete")
		}
	}
	if got.modal != modalNone {
		t.Errorf("modal = %v, want closed", got.modal)
	}
	if got.notice != "Producto eliminado." {
		t.Errorf("notice = %q", got.notice)
	}
}

func TestSessionExpired_DropsStateAndReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	m.sess = model.Session{Token: "tok", Username: "ana"}
	m.setItems([]model.Item{{ID: 1, SKU: "SKU-1"}})
	m.modal = modalUpdateQuantity

	updated, _ := m.Update(itemUpdatedMsg{id: 1, err: api.ErrSessionExpired})
	got := updated.(appModel)

	if got.view != viewLogin {
		t.Fatalf("view = %v, want viewLogin", got.view)
	}
	if len(got.items) != 0 {
		t.Errorf("items survived reset: %d", len(got.items))
	}
	if got.modal != modalNone {
		t.Errorf("modal survived reset")
	}
	if got.sess.Authenticated() {
		t.Errorf("session survived reset")
	}
	if got.notice != "Sesión expirada, inicia sesión de nuevo." {
		t.Errorf("notice = %q", got.notice)
	}
}

func TestUnchangedQuantity_StaysLocal(t *testing.T) {
	m := newTestModel(t)
	m.setItems([]model.Item{{ID: 1, SKU: "SKU-1", Quantity: 5}})
	m.modal = modalUpdateQuantity
	m.updateItemID = 1
	m.updateCurrent = 5
	m.updateInput.SetValue("5")

	// BaseURL is unroutable, so reaching the network would fail loudly; an
	// unchanged quantity must be rejected before any command is built.
	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(appModel)

	if got.notice != "La cantidad no ha cambiado" {
		t.Fatalf("notice = %q", got.notice)
	}
	if got.modal != modalUpdateQuantity {
		t.Errorf("modal closed on rejected input")
	}
}

func TestDuplicateSKU_StaysLocal(t *testing.T) {
	m := newTestModel(t)
	m.setItems([]model.Item{{ID: 1, SKU: "CAM-001", EAN13: "8412345678905", Quantity: 2}})
	m.modal = modalAddItem
	m.skuInput.SetValue("CAM-001")
	m.eanInput.SetValue("1111111111111")
	m.qtyInput.SetValue("3")

	updated, _ := m.Update(keyMsg("enter"))
	got := updated.(appModel)

	if got.notice != "Ya existe un producto con ese SKU." {
		t.Fatalf("notice = %q", got.notice)
	}
	if got.modal != modalAddItem {
		t.Errorf("modal closed on rejected input")
	}
	if len(got.items) != 1 {
		t.Errorf("collection mutated locally")
	}
}

func TestPasswordModal_ValidationOrder(t *testing.T) {
	cases := []struct {
		name                  string
		current, next, repeat string
		want                  string
	}{
		{"empty fields", "", "b", "b", "Rellena los tres campos."},
		{"mismatch", "a", "b", "c", "Las contraseñas nuevas no coinciden."},
		{"mismatch before same-as-old", "x", "y", "x", "Las contraseñas nuevas no coinciden."},
		{"same as current", "a", "a", "a", "La nueva contraseña no puede ser igual a la actual."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m.modal = modalChangePassword
			m.oldInput.SetValue(tc.current)
			m.newInput.SetValue(tc.next)
			m.repInput.SetValue(tc.repeat)

			updated, _ := m.Update(keyMsg("enter"))
			got := updated.(appModel)

			if got.notice != tc.want {
				t.Errorf("notice = %q, want %q", got.notice, tc.want)
			}
			if got.modal != modalChangePassword {
				t.Errorf("modal closed on rejected input")
			}
		})
	}
}

func TestLoginDone_SwitchesToItems(t *testing.T) {
	m := newTestModel(t)
	m.view = viewLogin
	m.userInput.SetValue("ana")
	m.passInput.SetValue("secret")

	updated, cmd := m.Update(loginDoneMsg{sess: model.Session{Token: "tok", Username: "ana"}})
	got := updated.(appModel)

	if got.view != viewItems {
		t.Fatalf("view = %v, want viewItems", got.view)
	}
	if got.sess.Username != "ana" {
		t.Errorf("username = %q", got.sess.Username)
	}
	if got.userInput.Value() != "" || got.passInput.Value() != "" {
		t.Errorf("login form not cleared")
	}
	if cmd == nil {
		t.Errorf("expected an items load command after login")
	}
}

func TestNoticeExpire_OnlyClearsOwnSequence(t *testing.T) {
	m := newTestModel(t)
	m, _ = mustNotice(t, m, "primero")
	stale := m.noticeSeq
	m, _ = mustNotice(t, m, "segundo")

	updated, _ := m.Update(noticeExpireMsg{seq: stale})
	got := updated.(appModel)
	if got.notice != "segundo" {
		t.Fatalf("stale expiry cleared a newer notice: %q", got.notice)
	}

	updated, _ = got.Update(noticeExpireMsg{seq: got.noticeSeq})
	got = updated.(appModel)
	if got.notice != "" {
		t.Fatalf("notice = %q, want cleared", got.notice)
	}
}

func mustNotice(t *testing.T, m appModel, text string) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.withNotice(text)
	if next.notice != text {
		t.Fatalf("notice = %q, want %q", next.notice, text)
	}
	return next, cmd
}
