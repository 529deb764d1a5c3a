package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"inventario-cli/internal/api"
	"inventario-cli/internal/auditlog"
	"inventario-cli/internal/model"
)

type appModel struct {
	client *api.Client
	audit  auditlog.Log
	log    zerolog.Logger

	width  int
	height int

	view  view
	modal modalKind

	sess model.Session
	// items is the local copy of the collection, replaced wholesale by each
	// list() and patched per item id on mutations. Only the Update loop
	// touches it, so no locking.
	items     []model.Item
	itemsList list.Model

	// Login form.
	userInput  textinput.Model
	passInput  textinput.Model
	loginFocus int

	// Add-item modal.
	skuInput textinput.Model
	eanInput textinput.Model
	qtyInput textinput.Model
	addFocus int

	// Update-quantity modal.
	updateInput   textinput.Model
	updateItemID  int64
	updateCurrent int

	// Delete confirmation modal.
	deleteItemID int64
	deleteSKU    string
	confirmFocus confirmModalFocus

	// History modal.
	historyItemID int64
	historyText   string

	// Change-password modal.
	oldInput textinput.Model
	newInput textinput.Model
	repInput textinput.Model
	pwdFocus int

	// One-line feedback in the footer; each notice supersedes the previous
	// one and expires on its own sequence number.
	notice    string
	noticeSeq int
}

func newAppModel(client *api.Client, audit auditlog.Log, log zerolog.Logger) appModel {
	m := appModel{
		client: client,
		audit:  audit,
		log:    log,
		view:   viewLogin,
	}

	m.itemsList = newItemList()

	m.userInput = newInput("Usuario", 64)
	m.passInput = newInput("Contraseña", 64)
	m.passInput.EchoMode = textinput.EchoPassword
	m.userInput.Focus()

	m.skuInput = newInput("SKU", 64)
	m.eanInput = newInput("EAN13", 13)
	m.qtyInput = newInput("Cantidad", 10)

	m.updateInput = newInput("Cantidad nueva", 10)

	m.oldInput = newInput("Contraseña actual", 64)
	m.newInput = newInput("Contraseña nueva", 64)
	m.repInput = newInput("Repetir contraseña", 64)
	m.oldInput.EchoMode = textinput.EchoPassword
	m.newInput.EchoMode = textinput.EchoPassword
	m.repInput.EchoMode = textinput.EchoPassword

	// Startup state comes from the persisted session: token present means
	// authenticated mode.
	if sess, err := client.Sessions.Load(); err == nil && sess.Authenticated() {
		m.sess = sess
		m.view = viewItems
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewItems {
		return m.loadItemsCmd()
	}
	return textinput.Blink
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 32
	return in
}

func newItemList() list.Model {
	l := list.New([]list.Item{}, newStockDelegate(), 0, 0)
	// We render our own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetStatusBarItemName("artículo", "artículos")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	return l
}

// setItems replaces the local collection wholesale and refreshes the list.
func (m *appModel) setItems(items []model.Item) {
	m.items = items
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, stockItem{item: it})
	}
	m.itemsList.SetItems(rows)
}

// replaceItem swaps the one row the server returned; responses for other
// rows are untouched even when they arrive out of order.
func (m *appModel) replaceItem(updated model.Item) {
	for i := range m.items {
		if m.items[i].ID == updated.ID {
			m.items[i] = updated
			break
		}
	}
	m.refreshRows()
}

func (m *appModel) appendItem(created model.Item) {
	m.items = append(m.items, created)
	m.refreshRows()
}

func (m *appModel) removeItem(id int64) {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	m.refreshRows()
}

func (m *appModel) refreshRows() {
	rows := make([]list.Item, 0, len(m.items))
	for _, it := range m.items {
		rows = append(rows, stockItem{item: it})
	}
	m.itemsList.SetItems(rows)
}

func (m appModel) selectedItem() (model.Item, bool) {
	it, ok := m.itemsList.SelectedItem().(stockItem)
	if !ok {
		return model.Item{}, false
	}
	return it.item, true
}

// resetToLogin is the explicit replacement for the web client's full-page
// reload on expiry: back to the login form with every piece of
// authenticated state dropped, so nothing stale survives reauthentication.
func (m appModel) resetToLogin() appModel {
	m.view = viewLogin
	m.modal = modalNone
	m.sess = model.Session{}
	m.setItems(nil)
	m.historyText = ""
	m.historyItemID = 0
	m.deleteItemID = 0
	m.updateItemID = 0

	m.userInput.SetValue("")
	m.passInput.SetValue("")
	m.skuInput.SetValue("")
	m.eanInput.SetValue("")
	m.qtyInput.SetValue("")
	m.updateInput.SetValue("")
	m.oldInput.SetValue("")
	m.newInput.SetValue("")
	m.repInput.SetValue("")

	m.loginFocus = 0
	m.passInput.Blur()
	m.userInput.Focus()
	return m
}
