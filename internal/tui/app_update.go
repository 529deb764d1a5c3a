package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inventario-cli/internal/api"
	"inventario-cli/internal/validate"
)

const noticeTTL = 4 * time.Second

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.itemsList.SetSize(msg.Width-2, msg.Height-listChromeHeight)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.view == viewLogin {
			return m.updateLogin(msg)
		}
		return m.updateItems(msg)

	case loginDoneMsg:
		return m.onLoginDone(msg)
	case itemsLoadedMsg:
		if msg.err != nil {
			return m.handleActionErr("No se pudieron cargar los productos.", msg.err)
		}
		m.setItems(msg.items)
		return m, nil
	case itemCreatedMsg:
		if msg.err != nil {
			return m.handleActionErr("No se pudo crear el producto.", msg.err)
		}
		m.appendItem(msg.item)
		m.modal = modalNone
		m.skuInput.SetValue("")
		m.eanInput.SetValue("")
		m.qtyInput.SetValue("")
		return m.withNotice("Producto creado.")
	case itemUpdatedMsg:
		if msg.err != nil {
			return m.handleActionErr("No se pudo actualizar la cantidad.", msg.err)
		}
		m.replaceItem(msg.item)
		m.modal = modalNone
		m.updateInput.SetValue("")
		return m.withNotice("Cantidad actualizada.")
	case itemDeletedMsg:
		if msg.err != nil {
			return m.handleActionErr("No se pudo eliminar el producto.", msg.err)
		}
		m.removeItem(msg.id)
		m.modal = modalNone
		return m.withNotice("Producto eliminado.")
	case historyLoadedMsg:
		if msg.err != nil {
			m.modal = modalNone
			return m.handleActionErr("No se pudo cargar el historial.", msg.err)
		}
		m.historyItemID = msg.itemID
		m.historyText = msg.text
		return m, nil
	case passwordChangedMsg:
		if msg.err != nil {
			return m.handleActionErr("No se pudo cambiar la contraseña.", msg.err)
		}
		m.modal = modalNone
		m.oldInput.SetValue("")
		m.newInput.SetValue("")
		m.repInput.SetValue("")
		return m.withNotice("Contraseña actualizada.")
	case noticeExpireMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// withNotice replaces the footer notice. Each notice carries a sequence
// number so an expiry tick from a superseded notice cannot clear a newer
// one.
func (m appModel) withNotice(text string) (appModel, tea.Cmd) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpireMsg{seq: seq}
	})
}

// handleActionErr maps an operation failure onto the single footer notice.
// An expired session additionally drops every piece of authenticated state
// and returns to the login form.
func (m appModel) handleActionErr(generic string, err error) (appModel, tea.Cmd) {
	m.log.Warn().Err(err).Msg(generic)
	if errors.Is(err, api.ErrSessionExpired) {
		m = m.resetToLogin()
	}
	return m.withNotice(api.Notice(generic, err))
}

func (m appModel) onLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return m.withNotice("Usuario o contraseña incorrectos.")
		}
		return m.handleActionErr("No se pudo iniciar sesión.", msg.err)
	}
	m.sess = msg.sess
	m.view = viewItems
	m.userInput.SetValue("")
	m.passInput.SetValue("")
	m.passInput.Blur()
	m.userInput.Blur()
	return m, m.loadItemsCmd()
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.passInput.Blur()
			return m, m.userInput.Focus()
		}
		m.userInput.Blur()
		return m, m.passInput.Focus()
	case "enter":
		return m.submitLogin()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.userInput, cmd = m.userInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	user := m.userInput.Value()
	pass := m.passInput.Value()
	if user == "" || pass == "" {
		return m.withNotice("Introduce usuario y contraseña.")
	}
	return m, m.loginCmd(user, pass)
}

func (m appModel) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is active every key belongs to it.
	if m.itemsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.itemsList, cmd = m.itemsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.loadItemsCmd()
	case "a":
		m.modal = modalAddItem
		m.addFocus = 0
		m.eanInput.Blur()
		m.qtyInput.Blur()
		return m, m.skuInput.Focus()
	case "enter", "u":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.modal = modalUpdateQuantity
		m.updateItemID = it.ID
		m.updateCurrent = it.Quantity
		// Prefilled with the current value, like the original form.
		m.updateInput.SetValue(strconv.Itoa(it.Quantity))
		m.updateInput.CursorEnd()
		return m, m.updateInput.Focus()
	case "x", "d":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.deleteItemID = it.ID
		m.deleteSKU = it.SKU
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case "h":
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.modal = modalHistory
		m.historyItemID = it.ID
		m.historyText = ""
		return m, m.historyCmd(it.ID)
	case "p":
		m.modal = modalChangePassword
		m.pwdFocus = 0
		m.newInput.Blur()
		m.repInput.Blur()
		return m, m.oldInput.Focus()
	case "ctrl+l":
		if err := m.client.Logout(); err != nil {
			return m.handleActionErr("No se pudo cerrar la sesión.", err)
		}
		m = m.resetToLogin()
		return m.withNotice("Sesión cerrada.")
	}

	var cmd tea.Cmd
	m.itemsList, cmd = m.itemsList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.modal = modalNone
		m.historyText = ""
		return m, nil
	}

	switch m.modal {
	case modalAddItem:
		return m.updateAddModal(msg)
	case modalUpdateQuantity:
		return m.updateQuantityModal(msg)
	case modalConfirmDelete:
		return m.updateConfirmModal(msg)
	case modalHistory:
		// Read-only; any other key closes it too.
		if msg.String() == "enter" || msg.String() == "q" {
			m.modal = modalNone
			m.historyText = ""
		}
		return m, nil
	case modalChangePassword:
		return m.updatePasswordModal(msg)
	}
	return m, nil
}

func (m appModel) updateAddModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&m.skuInput, &m.eanInput, &m.qtyInput}
	switch msg.String() {
	case "tab", "down":
		return m, cycleFocus(inputs, &m.addFocus, 1)
	case "shift+tab", "up":
		return m, cycleFocus(inputs, &m.addFocus, -1)
	case "enter":
		return m.submitAdd()
	}
	var cmd tea.Cmd
	*inputs[m.addFocus], cmd = inputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m appModel) submitAdd() (tea.Model, tea.Cmd) {
	sku, ean, qty, err := validate.NewItem(m.items, m.skuInput.Value(), m.eanInput.Value(), m.qtyInput.Value())
	if err != nil {
		return m.withNotice(err.Error())
	}
	return m, m.createItemCmd(sku, ean, qty)
}

func (m appModel) updateQuantityModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.submitUpdate()
	}
	var cmd tea.Cmd
	m.updateInput, cmd = m.updateInput.Update(msg)
	return m, cmd
}

func (m appModel) submitUpdate() (tea.Model, tea.Cmd) {
	qty, err := validate.NewQuantity(m.updateInput.Value(), m.updateCurrent)
	if err != nil {
		return m.withNotice(err.Error())
	}
	return m, m.updateQuantityCmd(m.updateItemID, qty)
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right", "shift+tab":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.deleteItemCmd(m.deleteItemID)
		}
		m.modal = modalNone
		return m, nil
	case "y":
		return m, m.deleteItemCmd(m.deleteItemID)
	case "n":
		m.modal = modalNone
		return m, nil
	}
	return m, nil
}

func (m appModel) updatePasswordModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&m.oldInput, &m.newInput, &m.repInput}
	switch msg.String() {
	case "tab", "down":
		return m, cycleFocus(inputs, &m.pwdFocus, 1)
	case "shift+tab", "up":
		return m, cycleFocus(inputs, &m.pwdFocus, -1)
	case "enter":
		return m.submitPassword()
	}
	var cmd tea.Cmd
	*inputs[m.pwdFocus], cmd = inputs[m.pwdFocus].Update(msg)
	return m, cmd
}

func (m appModel) submitPassword() (tea.Model, tea.Cmd) {
	current := m.oldInput.Value()
	next := m.newInput.Value()
	repeat := m.repInput.Value()
	if err := validate.PasswordChange(current, next, repeat); err != nil {
		return m.withNotice(err.Error())
	}
	return m, m.changePasswordCmd(current, next)
}

// updateFocusedInput forwards non-key messages (cursor blinks mostly) to
// whichever input currently has focus.
func (m appModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.modal == modalAddItem:
		inputs := []*textinput.Model{&m.skuInput, &m.eanInput, &m.qtyInput}
		*inputs[m.addFocus], cmd = inputs[m.addFocus].Update(msg)
	case m.modal == modalUpdateQuantity:
		m.updateInput, cmd = m.updateInput.Update(msg)
	case m.modal == modalChangePassword:
		inputs := []*textinput.Model{&m.oldInput, &m.newInput, &m.repInput}
		*inputs[m.pwdFocus], cmd = inputs[m.pwdFocus].Update(msg)
	case m.view == viewLogin:
		if m.loginFocus == 0 {
			m.userInput, cmd = m.userInput.Update(msg)
		} else {
			m.passInput, cmd = m.passInput.Update(msg)
		}
	}
	return m, cmd
}

func cycleFocus(inputs []*textinput.Model, focus *int, delta int) tea.Cmd {
	inputs[*focus].Blur()
	*focus = (*focus + delta + len(inputs)) % len(inputs)
	return inputs[*focus].Focus()
}
