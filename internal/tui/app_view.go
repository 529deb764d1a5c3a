package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rows consumed by header, footer and spacing around the item list.
const listChromeHeight = 6

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	styleHeader = lipgloss.NewStyle().Padding(0, 1)

	styleListHead = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m appModel) View() string {
	var base string
	if m.view == viewLogin {
		base = m.viewLoginForm()
	} else {
		base = m.viewItemsScreen()
	}

	if m.modal == modalNone {
		return base
	}
	return m.viewModal()
}

func (m appModel) viewLoginForm() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Inventario"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.userInput.View() + "\n")
	b.WriteString("  " + m.passInput.View() + "\n\n")
	b.WriteString(styleMuted().Render("  enter entrar · tab cambiar campo · esc salir"))
	if m.notice != "" {
		b.WriteString("\n\n  " + styleError().Render(m.notice))
	}

	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m appModel) viewItemsScreen() string {
	header := styleHeader.Render(
		styleTitle.Render("Inventario") +
			styleMuted().Render("  ·  "+m.sess.Username),
	)
	head := styleHeader.Render(styleListHead.Render(fmt.Sprintf("%-20s  %-15s  %5s", "SKU", "EAN13", "Cant.")))

	footer := m.viewFooter()

	return header + "\n" + head + "\n" + m.itemsList.View() + "\n" + footer
}

func (m appModel) viewFooter() string {
	help := styleMuted().Render(
		" a añadir · enter cantidad · x eliminar · h historial · p contraseña · / filtrar · r recargar · ctrl+l salir sesión · q salir",
	)
	if m.notice == "" {
		return help
	}
	return " " + m.noticeStyle().Render(m.notice) + "\n" + help
}

// Error notices and confirmations share the footer slot; color tells them
// apart.
func (m appModel) noticeStyle() lipgloss.Style {
	switch m.notice {
	case "Producto creado.", "Cantidad actualizada.", "Producto eliminado.",
		"Contraseña actualizada.", "Sesión cerrada.":
		return styleNotice()
	}
	return styleError()
}

func (m appModel) viewModal() string {
	var title, body string
	switch m.modal {
	case modalAddItem:
		title = "Nuevo producto"
		body = m.skuInput.View() + "\n" + m.eanInput.View() + "\n" + m.qtyInput.View() +
			"\n\n" + styleMuted().Render("enter crear · tab campo · esc cancelar")
	case modalUpdateQuantity:
		title = "Actualizar cantidad"
		body = styleMuted().Render(fmt.Sprintf("Cantidad actual: %d", m.updateCurrent)) +
			"\n" + m.updateInput.View() +
			"\n\n" + styleMuted().Render("enter guardar · esc cancelar")
	case modalConfirmDelete:
		title = "Eliminar producto"
		body = fmt.Sprintf("¿Eliminar %s y todo su historial?", m.deleteSKU) +
			"\n\n" + m.viewConfirmButtons() +
			"\n\n" + styleMuted().Render("enter aceptar · tab cambiar · esc cancelar")
	case modalHistory:
		title = "Historial"
		text := m.historyText
		if text == "" {
			text = "Cargando..."
		}
		body = text + "\n\n" + styleMuted().Render("esc cerrar")
	case modalChangePassword:
		title = "Cambiar contraseña"
		body = m.oldInput.View() + "\n" + m.newInput.View() + "\n" + m.repInput.View() +
			"\n\n" + styleMuted().Render("enter cambiar · tab campo · esc cancelar")
	}

	box := renderModalBox(title, body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewConfirmButtons() string {
	confirm := renderButton("Eliminar", m.confirmFocus == confirmFocusConfirm)
	cancel := renderButton("Cancelar", m.confirmFocus == confirmFocusCancel)
	return confirm + "  " + cancel
}

func renderButton(label string, active bool) string {
	st := lipgloss.NewStyle().Padding(0, 2)
	if active {
		st = st.Bold(true).Background(colorButtonActiveBg).Foreground(colorModalFg)
	} else {
		st = st.Foreground(colorMuted)
	}
	return st.Render(label)
}

func renderModalBox(title, body string) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorModalFg).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Background(colorModalBg).
		Foreground(colorModalFg).
		Padding(1, 2).
		Render(header + "\n\n" + body)
}
