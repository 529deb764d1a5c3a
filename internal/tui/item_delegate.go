package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"inventario-cli/internal/model"
)

// stockItem adapts a model.Item to the list widget. Filtering matches on
// SKU and EAN13.
type stockItem struct {
	item model.Item
}

func (s stockItem) FilterValue() string {
	return s.item.SKU + " " + s.item.EAN13
}

func (s stockItem) Title() string {
	return fmt.Sprintf("%-20s  %-15s  %5d", s.item.SKU, s.item.EAN13, s.item.Quantity)
}

type stockDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	qtyZero  lipgloss.Style
}

func newStockDelegate() stockDelegate {
	return stockDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Bold(true),
		qtyZero: lipgloss.NewStyle().Foreground(ac("124", "203")),
	}
}

func (d stockDelegate) Height() int  { return 1 }
func (d stockDelegate) Spacing() int { return 0 }
func (d stockDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d stockDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	si, ok := item.(stockItem)
	if !ok {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	} else if si.item.Quantity == 0 {
		style = d.qtyZero
	}

	line := si.Title()
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
