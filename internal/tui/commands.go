package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"inventario-cli/internal/history"
)

// Every action runs as its own command so the UI stays responsive while the
// request is in flight. There is no cancellation: a request runs to
// completion or failure, and its done-message carries whichever it was.

func (m appModel) loginCmd(username, password string) tea.Cmd {
	client, audit := m.client, m.audit
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := client.Login(ctx, username, password)
		if err == nil {
			_ = audit.Append(ctx, sess.Username, "login", 0, nil)
		}
		return loginDoneMsg{sess: sess, err: err}
	}
}

func (m appModel) loadItemsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		items, err := client.ListItems(context.Background())
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m appModel) createItemCmd(sku, ean13 string, quantity int) tea.Cmd {
	client, audit, actor := m.client, m.audit, m.sess.Username
	return func() tea.Msg {
		ctx := context.Background()
		created, err := client.CreateItem(ctx, sku, ean13, quantity)
		if err == nil {
			_ = audit.Append(ctx, actor, "item.create", created.ID, created)
		}
		return itemCreatedMsg{item: created, err: err}
	}
}

func (m appModel) updateQuantityCmd(id int64, quantity int) tea.Cmd {
	client, audit, actor := m.client, m.audit, m.sess.Username
	return func() tea.Msg {
		ctx := context.Background()
		updated, err := client.UpdateItemQuantity(ctx, id, quantity)
		if err == nil {
			_ = audit.Append(ctx, actor, "item.update", id, updated)
		}
		return itemUpdatedMsg{id: id, item: updated, err: err}
	}
}

func (m appModel) deleteItemCmd(id int64) tea.Cmd {
	client, audit, actor := m.client, m.audit, m.sess.Username
	return func() tea.Msg {
		ctx := context.Background()
		err := client.DeleteItem(ctx, id)
		if err == nil {
			_ = audit.Append(ctx, actor, "item.delete", id, nil)
		}
		return itemDeletedMsg{id: id, err: err}
	}
}

func (m appModel) historyCmd(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		movs, err := client.ItemHistory(context.Background(), id)
		if err != nil {
			return historyLoadedMsg{itemID: id, err: err}
		}
		return historyLoadedMsg{itemID: id, text: history.FormatHistory(movs, history.MadridLocation())}
	}
}

func (m appModel) changePasswordCmd(current, next string) tea.Cmd {
	client, audit, actor := m.client, m.audit, m.sess.Username
	return func() tea.Msg {
		ctx := context.Background()
		err := client.ChangePassword(ctx, current, next)
		if err == nil {
			_ = audit.Append(ctx, actor, "password.change", 0, nil)
		}
		return passwordChangedMsg{err: err}
	}
}
