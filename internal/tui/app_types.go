package tui

import "inventario-cli/internal/model"

type view int

const (
	viewLogin view = iota
	viewItems
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddItem
	modalUpdateQuantity
	modalConfirmDelete
	modalHistory
	modalChangePassword
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// Async operation results. Each user action fires one command and receives
// exactly one of these; mutations are keyed by item id so responses landing
// out of order only ever touch their own row.

type loginDoneMsg struct {
	sess model.Session
	err  error
}

type itemsLoadedMsg struct {
	items []model.Item
	err   error
}

type itemCreatedMsg struct {
	item model.Item
	err  error
}

type itemUpdatedMsg struct {
	id   int64
	item model.Item
	err  error
}

type itemDeletedMsg struct {
	id  int64
	err error
}

type historyLoadedMsg struct {
	itemID int64
	text   string
	err    error
}

type passwordChangedMsg struct {
	err error
}

type noticeExpireMsg struct {
	seq int
}
