package api

import (
	"context"
	"fmt"
	"net/http"

	"inventario-cli/internal/model"
)

type itemCreateRequest struct {
	SKU      string `json:"sku"`
	EAN13    string `json:"ean13"`
	Quantity int    `json:"quantity"`
}

type itemUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// ListItems fetches the whole collection. Callers replace their local copy
// wholesale with the result.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem creates an item and returns the server's representation,
// including the assigned id.
func (c *Client) CreateItem(ctx context.Context, sku, ean13 string, quantity int) (model.Item, error) {
	var created model.Item
	err := c.do(ctx, http.MethodPost, "/items", itemCreateRequest{SKU: sku, EAN13: ean13, Quantity: quantity}, &created)
	return created, err
}

// UpdateItemQuantity sets an item's quantity and returns the server's
// representation, which is authoritative for the stored value.
func (c *Client) UpdateItemQuantity(ctx context.Context, id int64, quantity int) (model.Item, error) {
	var updated model.Item
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), itemUpdateRequest{Quantity: quantity}, &updated)
	return updated, err
}

// DeleteItem deletes an item. The server cascades the item's movements.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}

// ListMovements fetches the full movement list for every item.
func (c *Client) ListMovements(ctx context.Context) ([]model.Movement, error) {
	var movs []model.Movement
	if err := c.do(ctx, http.MethodGet, "/movements", nil, &movs); err != nil {
		return nil, err
	}
	return movs, nil
}

// ItemHistory returns the movements of one item. The backend only exposes
// the full list, so filtering happens client-side.
func (c *Client) ItemHistory(ctx context.Context, id int64) ([]model.Movement, error) {
	movs, err := c.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	hist := make([]model.Movement, 0, len(movs))
	for _, m := range movs {
		if m.ItemID == id {
			hist = append(hist, m)
		}
	}
	return hist, nil
}
