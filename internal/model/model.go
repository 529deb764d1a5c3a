package model

import (
	"encoding/json"
	"time"
)

// Item is one stock row as the backend returns it. Identity is ID. SKU and
// EAN13 are unique across the collection; the server enforces that, the
// client only pre-checks it before attempting a create.
type Item struct {
	ID       int64  `json:"id"`
	SKU      string `json:"sku"`
	EAN13    string `json:"ean13"`
	Quantity int    `json:"quantity"`
}

// Movement is an immutable history record of a quantity change (or the
// creation) of an item. Read-only on the client: /movements returns the full
// list and the client filters by ItemID.
//
// Type is one of "creación", "entrada" or "salida". The backend had both
// `user` and `username` across schema iterations; `username` is the one it
// settled on and the only one we read.
type Movement struct {
	ID             int64     `json:"id"`
	ItemID         int64     `json:"item_id"`
	Type           string    `json:"type"`
	Amount         int       `json:"amount"`
	Timestamp      Timestamp `json:"timestamp"`
	Username       string    `json:"username,omitempty"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
}

// Timestamp parses both RFC 3339 and the backend's zone-less ISO form.
// FastAPI serializes datetime.utcnow() without an offset, so the bare form
// is interpreted as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// Session is the persisted credential state: the bearer token plus the
// display name derived at login. Token present means the app starts in
// authenticated mode.
type Session struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}

func (s Session) Authenticated() bool { return s.Token != "" }
