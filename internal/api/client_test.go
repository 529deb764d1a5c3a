package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"inventario-cli/internal/model"
	"inventario-cli/internal/session"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c := New(url, session.Store{Dir: t.TempDir()}, zerolog.Nop())
	require.NoError(t, c.Sessions.Save(model.Session{Token: "tok", Username: "ana"}))
	return c
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Item{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok", gotAuth)
}

func TestDoExpired401ClearsSession(t *testing.T) {
	for _, detail := range []string{"Signature has expired", "TOKEN EXPIRED", "signature has ExPiReD"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
		}))

		c := newTestClient(t, srv.URL)
		_, err := c.ListItems(context.Background())
		require.ErrorIs(t, err, ErrSessionExpired, "detail %q", detail)

		sess, loadErr := c.Sessions.Load()
		require.NoError(t, loadErr)
		require.False(t, sess.Authenticated(), "store must be cleared for detail %q", detail)
		_, statErr := os.Stat(c.Sessions.Path())
		require.True(t, os.IsNotExist(statErr))
		srv.Close()
	}
}

func TestDoOther401KeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No se pudo validar el token"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListItems(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	sess, loadErr := c.Sessions.Load()
	require.NoError(t, loadErr)
	require.True(t, sess.Authenticated(), "store must stay untouched on a plain 401")
	require.Equal(t, "tok", sess.Token)
}

func TestDoOtherStatusIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "SKU ya existe"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.CreateItem(context.Background(), "A1", "1234567890123", 5)

	var rf *RequestFailedError
	require.ErrorAs(t, err, &rf)
	require.Equal(t, http.StatusBadRequest, rf.Status)
	require.Equal(t, "SKU ya existe", rf.Detail)
	require.Contains(t, rf.Error(), "SKU ya existe")
}

func TestDoNetworkFailureIsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito

	c := newTestClient(t, srv.URL)
	_, err := c.ListItems(context.Background())

	var rf *RequestFailedError
	require.ErrorAs(t, err, &rf)
	require.Zero(t, rf.Status)
	require.Error(t, rf.Unwrap())
}

// fakeBackend is a tiny in-memory rendition of the inventario API, enough
// for round-trip tests.
type fakeBackend struct {
	mu     sync.Mutex
	nextID int64
	items  []model.Item
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.items)
	})
	mux.HandleFunc("POST /items", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			SKU      string `json:"sku"`
			EAN13    string `json:"ean13"`
			Quantity int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		item := model.Item{ID: f.nextID, SKU: in.SKU, EAN13: in.EAN13, Quantity: in.Quantity}
		f.items = append(f.items, item)
		_ = json.NewEncoder(w).Encode(item)
	})
	mux.HandleFunc("PUT /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var in struct {
			Quantity int `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.items {
			if f.items[i].ID == id {
				f.items[i].Quantity = in.Quantity
				_ = json.NewEncoder(w).Encode(f.items[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Item not found"})
	})
	mux.HandleFunc("DELETE /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.items[:0]
		for _, it := range f.items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		f.items = kept
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestCreateListRoundTrip(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	created, err := c.CreateItem(context.Background(), "A1", "1234567890123", 5)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "A1", created.SKU)
	require.Equal(t, "1234567890123", created.EAN13)
	require.Equal(t, 5, created.Quantity)

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, created, items[0])
}

func TestUpdateAndDelete(t *testing.T) {
	srv := httptest.NewServer((&fakeBackend{}).handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	created, err := c.CreateItem(context.Background(), "A1", "1234567890123", 5)
	require.NoError(t, err)

	updated, err := c.UpdateItemQuantity(context.Background(), created.ID, 9)
	require.NoError(t, err)
	require.Equal(t, 9, updated.Quantity)
	require.Equal(t, created.ID, updated.ID)

	require.NoError(t, c.DeleteItem(context.Background(), created.ID))
	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestItemHistoryFiltersByItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movements", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"item_id":1,"type":"creación","amount":5,"timestamp":"2024-01-01T10:00:00","quantity_before":0,"quantity_after":5},
			{"id":2,"item_id":2,"type":"entrada","amount":3,"timestamp":"2024-01-02T10:00:00Z","quantity_before":2,"quantity_after":5,"username":"bob"},
			{"id":3,"item_id":1,"type":"salida","amount":-1,"timestamp":"2024-01-03T10:00:00","quantity_before":5,"quantity_after":4}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	hist, err := c.ItemHistory(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	for _, m := range hist {
		require.EqualValues(t, 1, m.ItemID)
	}
	// Zone-less backend timestamps parse as UTC.
	require.Equal(t, "2024-01-01T10:00:00Z", hist[0].Timestamp.UTC().Format("2006-01-02T15:04:05Z"))
}

func TestReadDetailFallsBackToRawBody(t *testing.T) {
	got := readDetail(strings.NewReader("  plain text error \n"))
	require.Equal(t, "plain text error", got)
}
