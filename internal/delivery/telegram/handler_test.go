package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newTestHandler() *BotHandler {
	return &BotHandler{updates: make(chan tgbotapi.Update, 1)}
}

func TestWebhookHandler_BadJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.webhookHandler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestWebhookHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/telegram", nil)
	w := httptest.NewRecorder()

	h.webhookHandler(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestWebhookHandler_ValidUpdate(t *testing.T) {
	h := newTestHandler()

	body := `{"update_id":7,"message":{"message_id":1,"chat":{"id":42},"from":{"id":42},"text":"Exc0601"}}`
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.webhookHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	select {
	case update := <-h.updates:
		if update.UpdateID != 7 || update.Message == nil || update.Message.Text != "Exc0601" {
			t.Fatalf("unexpected update: %+v", update)
		}
	default:
		t.Fatal("update not delivered to channel")
	}
}

func TestWebhookHandler_FullChannelStillOK(t *testing.T) {
	h := newTestHandler()
	h.updates <- tgbotapi.Update{UpdateID: 1} // kanalni to'ldirish

	body := `{"update_id":2}`
	req := httptest.NewRequest(http.MethodPost, "/telegram", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.webhookHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("full channel should still return 200, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	h.healthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("expected body ok, got %q", w.Body.String())
	}
}

func TestParseCatalogPage(t *testing.T) {
	tests := []struct {
		data string
		page int
		ok   bool
	}{
		{"catalog:2", 2, true},
		{"catalog:99", 99, true},
		{"catalog:", 0, false},
		{"catalog:abc", 0, false},
		{"other:2", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		page, ok := parseCatalogPage(tt.data)
		if page != tt.page || ok != tt.ok {
			t.Errorf("parseCatalogPage(%q) = (%d, %v), want (%d, %v)", tt.data, page, ok, tt.page, tt.ok)
		}
	}
}

func TestCatalogPageKeyboard(t *testing.T) {
	if kb := catalogPageKeyboard(1, false, false); kb != nil {
		t.Fatalf("single page should have no keyboard, got %+v", kb)
	}

	kb := catalogPageKeyboard(1, false, true)
	if kb == nil || len(kb.InlineKeyboard[0]) != 1 {
		t.Fatalf("expected next-only keyboard, got %+v", kb)
	}
	if *kb.InlineKeyboard[0][0].CallbackData != "catalog:2" {
		t.Fatalf("unexpected next data: %q", *kb.InlineKeyboard[0][0].CallbackData)
	}

	kb = catalogPageKeyboard(2, true, true)
	if kb == nil || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected prev and next buttons, got %+v", kb)
	}
	if *kb.InlineKeyboard[0][0].CallbackData != "catalog:1" || *kb.InlineKeyboard[0][1].CallbackData != "catalog:3" {
		t.Fatalf("unexpected page data: %+v", kb.InlineKeyboard[0])
	}
}
