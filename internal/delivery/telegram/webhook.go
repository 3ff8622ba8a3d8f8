package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eccues/eccues-bot/pkg/logger"
)

// registerWebhook Telegram ga webhook manzilini ro'yxatdan o'tkazish.
// Eski kutilayotgan updatelar tashlab yuboriladi.
func (h *BotHandler) registerWebhook() error {
	wh, err := tgbotapi.NewWebhook(h.webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	wh.DropPendingUpdates = true

	if _, err := h.bot.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	logger.InfoLogger.Printf("🌐 Webhook ro'yxatdan o'tdi: %s", h.webhookURL)
	return nil
}

// startHTTPServer webhook va health endpointlari uchun HTTP server
func (h *BotHandler) startHTTPServer(ctx context.Context) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.healthHandler)
	mux.HandleFunc("/healthz", h.healthHandler)
	mux.HandleFunc("/telegram", h.webhookHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", h.port),
		Handler: mux,
	}

	go func() {
		logger.InfoLogger.Printf("🌐 HTTP server :%d portda ishga tushdi", h.port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Printf("❌ HTTP server xatosi: %v", err)
		}
	}()

	return server
}

func (h *BotHandler) shutdownHTTPServer(server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Printf("❌ HTTP serverni to'xtatishda xato: %v", err)
	}
}

// healthHandler deploy platformasi health check uchun
func (h *BotHandler) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// webhookHandler Telegram dan kelgan update ni qabul qilish
func (h *BotHandler) webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	// Kanal to'lib qolsa update tashlab yuboriladi, Telegram qayta
	// yubormasligi uchun baribir 200 qaytaramiz
	select {
	case h.updates <- update:
	default:
		logger.ErrorLogger.Println("❌ Update kanali to'ldi, update tashlab yuborildi")
	}

	w.WriteHeader(http.StatusOK)
}
