package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eccues/eccues-bot/config"
	"github.com/eccues/eccues-bot/internal/delivery/telegram"
	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
	"github.com/eccues/eccues-bot/internal/infrastructure/gemini"
	"github.com/eccues/eccues-bot/internal/infrastructure/parser"
	"github.com/eccues/eccues-bot/internal/infrastructure/storage"
	"github.com/eccues/eccues-bot/internal/usecase"
	"github.com/eccues/eccues-bot/pkg/logger"
)

func main() {
	initDefaultTimezone()

	// Logger ni ishga tushirish
	logger.Init()
	logger.InfoLogger.Println("🚀 Ilova ishga tushmoqda...")

	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Konfiguratsiya yuklanmadi: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Katalogni yuklash. O'qib bo'lmasa bot bo'sh katalog bilan
	// baribir ishga tushadi.
	catalogParser := parser.NewCatalogParser()
	catalog, err := catalogParser.ParseCatalog(ctx, cfg.CatalogPath)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Katalog o'qilmadi (%s): %v. Bot katalogsiz davom etadi.", cfg.CatalogPath, err)
		catalog = &entity.Catalog{Source: cfg.CatalogPath}
	} else {
		logger.InfoLogger.Printf("✅ Katalog yuklandi: %d qator (%s, encoding %s)", len(catalog.Rows), catalog.Source, catalog.Encoding)
	}

	// 2. Repositories (in-memory)
	catalogRepo := storage.NewMemoryCatalogRepository()
	if err := catalogRepo.ReplaceCatalog(ctx, *catalog); err != nil {
		log.Fatalf("❌ Katalogni saqlashda xato: %v", err)
	}
	chatRepo := storage.NewMemoryChatRepository(cfg.MaxContextSize)
	sessionRepo := storage.NewMemorySessionRepository()
	logger.InfoLogger.Println("✅ Repositories tayyor (in-memory)")

	// 3. Gemini AI client (ixtiyoriy)
	aiRepo := newAIClient(cfg)
	if aiRepo != nil {
		defer aiRepo.Close()
	}

	// 4. Use cases
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo)
	chatUseCase := usecase.NewChatUseCase(catalogUseCase, sessionRepo, chatRepo, aiRepo)
	logger.InfoLogger.Println("✅ Use cases tayyor")

	// 5. Telegram bot handler
	botHandler, err := telegram.NewBotHandler(
		cfg.TelegramToken,
		cfg.WebhookURL,
		cfg.Port,
		chatUseCase,
		catalogUseCase,
	)
	if err != nil {
		log.Fatalf("❌ Bot handler yaratilmadi: %v", err)
	}

	// Eski sessiyalarni davriy tozalash
	go sessionRepo.StartCleanup(ctx)

	// Botni alohida goroutine da ishga tushirish
	go func() {
		if err := botHandler.Start(ctx); err != nil && err != context.Canceled {
			logger.ErrorLogger.Printf("❌ Bot xatosi: %v", err)
		}
	}()

	logger.InfoLogger.Println("🤖 Bot ishlayapti. To'xtatish uchun Ctrl+C ni bosing.")

	// Signal kutish
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.InfoLogger.Println("⏳ To'xtatish signali qabul qilindi...")

	// Graceful shutdown
	cancel()
	logger.InfoLogger.Println("✅ Bot to'xtatildi.")
}

// newAIClient AI fallback yoqilgan bo'lsa Gemini client yaratish.
// Client yaratilmasa bot deterministik javoblar bilan davom etadi.
func newAIClient(cfg *config.Config) repository.AIRepository {
	if !cfg.AIFallback {
		logger.InfoLogger.Println("ℹ️ AI fallback o'chirilgan")
		return nil
	}

	aiRepo, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Gemini client yaratilmadi: %v. AI fallbacksiz davom etamiz.", err)
		return nil
	}
	logger.InfoLogger.Println("✅ Gemini AI client tayyor (gemini-2.0-flash-exp)")
	return aiRepo
}

func initDefaultTimezone() {
	const tzName = "Asia/Ho_Chi_Minh"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 7*60*60)
}
