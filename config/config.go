package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken  string
	GeminiAPIKey   string
	CatalogPath    string
	WebhookURL     string
	Port           int
	MaxContextSize int
	AIFallback     bool
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		CatalogPath:    "Exc.csv",
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		Port:           8080,
		MaxContextSize: 20, // Default qiymat
	}

	if path := os.Getenv("CATALOG_PATH"); path != "" {
		config.CatalogPath = path
	}

	if rawPort := os.Getenv("PORT"); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil {
			return nil, fmt.Errorf("PORT noto'g'ri formatda: %v", err)
		}
		config.Port = parsed
	}

	// AI fallback: Gemini kaliti bo'lsa yoqiladi, AI_FALLBACK=off bilan
	// majburan o'chirish mumkin (deterministik javoblar qoladi)
	config.AIFallback = config.GeminiAPIKey != ""
	if strings.EqualFold(os.Getenv("AI_FALLBACK"), "off") {
		config.AIFallback = false
	}

	// Validatsiya
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}

	return config, nil
}
