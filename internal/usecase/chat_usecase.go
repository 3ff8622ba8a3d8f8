package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
	"github.com/eccues/eccues-bot/pkg/logger"
)

const (
	aiRequestTimeout = 20 * time.Second
	historyLimit     = 10
	contextRowLimit  = 5
)

// ChatUseCase foydalanuvchi xabarlarini qayta ishlash business logikasi
type ChatUseCase interface {
	// ProcessMessage matnli xabarga javob yaratish
	ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error)

	// Greet /start uchun javob: birinchi marta to'liq salomlashish,
	// keyin qisqa eslatma
	Greet(ctx context.Context, userID int64) (string, error)
}

type chatUseCase struct {
	catalogUC   CatalogUseCase
	sessionRepo repository.SessionRepository
	chatRepo    repository.ChatRepository
	aiRepo      repository.AIRepository // nil bo'lsa AI fallback o'chirilgan
}

// NewChatUseCase yangi chat usecase yaratish
func NewChatUseCase(
	catalogUC CatalogUseCase,
	sessionRepo repository.SessionRepository,
	chatRepo repository.ChatRepository,
	aiRepo repository.AIRepository,
) ChatUseCase {
	return &chatUseCase{
		catalogUC:   catalogUC,
		sessionRepo: sessionRepo,
		chatRepo:    chatRepo,
		aiRepo:      aiRepo,
	}
}

func (uc *chatUseCase) Greet(ctx context.Context, userID int64) (string, error) {
	session, err := uc.sessionRepo.Touch(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to touch session: %w", err)
	}

	if session.Greeted {
		return ShortPromptText, nil
	}

	if err := uc.sessionRepo.MarkGreeted(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to mark greeted: %w", err)
	}
	return WelcomeText, nil
}

func (uc *chatUseCase) ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error) {
	session, err := uc.sessionRepo.Touch(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to touch session: %w", err)
	}

	reply, err := uc.route(ctx, userID, username, text)
	if err != nil {
		return "", err
	}

	// Birinchi xabarda bir marta salomlashamiz, javob oldidan
	if !session.Greeted {
		if err := uc.sessionRepo.MarkGreeted(ctx, userID); err != nil {
			return "", fmt.Errorf("failed to mark greeted: %w", err)
		}
		reply = WelcomeText + "\n\n" + reply
	}

	return reply, nil
}

// route xabarni tartib bilan yo'naltirish: menu tugmalari, variant
// tanlovi, mahsulot qidiruvi, fallback
func (uc *chatUseCase) route(ctx context.Context, userID int64, username, text string) (string, error) {
	text = strings.TrimSpace(text)

	switch text {
	case MenuCatalogLabel:
		page, _, _, _, err := uc.catalogUC.GetPage(ctx, 1)
		if err != nil {
			return "", err
		}
		return page, nil
	case MenuWarrantyLabel:
		return WarrantyText, nil
	case MenuLeadtimeLabel:
		return LeadtimeText, nil
	case MenuContactLabel:
		return ContactText, nil
	}

	// Variant tanlovi faqat oldin mahsulot topilgan bo'lsa ishlaydi
	if variant := DetectVariant(text); variant != entity.VariantNone {
		code, ok, err := uc.sessionRepo.TakeLastCode(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to take last code: %w", err)
		}
		if ok {
			return fmt.Sprintf("Bạn chọn %s cho %s.\n\n%s", variant.Label(), code, ContactText), nil
		}
	}

	row, err := uc.catalogUC.FindMatch(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to find match: %w", err)
	}
	if row != nil {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			code = "mẫu đã chọn"
		}
		if err := uc.sessionRepo.SetLastCode(ctx, userID, code); err != nil {
			return "", fmt.Errorf("failed to set last code: %w", err)
		}
		return PriceLine(*row), nil
	}

	return uc.fallback(ctx, userID, username, text), nil
}

// fallback mahsulot topilmaganda: AI yoqilgan bo'lsa katalog konteksti
// bilan AI javobi, aks holda qisqa standart javob. AI xatosi
// foydalanuvchiga chiqmaydi.
func (uc *chatUseCase) fallback(ctx context.Context, userID int64, username, text string) string {
	if uc.aiRepo == nil {
		return FallbackText
	}

	aiCtx, cancel := context.WithTimeout(ctx, aiRequestTimeout)
	defer cancel()

	history, err := uc.chatRepo.GetHistory(aiCtx, userID, historyLimit)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Tarixni olishda xato (user %d): %v", userID, err)
		history = nil
	}

	reply, err := uc.aiRepo.GenerateReply(aiCtx, userID, uc.buildPrompt(aiCtx, text), history)
	if err != nil {
		logger.ErrorLogger.Printf("❌ AI javobida xato (user %d): %v", userID, err)
		return FallbackText
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return FallbackText
	}

	uc.saveExchange(userID, username, text, reply)
	return reply
}

// buildPrompt AI uchun so'rov matni: xabar + katalogdan tegishli qatorlar
func (uc *chatUseCase) buildPrompt(ctx context.Context, text string) string {
	rows, err := uc.catalogUC.SearchKeyword(ctx, text, contextRowLimit)
	if err != nil || len(rows) == 0 {
		return text
	}

	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteString("\n\nSẢN PHẨM LIÊN QUAN:\n")
	for _, row := range rows {
		sb.WriteString(PriceLine(row))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (uc *chatUseCase) saveExchange(userID int64, username, text, reply string) {
	message := entity.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		Response:  reply,
		Timestamp: time.Now(),
	}
	if err := uc.chatRepo.SaveMessage(context.Background(), message); err != nil {
		logger.ErrorLogger.Printf("❌ Xabarni saqlashda xato (user %d): %v", userID, err)
	}
}
