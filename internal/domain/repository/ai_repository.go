package repository

import (
	"context"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// AIRepository tashqi til modeli bilan ishlash uchun interface.
// Sekin va xato qaytarishi mumkin bo'lgan tashqi xizmat sifatida qaraladi.
type AIRepository interface {
	// GenerateReply suhbat tarixi bilan javob yaratish
	GenerateReply(ctx context.Context, userID int64, message string, history []entity.Message) (string, error)

	// Close clientni yopish
	Close() error
}
