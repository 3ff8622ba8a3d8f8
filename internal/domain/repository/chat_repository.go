package repository

import (
	"context"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// ChatRepository suhbat tarixi bilan ishlash uchun interface
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory foydalanuvchi chat tarixini olish (oxirgi limit ta)
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error
}
