package repository

import (
	"context"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// SessionRepository foydalanuvchi suhbat holati bilan ishlash uchun interface
type SessionRepository interface {
	// Touch sessiyani olish (bo'lmasa yaratish) va LastSeen ni yangilash
	Touch(ctx context.Context, userID int64) (entity.UserSession, error)

	// MarkGreeted foydalanuvchi bilan salomlashildi deb belgilash
	MarkGreeted(ctx context.Context, userID int64) error

	// SetLastCode oxirgi topilgan mahsulot kodini eslab qolish
	SetLastCode(ctx context.Context, userID int64, code string) error

	// TakeLastCode kutilayotgan kodni olish va tozalash (atomik)
	TakeLastCode(ctx context.Context, userID int64) (string, bool, error)

	// StartCleanup eski sessiyalarni davriy tozalashni ishga tushirish
	StartCleanup(ctx context.Context)
}
