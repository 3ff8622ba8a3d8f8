package entity

import "time"

// UserSession foydalanuvchi suhbat holati.
// LastCode bo'sh bo'lmasa, foydalanuvchidan Thường/Cao cấp tanlovi kutilmoqda.
type UserSession struct {
	UserID   int64
	Greeted  bool
	LastCode string
	LastSeen time.Time
}
