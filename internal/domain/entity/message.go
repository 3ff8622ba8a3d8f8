package entity

import "time"

// Message foydalanuvchi xabari va unga berilgan javob (AI fallback tarixi uchun)
type Message struct {
	ID        string
	UserID    int64
	Username  string
	Text      string
	Response  string
	Timestamp time.Time
}

// ChatContext suhbat kontekstini saqlash uchun
type ChatContext struct {
	UserID   int64
	Messages []Message
	LastUsed time.Time
}
