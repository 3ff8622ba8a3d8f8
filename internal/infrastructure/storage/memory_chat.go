package storage

import (
	"context"
	"sync"
	"time"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
)

type memoryChatRepository struct {
	mu       sync.RWMutex
	contexts map[int64]*entity.ChatContext
	maxSize  int
}

// NewMemoryChatRepository in-memory chat repository yaratish
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		contexts: make(map[int64]*entity.ChatContext),
		maxSize:  maxContextSize,
	}
}

// SaveMessage xabarni saqlash
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chatCtx, exists := m.contexts[message.UserID]
	if !exists {
		chatCtx = &entity.ChatContext{
			UserID:   message.UserID,
			Messages: []entity.Message{},
		}
		m.contexts[message.UserID] = chatCtx
	}

	chatCtx.Messages = append(chatCtx.Messages, message)
	chatCtx.LastUsed = time.Now()

	// Maksimal hajmni nazorat qilish
	if len(chatCtx.Messages) > m.maxSize {
		chatCtx.Messages = chatCtx.Messages[len(chatCtx.Messages)-m.maxSize:]
	}

	return nil
}

// GetHistory foydalanuvchi chat tarixini olish
func (m *memoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chatCtx, exists := m.contexts[userID]
	if !exists {
		return []entity.Message{}, nil
	}

	messages := chatCtx.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	result := make([]entity.Message, len(messages))
	copy(result, messages)
	return result, nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, userID)
	return nil
}
