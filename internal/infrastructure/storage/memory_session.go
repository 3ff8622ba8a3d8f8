package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
	"github.com/eccues/eccues-bot/pkg/logger"
)

const (
	sessionTTL             = 12 * time.Hour
	sessionCleanupInterval = 15 * time.Minute
	maxSessions            = 10000
)

type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[int64]*entity.UserSession
}

// NewMemorySessionRepository in-memory sessiya repository yaratish
func NewMemorySessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[int64]*entity.UserSession),
	}
}

// Touch sessiyani olish yoki yaratish va LastSeen ni yangilash
func (m *memorySessionRepository) Touch(ctx context.Context, userID int64) (entity.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getOrCreate(userID)
	session.LastSeen = time.Now()
	return *session, nil
}

// MarkGreeted foydalanuvchi salomlashgan deb belgilash
func (m *memorySessionRepository) MarkGreeted(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getOrCreate(userID)
	session.Greeted = true
	session.LastSeen = time.Now()
	return nil
}

// SetLastCode oxirgi mos kelgan mahsulot kodini saqlash.
// Keyingi yozuv oldingisini almashtiradi.
func (m *memorySessionRepository) SetLastCode(ctx context.Context, userID int64, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getOrCreate(userID)
	session.LastCode = code
	session.LastSeen = time.Now()
	return nil
}

// TakeLastCode kutayotgan kodni atomar olish va tozalash.
// Variant tanlovi faqat bitta marta ishlashi uchun olish va tozalash
// bitta lock ostida bo'ladi.
func (m *memorySessionRepository) TakeLastCode(ctx context.Context, userID int64) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists || session.LastCode == "" {
		return "", false, nil
	}

	code := session.LastCode
	session.LastCode = ""
	session.LastSeen = time.Now()
	return code, true, nil
}

// StartCleanup eskirgan sessiyalarni davriy tozalash.
// Context bekor qilinganda to'xtaydi.
func (m *memorySessionRepository) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := m.cleanupExpired()
			if removed > 0 {
				logger.InfoLogger.Printf("🧹 %d ta eskirgan sessiya tozalandi", removed)
			}
		}
	}
}

// getOrCreate lock egallangan holda chaqiriladi
func (m *memorySessionRepository) getOrCreate(userID int64) *entity.UserSession {
	if session, exists := m.sessions[userID]; exists {
		return session
	}

	if len(m.sessions) >= maxSessions {
		m.evictOldest(maxSessions / 10)
	}

	session := &entity.UserSession{UserID: userID}
	m.sessions[userID] = session
	return session
}

func (m *memorySessionRepository) cleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-sessionTTL)
	removed := 0
	for userID, session := range m.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

// evictOldest eng uzoq ishlatilmagan sessiyalarni o'chirish.
// Lock egallangan holda chaqiriladi.
func (m *memorySessionRepository) evictOldest(count int) {
	type candidate struct {
		userID   int64
		lastSeen time.Time
	}

	candidates := make([]candidate, 0, len(m.sessions))
	for userID, session := range m.sessions {
		candidates = append(candidates, candidate{userID: userID, lastSeen: session.LastSeen})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lastSeen.Before(candidates[j].lastSeen)
	})

	if count > len(candidates) {
		count = len(candidates)
	}
	for _, c := range candidates[:count] {
		delete(m.sessions, c.userID)
	}
}
