package storage

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSession_TouchConcurrent(t *testing.T) {
	repo := NewMemorySessionRepository().(*memorySessionRepository)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			if _, err := repo.Touch(context.Background(), userID%10); err != nil {
				t.Errorf("Touch: %v", err)
			}
		}(int64(i))
	}
	wg.Wait()

	if len(repo.sessions) != 10 {
		t.Fatalf("expected 10 sessions, got %d", len(repo.sessions))
	}
}

func TestSession_MarkGreeted(t *testing.T) {
	repo := NewMemorySessionRepository()

	session, err := repo.Touch(context.Background(), 1)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if session.Greeted {
		t.Fatal("new session should not be greeted")
	}

	if err := repo.MarkGreeted(context.Background(), 1); err != nil {
		t.Fatalf("MarkGreeted: %v", err)
	}

	session, err = repo.Touch(context.Background(), 1)
	if err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if !session.Greeted {
		t.Fatal("session should be greeted after MarkGreeted")
	}
}

func TestSession_TakeLastCode(t *testing.T) {
	repo := NewMemorySessionRepository()

	// Kod o'rnatilmagan bo'lsa
	if _, ok, err := repo.TakeLastCode(context.Background(), 1); err != nil || ok {
		t.Fatalf("expected no pending code, got ok=%v err=%v", ok, err)
	}

	if err := repo.SetLastCode(context.Background(), 1, "Exc0601"); err != nil {
		t.Fatalf("SetLastCode: %v", err)
	}

	code, ok, err := repo.TakeLastCode(context.Background(), 1)
	if err != nil {
		t.Fatalf("TakeLastCode: %v", err)
	}
	if !ok || code != "Exc0601" {
		t.Fatalf("expected Exc0601, got %q ok=%v", code, ok)
	}

	// Ikkinchi olish bo'sh bo'lishi kerak
	if _, ok, _ := repo.TakeLastCode(context.Background(), 1); ok {
		t.Fatal("second take should return nothing")
	}
}

func TestSession_SetLastCodeOverwrites(t *testing.T) {
	repo := NewMemorySessionRepository()

	_ = repo.SetLastCode(context.Background(), 1, "Exc0601")
	_ = repo.SetLastCode(context.Background(), 1, "Ace2187")

	code, ok, err := repo.TakeLastCode(context.Background(), 1)
	if err != nil || !ok {
		t.Fatalf("TakeLastCode: ok=%v err=%v", ok, err)
	}
	if code != "Ace2187" {
		t.Fatalf("expected last write to win, got %q", code)
	}
}

func TestSession_CleanupExpired(t *testing.T) {
	repo := NewMemorySessionRepository().(*memorySessionRepository)

	_, _ = repo.Touch(context.Background(), 1)
	_, _ = repo.Touch(context.Background(), 2)

	repo.mu.Lock()
	repo.sessions[1].LastSeen = time.Now().Add(-sessionTTL - time.Minute)
	repo.mu.Unlock()

	removed := repo.cleanupExpired()
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	repo.mu.Lock()
	_, oldExists := repo.sessions[1]
	_, newExists := repo.sessions[2]
	repo.mu.Unlock()

	if oldExists || !newExists {
		t.Fatalf("cleanup removed wrong sessions: old=%v new=%v", oldExists, newExists)
	}
}

func TestSession_EvictOldest(t *testing.T) {
	repo := NewMemorySessionRepository().(*memorySessionRepository)

	base := time.Now()
	repo.mu.Lock()
	for i := int64(1); i <= 5; i++ {
		_ = repo.getOrCreate(i)
		repo.sessions[i].LastSeen = base.Add(time.Duration(i) * time.Minute)
	}
	repo.evictOldest(2)
	repo.mu.Unlock()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.sessions) != 3 {
		t.Fatalf("expected 3 sessions after eviction, got %d", len(repo.sessions))
	}
	for _, evicted := range []int64{1, 2} {
		if _, exists := repo.sessions[evicted]; exists {
			t.Fatalf("session %d should be evicted", evicted)
		}
	}
}
