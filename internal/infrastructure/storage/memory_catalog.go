package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
)

// Mahsulot kodi shakli: ixtiyoriy harflar + kamida 2 raqam + davomi
// (masalan: 2187, Ace2187, Exc0601)
var codePattern = regexp.MustCompile(`\b[A-Za-z]*\d{2,}[A-Za-z0-9]*\b`)

type memoryCatalogRepository struct {
	mu      sync.RWMutex
	catalog entity.Catalog
	loaded  bool
}

// NewMemoryCatalogRepository in-memory katalog repository yaratish.
// Katalog yuklangandan keyin faqat o'qiladi, shuning uchun handlerlar
// orasida locksiz bo'lishishi xavfsiz bo'lardi; RWMutex ReplaceCatalog
// bilan yuklash paytidagi poygani yopadi.
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &memoryCatalogRepository{}
}

// ReplaceCatalog butun katalogni almashtirish
func (m *memoryCatalogRepository) ReplaceCatalog(ctx context.Context, catalog entity.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.catalog = catalog
	m.loaded = true
	return nil
}

// GetCatalog katalogni olish
func (m *memoryCatalogRepository) GetCatalog(ctx context.Context) (*entity.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.loaded {
		return nil, fmt.Errorf("catalog not loaded")
	}

	catalog := m.catalog
	return &catalog, nil
}

// GetAll barcha qatorlarni katalog tartibida olish
func (m *memoryCatalogRepository) GetAll(ctx context.Context) ([]entity.CatalogRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]entity.CatalogRow, len(m.catalog.Rows))
	copy(rows, m.catalog.Rows)
	return rows, nil
}

// FindMatch so'rov bo'yicha eng mos qatorni topish. Ikki bosqich:
// avval kod shakli (eng aniq identifikator), keyin butun so'rov substring
// sifatida. Har ikkisida ham katalog tartibidagi birinchi mos qator
// qaytadi, natija deterministik bo'ladi. Topilmasa nil.
func (m *memoryCatalogRepository) FindMatch(ctx context.Context, query string) (*entity.CatalogRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.TrimSpace(query)
	if query == "" || len(m.catalog.Rows) == 0 {
		return nil, nil
	}

	// 1) Kod bosqichi: so'rovda kod shaklidagi token bo'lsa, shu token
	// bo'yicha qidiramiz. Token topilmasa bosqich butunlay o'tkaziladi.
	if token := codePattern.FindString(query); token != "" {
		if row := m.findBySubstring(strings.ToLower(token)); row != nil {
			return row, nil
		}
	}

	// 2) Kalit so'z bosqichi: butun so'rov substring sifatida
	if row := m.findBySubstring(strings.ToLower(query)); row != nil {
		return row, nil
	}

	return nil, nil
}

// findBySubstring key ni har bir qatorning har bir maydonida qidirish.
// Lock egallangan holda chaqiriladi.
func (m *memoryCatalogRepository) findBySubstring(key string) *entity.CatalogRow {
	for i := range m.catalog.Rows {
		if rowContains(m.catalog.Rows[i], key) {
			row := m.catalog.Rows[i]
			return &row
		}
	}
	return nil
}

// SearchKeyword so'rovga mos qatorlarni katalog tartibida olish
// (AI fallback uchun kontekst)
func (m *memoryCatalogRepository) SearchKeyword(ctx context.Context, query string, limit int) ([]entity.CatalogRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, nil
	}

	tokens := queryTokens(key)

	var results []entity.CatalogRow
	for _, row := range m.catalog.Rows {
		if rowContains(row, key) || rowMatchesTokens(row, tokens) {
			results = append(results, row)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

func rowContains(row entity.CatalogRow, key string) bool {
	for _, field := range row.Fields() {
		if strings.Contains(strings.ToLower(field), key) {
			return true
		}
	}
	return false
}

func rowMatchesTokens(row entity.CatalogRow, tokens []string) bool {
	for _, token := range tokens {
		if rowContains(row, token) {
			return true
		}
	}
	return false
}

// queryTokens so'rovni qidiruv tokenlariga bo'lish
func queryTokens(q string) []string {
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(q) {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
