package repository

import (
	"context"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// CatalogParser katalog faylini o'qish uchun interface
type CatalogParser interface {
	// ParseCatalog fayldan katalogni o'qish
	ParseCatalog(ctx context.Context, path string) (*entity.Catalog, error)

	// ParseCatalogFromBytes byte array dan parse qilish
	ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) (*entity.Catalog, error)
}
