package repository

import (
	"context"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// CatalogRepository katalog bilan ishlash uchun interface
type CatalogRepository interface {
	// ReplaceCatalog butun katalogni almashtirish
	ReplaceCatalog(ctx context.Context, catalog entity.Catalog) error

	// GetCatalog katalogni olish
	GetCatalog(ctx context.Context) (*entity.Catalog, error)

	// GetAll barcha qatorlarni katalog tartibida olish
	GetAll(ctx context.Context) ([]entity.CatalogRow, error)

	// FindMatch so'rov bo'yicha eng mos qatorni topish (topilmasa nil)
	FindMatch(ctx context.Context, query string) (*entity.CatalogRow, error)

	// SearchKeyword so'rovga mos qatorlarni katalog tartibida olish
	SearchKeyword(ctx context.Context, query string, limit int) ([]entity.CatalogRow, error)
}
