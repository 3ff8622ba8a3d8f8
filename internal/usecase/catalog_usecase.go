package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
)

const catalogPageSize = 10

var priceDigits = regexp.MustCompile(`\d+`)

// Variant tanlov shakllari: "cao cấp" avval tekshiriladi, chunki imloda
// ustunlik beriladi
var (
	premiumPattern  = regexp.MustCompile(`(?i)\b(cao\s*cấp|cao cap)\b`)
	standardPattern = regexp.MustCompile(`(?i)\b(thường|thuong)\b`)
)

// FormatPrice narx matnini ko'rsatish shakliga keltirish:
// "17m" -> "17 triệu", "22" -> "22 triệu". Raqam bo'lmasa matn
// o'zgarishsiz qaytadi. Natija idempotent.
func FormatPrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	n := priceDigits.FindString(s)
	if n == "" {
		return s
	}
	return n + " triệu"
}

// PriceLine qator uchun narx satri: "Exc0601: Thường 17 triệu. Cao cấp 22 triệu."
// Bo'sh narxlar tushirib qoldiriladi. Ishlab chiqarish muddati bu yerda
// ataylab ko'rsatilmaydi.
func PriceLine(row entity.CatalogRow) string {
	code := strings.TrimSpace(row.Code)
	if code == "" {
		code = NoCodeLabel
	}

	parts := []string{code + ":"}
	if p := FormatPrice(row.StandardPrice); p != "" {
		parts = append(parts, fmt.Sprintf("Thường %s.", p))
	}
	if p := FormatPrice(row.PremiumPrice); p != "" {
		parts = append(parts, fmt.Sprintf("Cao cấp %s.", p))
	}
	return strings.Join(parts, " ")
}

// DetectVariant matnda Thường yoki Cao cấp tanlovi borligini aniqlash
func DetectVariant(text string) entity.Variant {
	if premiumPattern.MatchString(text) {
		return entity.VariantPremium
	}
	if standardPattern.MatchString(text) {
		return entity.VariantStandard
	}
	return entity.VariantNone
}

// CatalogUseCase katalog bilan ishlash business logikasi
type CatalogUseCase interface {
	// FindMatch so'rov bo'yicha eng mos qatorni topish
	FindMatch(ctx context.Context, query string) (*entity.CatalogRow, error)

	// SearchKeyword so'rovga mos qatorlarni olish (AI kontekst uchun)
	SearchKeyword(ctx context.Context, query string, limit int) ([]entity.CatalogRow, error)

	// GetPage katalog sahifasini matn ko'rinishida olish.
	// Sahifa raqami chegaradan chiqsa eng yaqin sahifaga keltiriladi.
	// Qaytadi: matn, haqiqiy sahifa raqami, oldingi/keyingi sahifa borligi.
	GetPage(ctx context.Context, page int) (string, int, bool, bool, error)

	// HasRows katalogda qatorlar borligini tekshirish
	HasRows(ctx context.Context) bool
}

type catalogUseCase struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogUseCase yangi katalog usecase yaratish
func NewCatalogUseCase(catalogRepo repository.CatalogRepository) CatalogUseCase {
	return &catalogUseCase{catalogRepo: catalogRepo}
}

func (uc *catalogUseCase) FindMatch(ctx context.Context, query string) (*entity.CatalogRow, error) {
	return uc.catalogRepo.FindMatch(ctx, query)
}

func (uc *catalogUseCase) SearchKeyword(ctx context.Context, query string, limit int) ([]entity.CatalogRow, error) {
	return uc.catalogRepo.SearchKeyword(ctx, query, limit)
}

func (uc *catalogUseCase) GetPage(ctx context.Context, page int) (string, int, bool, bool, error) {
	rows, err := uc.catalogRepo.GetAll(ctx)
	if err != nil {
		return "", 0, false, false, fmt.Errorf("failed to get catalog rows: %w", err)
	}
	if len(rows) == 0 {
		return NoDataText, 1, false, false, nil
	}

	totalPages := (len(rows) + catalogPageSize - 1) / catalogPageSize
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * catalogPageSize
	end := start + catalogPageSize
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Danh sách sản phẩm (trang %d/%d):\n", page, totalPages))
	for _, row := range rows[start:end] {
		sb.WriteString(PriceLine(row))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n"), page, page > 1, page < totalPages, nil
}

func (uc *catalogUseCase) HasRows(ctx context.Context) bool {
	rows, err := uc.catalogRepo.GetAll(ctx)
	return err == nil && len(rows) > 0
}
