package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// Kanonik ustun nomlari
const (
	colCode          = "ma"
	colStandardPrice = "hang_thuong"
	colPremiumPrice  = "cao_cap"
	colLeadTime      = "thoi_gian_lam"
)

// headerSynonyms header imlolarini kanonik nomlarga keltirish xaritasi.
// Katalog fayllari turli encodinglarda saqlangani uchun buzilgan
// (mojibake) variantlar ham ro'yxatda bor.
var headerSynonyms = map[string]string{
	"Mã":             colCode,
	"Hàng thường":    colStandardPrice,
	"Hàng th??ng":    colStandardPrice,
	"Cao cấp":        colPremiumPrice,
	"Cao c?p":        colPremiumPrice,
	"Thời gian làm":  colLeadTime,
	"Th?i gian làm":  colLeadTime,
	colCode:          colCode,
	colStandardPrice: colStandardPrice,
	colPremiumPrice:  colPremiumPrice,
	colLeadTime:      colLeadTime,
}

// tableColumn katalogdagi bitta ustun: indeks va normallashtirilgan nom
type tableColumn struct {
	index     int
	name      string
	canonical string // bo'sh bo'lsa bu qo'shimcha ustun
}

// buildCatalog header va data qatorlaridan katalog yaratish.
// Header bo'shliqlardan tozalanadi, "Unnamed" placeholder ustunlar
// tashlab yuboriladi, zaxiralangan maydonlar har doim to'ldiriladi.
func buildCatalog(records [][]string, source, encodingName string) (*entity.Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog has no header row")
	}

	columns := mapColumns(records[0])

	var extraColumns []string
	for _, col := range columns {
		if col.canonical == "" {
			extraColumns = append(extraColumns, col.name)
		}
	}

	rows := make([]entity.CatalogRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if isEmptyRow(record) {
			continue
		}
		rows = append(rows, buildRow(record, columns))
	}

	return &entity.Catalog{
		Rows:         rows,
		ExtraColumns: extraColumns,
		Encoding:     encodingName,
		Source:       source,
		LoadedAt:     time.Now(),
	}, nil
}

// mapColumns header qatoridan ustunlar ro'yxatini yaratish
func mapColumns(header []string) []tableColumn {
	var columns []tableColumn
	seenCanonical := make(map[string]bool)

	for i, raw := range header {
		name := strings.TrimSpace(strings.TrimPrefix(raw, "\uFEFF"))
		if name == "" {
			continue
		}
		// Buzilgan headerlarning "Unnamed: N" qoldiqlarini tashlab yuboramiz
		if strings.HasPrefix(strings.ToLower(name), "unnamed") {
			continue
		}

		if canonical, ok := headerSynonyms[name]; ok && !seenCanonical[canonical] {
			seenCanonical[canonical] = true
			columns = append(columns, tableColumn{index: i, name: name, canonical: canonical})
			continue
		}

		columns = append(columns, tableColumn{index: i, name: name})
	}

	return columns
}

// buildRow bitta data qatoridan CatalogRow yaratish
func buildRow(record []string, columns []tableColumn) entity.CatalogRow {
	row := entity.CatalogRow{}

	for _, col := range columns {
		value := ""
		if col.index < len(record) {
			value = strings.TrimSpace(record[col.index])
		}

		switch col.canonical {
		case colCode:
			row.Code = value
		case colStandardPrice:
			row.StandardPrice = value
		case colPremiumPrice:
			row.PremiumPrice = value
		case colLeadTime:
			row.LeadTime = value
		default:
			row.Extra = append(row.Extra, entity.ExtraField{Name: col.name, Value: value})
		}
	}

	return row
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
