package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV_UTF8(t *testing.T) {
	data := []byte("Mã,Hàng thường,Cao cấp,Thời gian làm\nExc0601,17m,22m,3 tháng\nAce2187,9m,,2 tháng\n")

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	if catalog.Encoding != "utf-8" {
		t.Fatalf("expected utf-8 encoding, got %q", catalog.Encoding)
	}
	if len(catalog.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(catalog.Rows))
	}

	row := catalog.Rows[0]
	if row.Code != "Exc0601" || row.StandardPrice != "17m" || row.PremiumPrice != "22m" || row.LeadTime != "3 tháng" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if catalog.Rows[1].PremiumPrice != "" {
		t.Fatalf("expected empty premium price, got %q", catalog.Rows[1].PremiumPrice)
	}
}

func TestParseCSV_UTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Mã,Hàng thường,Cao cấp\nExc0601,17m,22m\n")...)

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	if catalog.Rows[0].Code != "Exc0601" {
		t.Fatalf("BOM header not normalized, row: %+v", catalog.Rows[0])
	}
}

func TestParseCSV_MojibakeHeaders(t *testing.T) {
	data := []byte("Mã,Hàng th??ng,Cao c?p,Th?i gian làm\n2187,9m,12m,2 tháng\n")

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	row := catalog.Rows[0]
	if row.StandardPrice != "9m" || row.PremiumPrice != "12m" || row.LeadTime != "2 tháng" {
		t.Fatalf("mojibake headers not mapped, row: %+v", row)
	}
}

func TestParseCSV_UnnamedAndExtraColumns(t *testing.T) {
	data := []byte("Mã,Hàng thường,Unnamed: 2,Ghi chú\nExc0601,17m,junk,khảm ngọc\n")

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	row := catalog.Rows[0]
	// Zaxiralangan maydonlar manbada yo'q bo'lsa ham bo'sh bo'lishi kerak
	if row.PremiumPrice != "" || row.LeadTime != "" {
		t.Fatalf("reserved fields should default to empty, row: %+v", row)
	}
	if len(row.Extra) != 1 || row.Extra[0].Name != "Ghi chú" || row.Extra[0].Value != "khảm ngọc" {
		t.Fatalf("extra column not preserved, row: %+v", row)
	}
	if len(catalog.ExtraColumns) != 1 || catalog.ExtraColumns[0] != "Ghi chú" {
		t.Fatalf("unexpected extra columns: %v", catalog.ExtraColumns)
	}
}

func TestParseCSV_Latin1Fallback(t *testing.T) {
	// 0xE9 utf-8 sifatida invalid, latin1 da é bo'ladi
	data := []byte("Ma,Hang thuong\nzen\xe9,17m\n")

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	if catalog.Encoding != "latin1" {
		t.Fatalf("expected latin1 encoding, got %q", catalog.Encoding)
	}
	if catalog.Rows[0].Extra[0].Value != "zené" {
		t.Fatalf("latin1 decode failed, row: %+v", catalog.Rows[0])
	}
}

func TestParseCSV_SkipsEmptyRows(t *testing.T) {
	data := []byte("Mã,Hàng thường\nExc0601,17m\n,\n\nAce2187,9m\n")

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), data, "Exc.csv")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	if len(catalog.Rows) != 2 {
		t.Fatalf("expected 2 rows after skipping empties, got %d", len(catalog.Rows))
	}
}

func TestParseCatalog_MissingFile(t *testing.T) {
	p := NewCatalogParser()
	_, err := p.ParseCatalog(context.Background(), filepath.Join(t.TempDir(), "yoq.csv"))
	if !errors.Is(err, ErrCatalogLoadFailed) {
		t.Fatalf("expected ErrCatalogLoadFailed, got %v", err)
	}
}

func TestParseCatalog_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	p := NewCatalogParser()
	_, err := p.ParseCatalog(context.Background(), path)
	if !errors.Is(err, ErrCatalogLoadFailed) {
		t.Fatalf("expected ErrCatalogLoadFailed, got %v", err)
	}
}

func TestParseExcelCatalog(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Mã", "Hàng thường", "Cao cấp"},
		{"Exc0601", "17m", "22m"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write buffer: %v", err)
	}

	p := NewCatalogParser()
	catalog, err := p.ParseCatalogFromBytes(context.Background(), buf.Bytes(), "Exc.xlsx")
	if err != nil {
		t.Fatalf("ParseCatalogFromBytes returned error: %v", err)
	}

	if catalog.Encoding != "xlsx" {
		t.Fatalf("expected xlsx encoding marker, got %q", catalog.Encoding)
	}
	row := catalog.Rows[0]
	if row.Code != "Exc0601" || row.StandardPrice != "17m" || row.PremiumPrice != "22m" {
		t.Fatalf("unexpected row: %+v", row)
	}
}
