package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
)

// ErrCatalogLoadFailed katalog faylini hech bir encoding bilan o'qib
// bo'lmaganda qaytadi. Caller bu holatda bo'sh katalog bilan davom etadi.
var ErrCatalogLoadFailed = errors.New("catalog load failed")

var errInvalidEncoding = errors.New("invalid byte sequence for encoding")

// csvEncodings urinish tartibi qat'iy: birinchi muvaffaqiyatli parse g'olib
var csvEncodings = []struct {
	name   string
	decode func([]byte) ([]byte, error)
}{
	{"utf-8", decodeUTF8},
	{"utf-8-sig", decodeUTF8BOM},
	{"latin1", decodeCharset(charmap.ISO8859_1)},
	{"cp1252", decodeCharset(charmap.Windows1252)},
	{"gb18030", decodeCharset(simplifiedchinese.GB18030)},
}

type catalogParser struct{}

// NewCatalogParser yangi katalog parser yaratish.
// Fayl kengaytmasiga qarab CSV yoki Excel o'qiladi.
func NewCatalogParser() repository.CatalogParser {
	return &catalogParser{}
}

// ParseCatalog fayldan katalogni o'qish
func (p *catalogParser) ParseCatalog(ctx context.Context, path string) (*entity.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoadFailed, err)
	}
	return p.ParseCatalogFromBytes(ctx, data, filepath.Base(path))
}

// ParseCatalogFromBytes byte array dan parse qilish
func (p *catalogParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) (*entity.Catalog, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return parseExcelCatalog(data, filename)
	default:
		return parseCSVCatalog(data, filename)
	}
}

// parseCSVCatalog encodinglarni qat'iy tartibda sinab CSV o'qish.
// Muvaffaqiyat deb CSV strukturasi parse bo'lishi olinadi, mazmun emas.
func parseCSVCatalog(data []byte, filename string) (*entity.Catalog, error) {
	for _, attempt := range csvEncodings {
		decoded, err := attempt.decode(data)
		if err != nil {
			continue
		}

		records, err := readCSV(decoded)
		if err != nil || len(records) == 0 {
			continue
		}

		catalog, err := buildCatalog(records, filename, attempt.name)
		if err != nil {
			continue
		}
		return catalog, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrCatalogLoadFailed, filename)
}

// readCSV CSV strukturasini o'qish
func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func decodeUTF8(data []byte) ([]byte, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidEncoding
	}
	return data, nil
}

func decodeUTF8BOM(data []byte) ([]byte, error) {
	trimmed := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(trimmed) {
		return nil, errInvalidEncoding
	}
	return trimmed, nil
}

func decodeCharset(enc encoding.Encoding) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		return enc.NewDecoder().Bytes(data)
	}
}
