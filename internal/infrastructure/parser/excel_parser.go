package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/eccues/eccues-bot/internal/domain/entity"
)

// parseExcelCatalog Excel fayldan katalogni o'qish. Birinchi sheet olinadi,
// header normalizatsiyasi CSV bilan bir xil.
func parseExcelCatalog(data []byte, filename string) (*entity.Catalog, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open excel: %v", ErrCatalogLoadFailed, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: excel file has no sheets", ErrCatalogLoadFailed)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rows: %v", ErrCatalogLoadFailed, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: excel file is empty", ErrCatalogLoadFailed)
	}

	catalog, err := buildCatalog(rows, filename, "xlsx")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogLoadFailed, err)
	}
	return catalog, nil
}
