package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Recognised header cells. Matching is case-insensitive; other columns are
// ignored.
var xlsxColumns = []string{"name", "type", "cuisine", "lat", "lon", "vegetarian", "vegan", "takeaway"}

// XLSXCatalogSource reads the first sheet of a spreadsheet export. The first
// row is the header.
type XLSXCatalogSource struct {
	path string
}

func NewXLSXCatalogSource(path string) *XLSXCatalogSource {
	return &XLSXCatalogSource{path: path}
}

func (s *XLSXCatalogSource) Name() string {
	return "xlsx://" + s.path
}

func (s *XLSXCatalogSource) Load(ctx context.Context) ([]model.RawRestaurant, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	index := map[string]int{}
	for i, cell := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("XLSX header has no name column")
	}

	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	entries := make([]model.RawRestaurant, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := model.RawRestaurant{
			Name: cell(row, "name"),
			Type: cell(row, "type"),
			Lat:  parseCoordinate(cell(row, "lat")),
			Lon:  parseCoordinate(cell(row, "lon")),
		}
		if cuisine := cell(row, "cuisine"); cuisine != "" {
			entry.Cuisine, _ = json.Marshal(cuisine)
		}
		if v := cell(row, "vegetarian"); v != "" {
			entry.Vegetarian = v
		}
		if v := cell(row, "vegan"); v != "" {
			entry.Vegan = v
		}
		if v := cell(row, "takeaway"); v != "" {
			entry.Takeaway = v
		}

		if entry.Name == "" && entry.Lat == nil && entry.Lon == nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	logger.Info("XLSX catalog read", map[string]interface{}{
		"path":    s.path,
		"sheet":   sheetName,
		"rows":    len(rows) - 1,
		"entries": len(entries),
		"skipped": skipped,
	})
	return entries, nil
}

func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &v
}

// NewCatalogSourceForPath picks a file based source from the extension.
func NewCatalogSourceForPath(path string) CatalogSource {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return NewXLSXCatalogSource(path)
	}
	return NewFileCatalogSource(path)
}
