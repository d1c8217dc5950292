package parser

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/storefront/internal/domain/entity"
)

// DefaultCategory kategoriya ustuni bo'lmasa ishlatiladi
const DefaultCategory = "other"

// ExcelParser xlsx fayldan mahsulot draftlarini o'qiydi
type ExcelParser struct {
	log logrus.FieldLogger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(log logrus.FieldLogger) *ExcelParser {
	return &ExcelParser{log: log.WithField("component", "excel_parser")}
}

// ParseDrafts Excel fayldan draftlarni o'qish
func (e *ExcelParser) ParseDrafts(ctx context.Context, filePath string) ([]entity.ProductDraft, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open excel file")
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseDraftsFromBytes byte array dan parse qilish
func (e *ExcelParser) ParseDraftsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.ProductDraft, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open excel %s", filename)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile birinchi sheetni parse qilish. Birinchi qator header bo'lishi shart.
func (e *ExcelParser) parseExcelFile(f *excelize.File) ([]entity.ProductDraft, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rows")
	}
	if len(rows) < 2 {
		return nil, errors.New("excel file has no data rows")
	}

	columns := mapColumns(rows[0])
	nameCol, ok := columns["name"]
	if !ok {
		return nil, errors.New("name column not found in header")
	}
	priceCol, ok := columns["price"]
	if !ok {
		return nil, errors.New("price column not found in header")
	}
	e.log.WithField("columns", columns).Debug("excel column mapping")

	var drafts []entity.ProductDraft
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cell(row, nameCol)
		priceStr := cell(row, priceCol)
		if name == "" || priceStr == "" {
			e.log.WithField("row", i+1).Debug("skipping row without name or price")
			continue
		}

		price, err := parsePrice(priceStr)
		if err != nil {
			e.log.WithField("row", i+1).WithError(err).Warn("invalid price, skipping row")
			continue
		}

		draft := entity.ProductDraft{
			Name:     name,
			Price:    price,
			Category: DefaultCategory,
		}
		if idx, ok := columns["category"]; ok {
			if category := cell(row, idx); category != "" {
				draft.Category = category
			}
		}
		if idx, ok := columns["description"]; ok {
			draft.Description = cell(row, idx)
		}
		if idx, ok := columns["image"]; ok {
			draft.Image = cell(row, idx)
		}
		if idx, ok := columns["stock"]; ok {
			if stockStr := cell(row, idx); stockStr != "" {
				if stock, err := parsePrice(stockStr); err == nil && stock >= 0 {
					draft.Stock = int(stock)
				}
			}
		}

		drafts = append(drafts, draft)
	}

	e.log.WithField("count", len(drafts)).Info("excel drafts parsed")

	if len(drafts) == 0 {
		return nil, errors.Errorf("no valid products found in excel file (%d data rows)", len(rows)-1)
	}
	return drafts, nil
}

// mapColumns header qatoridan column mapping yaratish
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))
		var field string

		switch {
		case contains(colName, "name", "product", "title"):
			field = "name"
		case contains(colName, "category", "type"):
			field = "category"
		case contains(colName, "price", "cost", "$", "usd"):
			field = "price"
		case contains(colName, "description", "details", "info"):
			field = "description"
		case contains(colName, "image", "photo", "picture", "url"):
			field = "image"
		case contains(colName, "stock", "qty", "quantity"):
			field = "stock"
		default:
			continue
		}

		// birinchi mos ustun yutadi
		if _, taken := columnMap[field]; !taken {
			columnMap[field] = i
		}
	}

	return columnMap
}

// contains tekshirish uchun helper
func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parsePrice narxni parse qilish ("$1,299.00" -> 1299)
func parsePrice(priceStr string) (float64, error) {
	priceStr = strings.ToLower(strings.TrimSpace(priceStr))
	if priceStr == "" {
		return 0, errors.New("empty price")
	}

	for _, r := range []string{",", " ", "$", "€", "£", "usd", "eur"} {
		priceStr = strings.ReplaceAll(priceStr, r, "")
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return 0, errors.Errorf("invalid price format: %s", priceStr)
	}
	return price, nil
}
