package dataprocessing

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "ordercli/internal/errors"
	"ordercli/pkg/contracts/domain"
)

// columnMap maps canonical column names to their position in the header row.
type columnMap map[string]int

// get returns the trimmed cell under the named column, or "" when the row
// is too short.
func (m columnMap) get(row []string, col string) string {
	idx, ok := m[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// has reports whether the named column was found in the header.
func (m columnMap) has(col string) bool {
	_, ok := m[col]
	return ok
}

// mapOrderColumns locates the orders columns in a header row. Matching is
// case-insensitive and ignores extra columns; created_at is accepted for
// order_date. Returns a SCHEMA error naming the first missing column.
func mapOrderColumns(header []string) (columnMap, error) {
	cols := make(columnMap)
	for i, h := range header {
		switch normalizeHeader(h) {
		case ColOrderID:
			cols[ColOrderID] = i
		case ColUserID:
			cols[ColUserID] = i
		case ColAmount:
			cols[ColAmount] = i
		case ColQuantity:
			cols[ColQuantity] = i
		case ColStatus:
			cols[ColStatus] = i
		case ColOrderDate, ColCreatedAt:
			if !cols.has(ColOrderDate) {
				cols[ColOrderDate] = i
			}
		}
	}

	for _, required := range []string{ColOrderID, ColUserID, ColAmount, ColStatus, ColOrderDate} {
		if !cols.has(required) {
			return nil, apperrors.NewSchemaError("orders", required)
		}
	}
	return cols, nil
}

// mapUserColumns locates the users columns in a header row.
func mapUserColumns(header []string) (columnMap, error) {
	cols := make(columnMap)
	for i, h := range header {
		switch normalizeHeader(h) {
		case ColUserID:
			cols[ColUserID] = i
		case ColCountry:
			cols[ColCountry] = i
		}
	}

	for _, required := range []string{ColUserID, ColCountry} {
		if !cols.has(required) {
			return nil, apperrors.NewSchemaError("users", required)
		}
	}
	return cols, nil
}

// normalizeHeader lowercases and trims a header cell, stripping the UTF-8
// BOM that Excel prepends to CSV exports.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
}

// rawOrderFromRow extracts one raw order from a data row using the column map.
func rawOrderFromRow(cols columnMap, row []string) domain.RawOrder {
	return domain.RawOrder{
		OrderID:   cols.get(row, ColOrderID),
		UserID:    cols.get(row, ColUserID),
		Amount:    cols.get(row, ColAmount),
		Quantity:  cols.get(row, ColQuantity),
		Status:    cols.get(row, ColStatus),
		OrderDate: cols.get(row, ColOrderDate),
	}
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseOrdersCSV reads a raw orders CSV export. No typing or cleaning
// happens here; cells are kept as strings for the cleaning stage.
func ParseOrdersCSV(path string) ([]domain.RawOrder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open orders file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged exports are common, tolerate them

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewSchemaError("orders", ColOrderID).
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read orders header", err)
	}

	cols, err := mapOrderColumns(header)
	if err != nil {
		return nil, err
	}

	var orders []domain.RawOrder
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read orders row", err)
		}
		if isEmptyRow(row) {
			continue
		}
		orders = append(orders, rawOrderFromRow(cols, row))
	}

	slog.Info("orders export loaded",
		slog.String("path", filepath.Base(path)),
		slog.Int("rows", len(orders)))

	return orders, nil
}

// ParseUsersCSV reads the users reference table.
func ParseUsersCSV(path string) ([]domain.User, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open users file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewSchemaError("users", ColUserID).
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read users header", err)
	}

	cols, err := mapUserColumns(header)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read users row", err)
		}
		if isEmptyRow(row) {
			continue
		}
		users = append(users, domain.User{
			UserID:  cols.get(row, ColUserID),
			Country: strings.ToUpper(cols.get(row, ColCountry)),
		})
	}

	slog.Info("users table loaded",
		slog.String("path", filepath.Base(path)),
		slog.Int("rows", len(users)))

	return users, nil
}

// ParseOrdersXLSX reads a raw orders export in Excel format. Storefront
// back offices hand these out instead of CSV; the sheet holding the orders
// is found by probing common names, then by scanning every sheet for a
// header row that carries the required columns.
func ParseOrdersXLSX(path string) ([]domain.RawOrder, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open orders workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, headerRow, cols := findOrdersSheet(f)
	if cols == nil {
		return nil, apperrors.NewSchemaError("orders", ColOrderID).
			WithContext("path", path)
	}

	var orders []domain.RawOrder
	for i := headerRow + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		orders = append(orders, rawOrderFromRow(cols, rows[i]))
	}

	slog.Info("orders workbook loaded",
		slog.String("path", filepath.Base(path)),
		slog.Int("rows", len(orders)))

	return orders, nil
}

// findOrdersSheet locates the sheet and header row holding the orders data.
func findOrdersSheet(f *excelize.File) ([][]string, int, columnMap) {
	// Common sheet names first, then everything the workbook has.
	candidates := []string{"Orders", "orders", "Export", "Sheet1"}
	candidates = append(candidates, f.GetSheetList()...)

	seen := make(map[string]bool)
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		seen[name] = true

		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}

		// The header is not always the first row; exports sometimes carry
		// a title or a blank line above it.
		for i := 0; i < len(rows) && i < 10; i++ {
			if cols, err := mapOrderColumns(rows[i]); err == nil {
				slog.Info("found orders data in sheet",
					slog.String("sheet_name", name),
					slog.Int("header_row", i))
				return rows, i, cols
			}
		}
	}
	return nil, 0, nil
}
