package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Inventory file column order. The header row is skipped by position, not by
// name, matching the spreadsheet export format
// "product id, product name, Retail price, Discount, Quantity".
const (
	colProductID = iota
	colName
	colRetailPrice
	colDiscount
	colQuantity
	inventoryColumns
)

// columnNames maps positional indexes to the names used in error reports
var columnNames = [inventoryColumns]string{
	"product id", "product name", "Retail price", "Discount", "Quantity",
}

// InventoryRecord is one parsed data row of an inventory file
type InventoryRecord struct {
	Line            int
	ProductID       string
	Name            string
	RetailPrice     decimal.Decimal
	DiscountPercent decimal.Decimal
	Quantity        int
}

// ParseInventory reads a full inventory CSV file and returns its typed
// records. Parsing is all-or-nothing: the first malformed row aborts with a
// RowError and no records are returned. Blank rows are skipped.
func ParseInventory(r io.Reader) ([]InventoryRecord, error) {
	br := bufio.NewReader(r)

	if err := stripBOM(br); err != nil {
		return nil, err
	}
	if err := validateUTF8(br); err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	// Header row carries no data; columns are positional
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []InventoryRecord
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, NewRowError(line, "", err.Error(), "")
		}

		if isBlank(fields) {
			continue
		}

		record, err := parseRecord(line, fields)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoDataRows
	}
	return records, nil
}

// parseRecord converts one raw CSV row into a typed record
func parseRecord(line int, fields []string) (InventoryRecord, error) {
	if len(fields) < inventoryColumns {
		return InventoryRecord{}, NewRowError(line, "",
			fmt.Sprintf("expected %d columns, got %d", inventoryColumns, len(fields)), "")
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[colProductID] == "" {
		return InventoryRecord{}, NewRowError(line, columnNames[colProductID],
			"product id cannot be empty", "")
	}

	retailPrice, err := decimal.NewFromString(fields[colRetailPrice])
	if err != nil {
		return InventoryRecord{}, NewRowError(line, columnNames[colRetailPrice],
			"not a valid decimal number", fields[colRetailPrice])
	}

	discount, err := decimal.NewFromString(fields[colDiscount])
	if err != nil {
		return InventoryRecord{}, NewRowError(line, columnNames[colDiscount],
			"not a valid decimal number", fields[colDiscount])
	}

	quantity, err := strconv.Atoi(fields[colQuantity])
	if err != nil {
		return InventoryRecord{}, NewRowError(line, columnNames[colQuantity],
			"not a valid integer", fields[colQuantity])
	}

	return InventoryRecord{
		Line:            line,
		ProductID:       fields[colProductID],
		Name:            fields[colName],
		RetailPrice:     retailPrice,
		DiscountPercent: discount,
		Quantity:        quantity,
	}, nil
}

// stripBOM discards a leading UTF-8 byte order mark if present
func stripBOM(br *bufio.Reader) error {
	content, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		_, _ = br.Discard(3)
	}
	return nil
}

// validateUTF8 checks that the content is valid UTF-8
func validateUTF8(br *bufio.Reader) error {
	const checkSize = 4096
	content, err := br.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}

	if len(content) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// isBlank reports whether every field in the row is empty
func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
