package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/anindyar/kasbon/internal/encoding"
	"github.com/anindyar/kasbon/internal/ledger"
)

// Parser reads product catalog CSV exports and produces product params. It
// auto-detects the column layout by matching headers against known profiles
// and sniffs the delimiter, since spreadsheet exports in Indonesia commonly
// use semicolons.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.ProductParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching catalog layout found: expected at least name and price columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the delimiter with more occurrences on the first line.
func sniffDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))

	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.ProductParams, error) {
	var products []ledger.ProductParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		name := cellValue(row, cols, p.NameCol)
		if name == "" {
			continue
		}

		price, err := parseRupiah(cellValue(row, cols, p.PriceCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price: %w", rowNum, err)
		}

		params := ledger.ProductParams{
			Name:     name,
			Category: cellValue(row, cols, p.CategoryCol),
			Price:    price,
			Supplier: cellValue(row, cols, p.SupplierCol),
		}

		if s := cellValue(row, cols, p.CostCol); s != "" {
			cost, err := parseRupiah(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid cost: %w", rowNum, err)
			}

			params.Cost = cost
		}

		if s := cellValue(row, cols, p.StockCol); s != "" {
			stock, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid stock: %w", rowNum, err)
			}

			params.Stock = stock
		}

		if s := cellValue(row, cols, p.MinStockCol); s != "" {
			minStock, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid minimum stock: %w", rowNum, err)
			}

			params.MinStock = minStock
		}

		products = append(products, params)
	}

	return products, nil
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
