package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"carta/internal"
	"carta/internal/logx"
	"carta/internal/util"
)

// ErrLegacyXLS is returned for binary (BIFF) .xls workbooks, which no reader
// here understands.
var ErrLegacyXLS = errors.New("binary .xls workbooks are not supported; save the catalog as .xlsx")

var (
	oleMagic      = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	floatCodeExpr = regexp.MustCompile(`^(\d+)\.0+$`)
	htmlTableExpr = regexp.MustCompile(`(?i)<table`)
)

// Columns that hold computed values in exported sheets rather than price lists.
var derivedPriceColumns = map[string]struct{}{
	"preco_base":     {},
	"preco_de_venda": {},
}

func ReadFile(path string) ([]internal.CatalogItem, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(blob, filepath.Base(path))
}

// Read parses a catalog workbook. name is only used to pick the format and in
// log lines.
func Read(blob []byte, name string) ([]internal.CatalogItem, error) {
	header, rows, err := readTable(blob, name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("read catalog %s: no header row", name)
	}
	return rowsToItems(name, header, rows), nil
}

func readTable(blob []byte, name string) ([]string, [][]string, error) {
	lower := strings.ToLower(name)
	switch {
	case bytes.HasPrefix(blob, oleMagic):
		return nil, nil, ErrLegacyXLS
	case strings.HasSuffix(lower, ".htm"), strings.HasSuffix(lower, ".html"):
		return parseHTMLTable(blob)
	case strings.HasSuffix(lower, ".xls") && htmlTableExpr.Match(blob):
		return parseHTMLTable(blob)
	default:
		return parseXLSX(blob)
	}
}

func parseXLSX(content []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	if err := plainNumericCells(f, sheets[0], rows); err != nil {
		return nil, nil, err
	}
	return normalizeHeader(rows[0]), rows[1:], nil
}

// plainNumericCells rewrites number-typed cells so the Latin "1.234" thousands
// rule, meant for typed-in text, never applies to a stored 1.234.
func plainNumericCells(f *excelize.File, sheet string, rows [][]string) error {
	for r := 1; r < len(rows); r++ {
		for c, raw := range rows[r] {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return err
			}
			if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
				rows[r][c] = util.NumericCell(raw)
			}
		}
	}
	return nil
}

// parseHTMLTable reads the first table with data, the shape ERP systems write
// when they export "Excel" files.
func parseHTMLTable(content []byte) ([]string, [][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, err
	}

	var header []string
	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return true
		}
		cells := []string{}
		trs.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cell.Text())
		})
		header = normalizeHeader(cells)

		trs.Slice(1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
			row := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, cell.Text())
			})
			rows = append(rows, row)
		})
		return false
	})

	return header, rows, nil
}

func normalizeHeader(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return out
}

func rowsToItems(source string, header []string, rows [][]string) []internal.CatalogItem {
	col := func(names ...string) int { return findHeaderIndex(header, names) }
	idxCol := col("idx")
	codeCol := col("cod")
	descCol := col("descricao")
	countryCol := col("pais")
	regionCol := col("regiao")
	categoryCol := col("tipo")
	wineryCol := col("vinicola")
	agingCol := col("amadurecimento")
	factorCol := col("fator")
	grapeCols := []int{col("uva1"), col("uva2"), col("uva3")}

	priceCols := map[string]int{}
	for i, h := range header {
		if !strings.HasPrefix(h, "preco") {
			continue
		}
		if _, derived := derivedPriceColumns[h]; derived {
			continue
		}
		priceCols[h] = i
	}

	useRowPosition := idxCol < 0 || columnEmpty(rows, idxCol)

	out := make([]internal.CatalogItem, 0, len(rows))
	seen := map[int]int{}
	for pos, row := range rows {
		if rowEmpty(row) {
			continue
		}

		id := pos
		if !useRowPosition {
			parsed, ok := util.ParseID(pickCell(row, idxCol))
			if !ok {
				logx.Warn().Str("source", source).Int("row", pos+2).Str("idx", pickCell(row, idxCol)).Msg("skipping catalog row with invalid idx")
				continue
			}
			id = parsed
		}
		if first, dup := seen[id]; dup {
			logx.Warn().Str("source", source).Int("row", pos+2).Int("firstRow", first+2).Int("idx", id).Msg("skipping duplicate catalog idx")
			continue
		}
		seen[id] = pos

		item := internal.CatalogItem{
			ID:          id,
			Code:        normalizeCode(pickCell(row, codeCol)),
			Description: pickCell(row, descCol),
			Country:     pickCell(row, countryCol),
			Region:      pickCell(row, regionCol),
			Category:    pickCell(row, categoryCol),
			Winery:      pickCell(row, wineryCol),
			Aging:       pickCell(row, agingCol),
			Prices:      map[string]string{},
		}
		for _, gc := range grapeCols {
			if g := pickCell(row, gc); g != "" {
				item.Grapes = append(item.Grapes, g)
			}
		}
		for list, pc := range priceCols {
			if v := pickCell(row, pc); v != "" {
				item.Prices[list] = v
			}
		}
		if factorCol >= 0 {
			if f, ok := util.ParseMoneyOK(pickCell(row, factorCol)); ok {
				item.Factor = f
			}
		}
		out = append(out, item)
	}

	return out
}

func findHeaderIndex(headers []string, names []string) int {
	for i, h := range headers {
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func pickCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return util.NormalizeCell(row[idx])
}

func columnEmpty(rows [][]string, idx int) bool {
	for _, row := range rows {
		if pickCell(row, idx) != "" {
			return false
		}
	}
	return true
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if util.NormalizeCell(c) != "" {
			return false
		}
	}
	return true
}

// normalizeCode turns spreadsheet floats like "1001.0" back into "1001".
func normalizeCode(code string) string {
	if m := floatCodeExpr.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return code
}
