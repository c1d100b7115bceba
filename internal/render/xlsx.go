package render

import (
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"carta/internal/logx"
)

const xlsxSheet = "Sugestão"

type xlsxStyles struct {
	category, country, code, description, origin, base, sell int
}

// RenderXLSX lays the list out like the PDF: merged category and country rows,
// two rows per wine, prices right-aligned in G and H.
func RenderXLSX(doc Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return err
	}
	st, err := newXLSXStyles(f)
	if err != nil {
		return err
	}
	_ = f.SetColWidth(xlsxSheet, "A", "A", 12)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 55)
	_ = f.SetColWidth(xlsxSheet, "C", "C", 10)
	_ = f.SetColWidth(xlsxSheet, "G", "H", 16)

	row := 1
	set := func(col, r int, value any, style int) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(xlsxSheet, cell, value)
		_ = f.SetCellStyle(xlsxSheet, cell, cell, style)
	}
	merged := func(value string, style int) {
		from, _ := excelize.CoordinatesToCellName(1, row)
		to, _ := excelize.CoordinatesToCellName(8, row)
		_ = f.MergeCell(xlsxSheet, from, to)
		set(1, row, value, style)
		row++
	}

	for _, cat := range doc.Groups() {
		merged(strings.ToUpper(cat.Category), st.category)
		for _, country := range cat.Countries {
			merged(strings.ToUpper(country.Country), st.country)
			for _, l := range country.Lines {
				set(1, row, l.CodeLabel(), st.code)
				set(2, row, l.Item.Description, st.description)
				set(7, row, l.BasePrice(), st.base)
				set(8, row, l.SellPrice(), st.sell)
				if photo := doc.Photo(l); photo != "" {
					cell, _ := excelize.CoordinatesToCellName(3, row)
					if err := f.AddPicture(xlsxSheet, cell, photo, &excelize.GraphicOptions{AutoFit: true}); err != nil {
						logx.Warn().Err(err).Str("image", photo).Msg("skipping image")
					}
				}
				set(2, row+1, l.Origin(), st.origin)
				if l.Aged() {
					set(3, row+1, "barrica", st.origin)
				}
				row += 2
			}
		}
	}

	row++
	set(1, row, Summarize(doc.Items).String(), st.origin)
	set(1, row+1, doc.generatedLabel(), st.origin)
	if footer := doc.footerLine(); footer != "" {
		set(1, row+2, footer, st.origin)
	}

	return f.Write(w)
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var st xlsxStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.category, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 18}}},
		{&st.country, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&st.code, &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&st.description, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}},
		{&st.origin, &excelize.Style{Font: &excelize.Font{Size: 10}}},
		{&st.base, &excelize.Style{Font: &excelize.Font{Size: 10}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&st.sell, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}, Alignment: &excelize.Alignment{Horizontal: "right"}}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, err
		}
		*d.dst = id
	}
	return st, nil
}
