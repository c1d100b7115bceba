package render

import (
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"carta/internal"
	"carta/internal/logx"
)

// A4 in points.
const (
	pageW = 595.28
	pageH = 841.89

	textX     = 90.0
	detailX   = textX + 55
	photoX    = textX + 340
	pageLimit = pageH - 100
)

type pdfRenderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	doc Document
}

// RenderPDF writes the list as an A4 PDF. Each page footer tallies the lines
// printed so far.
func RenderPDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("carta", true)

	r := &pdfRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), doc: doc}

	var printed []internal.PricedItem
	pdf.SetFooterFunc(func() {
		r.footer(Summarize(printed))
	})

	y := r.startPage()
	for _, cat := range doc.Groups() {
		r.text("B", 10, textX, y, strings.ToUpper(cat.Category))
		y += 14
		for _, country := range cat.Countries {
			r.text("B", 8, textX, y, strings.ToUpper(country.Country))
			y += 12
			for _, line := range country.Lines {
				y = r.line(line, y)
				printed = append(printed, line.Item)
				if y > pageLimit {
					y = r.startPage()
				}
			}
		}
	}

	return pdf.Output(w)
}

func (r *pdfRenderer) startPage() float64 {
	r.pdf.AddPage()
	if r.doc.ClientLogo != "" {
		r.image(r.doc.ClientLogo, 40, 20, 120, 40)
	}
	if r.doc.CompanyLogo != "" {
		if _, err := os.Stat(r.doc.CompanyLogo); err == nil {
			r.image(r.doc.CompanyLogo, pageW-80, 16, 48, 24)
		}
	}

	y := 40.0
	r.centered("B", 16, y, r.doc.Title)
	y += 20
	if r.doc.Client != "" {
		r.centered("", 10, y, "Cliente: "+r.doc.Client)
		y += 20
	}
	return y
}

func (r *pdfRenderer) line(l Line, y float64) float64 {
	r.text("", 6, textX, y, l.CodeLabel())
	r.text("B", 7, detailX, y, l.Item.Description)

	origin := l.Origin()
	r.text("", 5, detailX, y+10, origin)
	if l.Aged() {
		r.text("I", 5, detailX+r.pdf.GetStringWidth(r.tr(origin))+6, y+10, "(barrica)")
	}

	r.right("", 5, pageW-120, y, l.BasePrice())
	r.right("B", 7, pageW-40, y, l.SellPrice())

	if photo := r.doc.Photo(l); photo != "" {
		if r.image(photo, photoX, y-28, 40, 30) {
			return y + 28
		}
	}
	return y + 20
}

func (r *pdfRenderer) footer(s Summary) {
	p := r.pdf
	p.SetLineWidth(0.4)
	p.Line(30, pageH-67, pageW-30, pageH-67)
	r.text("", 5, 32, pageH-55, r.doc.generatedLabel())
	r.text("B", 6, 32, pageH-42, s.String())
	if r.doc.Company != "" {
		r.text("", 5, 32, pageH-30, r.doc.Company)
	}
	if r.doc.Site != "" {
		r.text("B", 6, pageW-190, pageH-30, r.doc.Site)
	}
}

// image draws a file and reports whether it worked. A broken image is logged
// and skipped.
func (r *pdfRenderer) image(path string, x, y, w, h float64) bool {
	r.pdf.ImageOptions(path, x, y, w, h, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	if r.pdf.Ok() {
		return true
	}
	logx.Warn().Err(r.pdf.Error()).Str("image", path).Msg("skipping image")
	r.pdf.ClearError()
	return false
}

func (r *pdfRenderer) text(style string, size, x, y float64, s string) {
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.Text(x, y, r.tr(s))
}

func (r *pdfRenderer) right(style string, size, x, y float64, s string) {
	r.pdf.SetFont("Helvetica", style, size)
	t := r.tr(s)
	r.pdf.Text(x-r.pdf.GetStringWidth(t), y, t)
}

func (r *pdfRenderer) centered(style string, size, y float64, s string) {
	r.pdf.SetFont("Helvetica", style, size)
	t := r.tr(s)
	r.pdf.Text((pageW-r.pdf.GetStringWidth(t))/2, y, t)
}
