package render

import (
	"fmt"
	"io"
	"strings"
)

// RenderPreview writes the plain-text version of the list.
func RenderPreview(doc Document, w io.Writer) error {
	_, err := io.WriteString(w, Preview(doc))
	return err
}

func Preview(doc Document) string {
	rule := strings.Repeat("=", 70)

	var b strings.Builder
	b.WriteString(doc.Title + "\n")
	if doc.Client != "" {
		fmt.Fprintf(&b, "Cliente: %s\n", doc.Client)
	}
	b.WriteString(rule + "\n")

	for _, cat := range doc.Groups() {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(cat.Category))
		for _, country := range cat.Countries {
			fmt.Fprintf(&b, "  %s\n", strings.ToUpper(country.Country))
			for _, l := range country.Lines {
				fmt.Fprintf(&b, "    %s %s\n", l.CodeLabel(), l.Item.Description)
				fmt.Fprintf(&b, "      %s\n", l.Origin())
				fmt.Fprintf(&b, "      %s  %s\n", l.BasePrice(), l.SellPrice())
				if doc.Photo(l) != "" {
					b.WriteString("      [COM FOTO]\n")
				}
			}
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString(Summarize(doc.Items).String() + "\n")
	b.WriteString(doc.generatedLabel() + "\n")
	return b.String()
}
