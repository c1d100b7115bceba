package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"carta/internal"
)

// Export renders doc in format and writes it to outputPath, creating the
// directory when needed.
func Export(doc Document, format internal.ExportFormat, mail MailOptions, outputPath string) error {
	var render func(io.Writer) error
	switch format {
	case internal.FormatPDF:
		render = func(w io.Writer) error { return RenderPDF(doc, w) }
	case internal.FormatXLSX:
		render = func(w io.Writer) error { return RenderXLSX(doc, w) }
	case internal.FormatPreview:
		render = func(w io.Writer) error { return RenderPreview(doc, w) }
	case internal.FormatMail:
		render = func(w io.Writer) error { return RenderMail(doc, mail, w) }
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(outputPath)
		return err
	}
	return f.Close()
}

// DefaultFileName is the file name used when no output path is given.
func DefaultFileName(format internal.ExportFormat) string {
	return "sugestao_carta_vinhos." + string(format)
}
