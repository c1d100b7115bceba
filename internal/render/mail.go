package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jhillyerd/enmime"

	"carta/internal/errx"
)

const (
	pdfAttachment  = "sugestao_carta_vinhos.pdf"
	xlsxAttachment = "sugestao_carta_vinhos.xlsx"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type MailOptions struct {
	FromName    string
	FromAddress string
	ToName      string
	ToAddress   string
	Subject     string
}

// RenderMail writes an RFC 5322 draft carrying the text preview as body and
// the PDF and spreadsheet as attachments. Nothing is sent.
func RenderMail(doc Document, opts MailOptions, w io.Writer) error {
	if strings.TrimSpace(opts.FromAddress) == "" {
		return errx.MissingInput("sender address is required for e-mail drafts")
	}
	if strings.TrimSpace(opts.ToAddress) == "" {
		return errx.MissingInput("recipient address is required for e-mail drafts")
	}

	var pdfBuf, xlsxBuf bytes.Buffer
	if err := RenderPDF(doc, &pdfBuf); err != nil {
		return fmt.Errorf("render pdf attachment: %w", err)
	}
	if err := RenderXLSX(doc, &xlsxBuf); err != nil {
		return fmt.Errorf("render xlsx attachment: %w", err)
	}

	subject := opts.Subject
	if subject == "" {
		subject = doc.Title
		if doc.Client != "" {
			subject += " - " + doc.Client
		}
	}
	toName := opts.ToName
	if toName == "" {
		toName = doc.Client
	}

	part, err := enmime.Builder().
		From(opts.FromName, opts.FromAddress).
		To(toName, opts.ToAddress).
		Subject(subject).
		Date(doc.GeneratedAt).
		Text([]byte(Preview(doc))).
		AddAttachment(pdfBuf.Bytes(), "application/pdf", pdfAttachment).
		AddAttachment(xlsxBuf.Bytes(), xlsxMIME, xlsxAttachment).
		Build()
	if err != nil {
		return err
	}
	return part.Encode(w)
}
