package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamilyUTF8 = "report"
	fontFamilyCore = "Arial"
	rowHeight      = 10.0
	pageMargin     = 10.0
	breakMargin    = 15.0
)

// PDFOptions tunes document rendering.
type PDFOptions struct {
	// FontPath points at a UTF-8 TrueType font with Arabic glyphs. Without it
	// the core Arial font is used and non Latin-1 text degrades.
	FontPath string
	PageSize string
}

// PDFExporter renders tables and certificates into in-memory PDF documents.
type PDFExporter struct {
	opts PDFOptions
	utf8 bool
}

// NewPDFExporter constructs a PDF exporter. The configured font is loaded
// once up front; see UTF8.
func NewPDFExporter(opts PDFOptions) *PDFExporter {
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	e := &PDFExporter{opts: opts}
	if opts.FontPath != "" {
		check := gofpdf.New("P", "mm", opts.PageSize, "")
		check.AddUTF8Font(fontFamilyUTF8, "", opts.FontPath)
		e.utf8 = check.Ok()
	}
	return e
}

// UTF8 reports whether documents are drawn with the configured UTF-8 font.
// When false, text outside Latin-1 (Arabic included) renders as placeholders.
func (e *PDFExporter) UTF8() bool {
	return e.utf8
}

type document struct {
	pdf  *gofpdf.Fpdf
	utf8 bool
	tr   func(string) string
}

func (e *PDFExporter) newDocument(orientation string) *document {
	pdf := gofpdf.New(orientation, "mm", e.opts.PageSize, "")
	doc := &document{pdf: pdf, tr: func(s string) string { return s }}
	if e.utf8 {
		pdf.AddUTF8Font(fontFamilyUTF8, "", e.opts.FontPath)
		pdf.AddUTF8Font(fontFamilyUTF8, "B", e.opts.FontPath)
		doc.utf8 = pdf.Ok()
	}
	if !doc.utf8 {
		pdf.ClearError()
		doc.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return doc
}

func (d *document) font(style string, size float64) {
	if d.utf8 {
		d.pdf.SetFont(fontFamilyUTF8, style, size)
		return
	}
	d.pdf.SetFont(fontFamilyCore, style, size)
}

// cell writes one bordered cell. Right-to-left text is emitted in visual
// order when a UTF-8 font is active.
func (d *document) cell(w, h float64, text, border string, ln int, align Align) {
	rtl := d.utf8 && IsRTL(text)
	if rtl {
		d.pdf.RTL()
	}
	d.pdf.CellFormat(w, h, d.tr(text), border, ln, string(align), false, 0, "")
	if rtl {
		d.pdf.LTR()
	}
}

// Render draws t across as many pages as needed. The header row is
// repeated at the top of every page.
func (e *PDFExporter) Render(t Table) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	l := e.layout(t)
	doc := e.newDocument(l.orientation)
	pdf := doc.pdf
	pdf.SetMargins(pageMargin, breakMargin, pageMargin)
	pdf.SetAutoPageBreak(true, breakMargin)

	header := func() {
		doc.font("B", 10)
		pdf.SetX(l.offset)
		for _, c := range t.Columns {
			doc.cell(c.Width*l.scale, rowHeight, c.Header, "1", 0, AlignCenter)
		}
		pdf.Ln(-1)
		doc.font("", 8)
	}

	pdf.AddPage()
	if t.Title != "" {
		doc.font("B", 16)
		doc.cell(0, rowHeight, t.Title, "", 1, AlignCenter)
		pdf.Ln(rowHeight)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-breakMargin {
			pdf.AddPage()
			header()
		}
		pdf.SetX(l.offset)
		for i, value := range row {
			c := t.Columns[i]
			doc.cell(c.Width*l.scale, rowHeight, value, "1", 0, c.Align)
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

type tableLayout struct {
	orientation string
	pageWidth   float64
	offset      float64
	scale       float64
}

// layout places t horizontally. Tables wider than the portrait printable
// width switch to landscape; tables still too wide are scaled down to fit.
// Narrower tables are centered.
func (e *PDFExporter) layout(t Table) tableLayout {
	l := tableLayout{orientation: "P", scale: 1}
	l.pageWidth, _ = gofpdf.New(l.orientation, "mm", e.opts.PageSize, "").GetPageSize()
	if t.Width() > l.pageWidth-2*pageMargin {
		l.orientation = "L"
		l.pageWidth, _ = gofpdf.New(l.orientation, "mm", e.opts.PageSize, "").GetPageSize()
	}
	usable := l.pageWidth - 2*pageMargin
	if w := t.Width(); w > usable {
		l.scale = usable / w
	}
	l.offset = pageMargin + (usable-t.Width()*l.scale)/2
	return l
}

// Certificate is the content of an award certificate.
type Certificate struct {
	StudentName string
	BadgeName   string
	DateAwarded string
}

// RenderCertificate draws a single landscape certificate page.
func (e *PDFExporter) RenderCertificate(c Certificate) ([]byte, error) {
	if c.StudentName == "" || c.BadgeName == "" || c.DateAwarded == "" {
		return nil, fmt.Errorf("certificate requires student, badge and date")
	}
	doc := e.newDocument("L")
	pdf := doc.pdf
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(14, 14, w-28, h-28, "D")

	pdf.SetY(40)
	doc.font("B", 30)
	doc.cell(0, 16, "Certificate of Achievement", "", 1, AlignCenter)
	pdf.Ln(8)
	doc.font("", 14)
	doc.cell(0, 10, "This certificate is proudly presented to", "", 1, AlignCenter)
	pdf.Ln(4)
	doc.font("B", 26)
	doc.cell(0, 14, c.StudentName, "", 1, AlignCenter)
	pdf.Ln(4)
	doc.font("", 14)
	doc.cell(0, 10, "for earning the badge", "", 1, AlignCenter)
	doc.font("B", 20)
	doc.cell(0, 12, c.BadgeName, "", 1, AlignCenter)
	pdf.Ln(10)
	doc.font("", 12)
	doc.cell(0, 8, "Awarded on "+c.DateAwarded, "", 1, AlignCenter)

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
