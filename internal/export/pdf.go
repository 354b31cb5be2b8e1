package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	pageMargin = 20.0
	lineHeight = 7.0
	boxSize    = 3.5
	qrSize     = 35.0
)

// PDF renders the document on A4 pages. Checkboxes are drawn, and filled for
// packed items. When d.URL is set a QR code for it sits in the top-right corner.
func PDF(d Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if d.URL != "" {
		qrPNG, err := qrcode.Encode(d.URL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
		pageW, _ := pdf.GetPageSize()
		pdf.ImageOptions("qr", pageW-pageMargin-qrSize, pageMargin, qrSize, qrSize, false, opts, 0, "")
	}

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Packing List", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, lineHeight, tr(d.Header()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, d.ProgressLine(), "", 1, "L", false, 0, "")
	if d.URL != "" && pdf.GetY() < pageMargin+qrSize {
		pdf.SetY(pageMargin + qrSize)
	}

	for _, s := range d.Sections() {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, SectionTitle(s.Category), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)

		for _, it := range s.Items {
			x, y := pdf.GetXY()
			style := "D"
			if d.Checked[it.ID] {
				style = "FD"
				pdf.SetTextColor(110, 110, 110)
			}
			pdf.SetFillColor(80, 80, 80)
			pdf.Rect(x, y+(lineHeight-boxSize)/2, boxSize, boxSize, style)
			pdf.SetX(x + boxSize + 2)
			pdf.CellFormat(0, lineHeight, tr(ItemText(it)), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
