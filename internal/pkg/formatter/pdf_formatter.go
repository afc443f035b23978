package formatter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/pcforge/builder-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (pf *PDFFormatter) Format(build *entity.Build) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(quoteTitle(build)))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	_, lineHeight := pdf.GetFontSize()
	for _, line := range quoteLines(build) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(50, lineHeight*1.6, tr(line.Heading))
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(100, lineHeight*1.6, tr(line.Title))
		pdf.CellFormat(0, lineHeight*1.6, fmt.Sprintf("%.2f", line.Price), "", 0, "R", false, 0, "")
		pdf.Ln(lineHeight * 1.8)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, lineHeight*1.8, fmt.Sprintf("Total: %.2f", build.TotalPrice), "T", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
