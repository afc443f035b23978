package formatter

import (
	"bytes"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(build *entity.Build) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(quoteTitle(build))

	doc.AddParagraph()

	for _, line := range quoteLines(build) {
		par := doc.AddParagraph()
		headingRun := par.AddRun()
		headingRun.Properties().SetBold(true)
		headingRun.AddText(line.Heading + ": ")
		bodyRun := par.AddRun()
		bodyRun.AddText(fmt.Sprintf("%s — %.2f", line.Title, line.Price))
	}

	doc.AddParagraph()

	totalPar := doc.AddParagraph()
	totalRun := totalPar.AddRun()
	totalRun.Properties().SetBold(true)
	totalRun.AddText(fmt.Sprintf("Total: %.2f", build.TotalPrice))

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
