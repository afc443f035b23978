package formatter

import (
	"bytes"
	"fmt"

	"github.com/pcforge/builder-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(build *entity.Build) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", quoteTitle(build))
	fmt.Fprintf(&buf, "| Component | Part | Price |\n|---|---|---|\n")
	for _, line := range quoteLines(build) {
		fmt.Fprintf(&buf, "| %s | %s | %.2f |\n", line.Heading, line.Title, line.Price)
	}
	fmt.Fprintf(&buf, "\n**Total: %.2f**\n", build.TotalPrice)
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
