package formatter

import (
	"fmt"
	"strings"

	"github.com/pcforge/builder-backend/internal/entity"
)

const baseTitle = "PC Build Quote"

// categoryHeadings are the human-readable slot names used in rendered quotes.
var categoryHeadings = map[entity.Category]string{
	entity.CategoryCPU:         "Processor",
	entity.CategoryMotherboard: "Motherboard",
	entity.CategoryGPU:         "Graphics Card",
	entity.CategoryRAM:         "Memory",
	entity.CategoryStorage:     "Storage",
	entity.CategoryPSU:         "Power Supply",
	entity.CategoryCase:        "Case",
	entity.CategoryCooling:     "Cooling",
}

// Formatter renders a build into one downloadable document format.
type Formatter interface {
	Format(build *entity.Build) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// quoteLine is one rendered row of the quote.
type quoteLine struct {
	Heading string
	Title   string
	Lien    string
	Price   float64
}

// quoteLines flattens a build into rows in fixed category order, skipping
// unresolved slots.
func quoteLines(build *entity.Build) []quoteLine {
	lines := make([]quoteLine, 0, len(entity.AllCategories))
	for _, cat := range entity.AllCategories {
		component := build.Components[cat]
		if component == nil {
			continue
		}
		title := component.Title
		if title == "" {
			title = strings.ReplaceAll(component.Lien, "-", " ")
		}
		lines = append(lines, quoteLine{
			Heading: categoryHeadings[cat],
			Title:   title,
			Lien:    component.Lien,
			Price:   component.Price,
		})
	}
	return lines
}

func quoteTitle(build *entity.Build) string {
	if build.Name != "" {
		return fmt.Sprintf("%s — %s", baseTitle, build.Name)
	}
	return baseTitle
}
